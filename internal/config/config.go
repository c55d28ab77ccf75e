package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/example/stickerkit/internal/measure"
	"github.com/example/stickerkit/internal/sticker"
)

// Config holds the application configuration.
type Config struct {
	Mode   sticker.Mode
	Limits sticker.Limits
	Label  measure.Options
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Mode:   sticker.DefaultMode(),
		Limits: sticker.DefaultLimits(),
		Label:  measure.DefaultOptions(),
	}
}

// Validate reports settings the editor cannot work with.
func (c *Config) Validate() error {
	if !(c.Limits.MinScale > 0) {
		return fmt.Errorf("min_scale must be positive, got %v", c.Limits.MinScale)
	}
	if c.Limits.MinScale > c.Limits.MaxScale {
		return fmt.Errorf("min_scale %v exceeds max_scale %v", c.Limits.MinScale, c.Limits.MaxScale)
	}
	if c.Label.TextSize <= 0 {
		return fmt.Errorf("text_size must be positive, got %v", c.Label.TextSize)
	}
	if c.Label.PaddingX < 0 || c.Label.PaddingY < 0 {
		return fmt.Errorf("label padding cannot be negative")
	}
	return nil
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "gesture_mode = %s\n", c.Mode.Gestures)
	fmt.Fprintf(&sb, "handle_mode = %s\n", c.Mode.Handles)
	fmt.Fprintf(&sb, "multiple = %v\n", c.Mode.Multiple)
	sb.WriteString("\n")

	sb.WriteString("[limits]\n")
	fmt.Fprintf(&sb, "min_scale = %s\n", formatFloat(c.Limits.MinScale))
	fmt.Fprintf(&sb, "max_scale = %s\n", formatFloat(c.Limits.MaxScale))
	sb.WriteString("\n")

	sb.WriteString("[label]\n")
	fmt.Fprintf(&sb, "text_size = %s\n", formatFloat(c.Label.TextSize))
	fmt.Fprintf(&sb, "padding_x = %s\n", formatFloat(c.Label.PaddingX))
	fmt.Fprintf(&sb, "padding_y = %s\n", formatFloat(c.Label.PaddingY))

	return sb.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
