package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/stickerkit/internal/measure"
	"github.com/example/stickerkit/internal/sticker"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(line, "["), "]"))
			continue
		}

		// Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := stripComment(strings.TrimSpace(parts[1]))
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") && len(value) >= 2 {
			value = value[1 : len(value)-1]
		}

		switch currentSection {
		case "":
			if err := setRootField(cfg, key, value); err != nil {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
		case "limits":
			if err := setLimitsField(&cfg.Limits, key, value); err != nil {
				return nil, fmt.Errorf("error in section [limits]: %w", err)
			}
		case "label":
			if err := setLabelField(&cfg.Label, key, value); err != nil {
				return nil, fmt.Errorf("error in section [label]: %w", err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// stripComment drops a trailing "# ..." comment.
func stripComment(v string) string {
	if i := strings.Index(v, " #"); i >= 0 {
		return strings.TrimSpace(v[:i])
	}
	return v
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "gesture_mode":
		m, err := sticker.ParseGestureMode(value)
		if err != nil {
			return err
		}
		cfg.Mode.Gestures = m
	case "handle_mode":
		h, err := sticker.ParseHandleResolution(value)
		if err != nil {
			return err
		}
		cfg.Mode.Handles = h
	case "multiple":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for key %s: %w", key, err)
		}
		cfg.Mode.Multiple = b
	}
	return nil
}

func setLimitsField(l *sticker.Limits, key, value string) error {
	f, err := parseFloat(key, value)
	if err != nil {
		return err
	}
	switch strings.ToLower(key) {
	case "min_scale":
		l.MinScale = f
	case "max_scale":
		l.MaxScale = f
	}
	return nil
}

func setLabelField(o *measure.Options, key, value string) error {
	f, err := parseFloat(key, value)
	if err != nil {
		return err
	}
	switch strings.ToLower(key) {
	case "text_size":
		o.TextSize = f
	case "padding_x":
		o.PaddingX = f
	case "padding_y":
		o.PaddingY = f
	}
	return nil
}

func parseFloat(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	return f, nil
}
