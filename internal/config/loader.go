package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Loader finds and reads the stickerkit config file.
type Loader struct {
	Version      string // "dev" also looks in the working directory
	OverridePath string // checked first; set through -ldflags
}

// NewLoader returns a loader for the given build.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{Version: version, OverridePath: overridePath}
}

// Load reads the first config file found. Without one it returns the
// defaults.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// GetConfigPath returns the first existing config file, or "" when there is
// none.
func (l *Loader) GetConfigPath() string {
	for _, p := range l.candidates() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// candidates lists config locations in lookup order: the build-time
// override, .stickerkitrc in the working directory for dev builds, then the
// user config directory.
func (l *Loader) candidates() []string {
	var paths []string
	if l.OverridePath != "" {
		paths = append(paths, l.OverridePath)
	}
	if l.Version == "dev" {
		if wd, err := os.Getwd(); err == nil {
			paths = append(paths, filepath.Join(wd, ".stickerkitrc"))
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, ".config", "stickerkit")
		paths = append(paths, filepath.Join(dir, "config.rc"), filepath.Join(dir, "stickerkit.rc"))
	}
	return paths
}

// DefaultPath is where a new configuration file is written.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "stickerkit", "config.rc"), nil
}
