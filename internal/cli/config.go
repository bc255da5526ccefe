package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user preferences loaded from the config file. Every field
// maps to a render flag; flags given on the command line win.
type Config struct {
	// Dark renders on a black background by default.
	Dark bool `toml:"dark"`

	// Log applies log scaling to centrality coloring by default.
	Log bool `toml:"log"`

	// Weighted weights edges by shared-constraint count by default.
	Weighted bool `toml:"weighted"`

	// Seed is the default layout seed.
	Seed int64 `toml:"seed"`

	// Iterations is the default layout iteration budget.
	Iterations int `toml:"iterations"`

	// Size is the default image edge length in pixels.
	Size int `toml:"size"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Seed:       42,
		Iterations: 500,
		Size:       2048,
	}
}

// LoadConfig reads the user's config file, layering it over the defaults.
// A missing file is not an error: the defaults are returned as-is.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	path, err := configPath()
	if err != nil {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// configPath returns the config file location using XDG standard
// (~/.config/mipviz/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
