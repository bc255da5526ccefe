package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}
	if cfg.Iterations != 500 {
		t.Errorf("Iterations = %d, want 500", cfg.Iterations)
	}
	if cfg.Size != 2048 {
		t.Errorf("Size = %d, want 2048", cfg.Size)
	}
	if cfg.Dark || cfg.Log || cfg.Weighted {
		t.Error("theme and weighting flags should default to off")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("missing config file should not error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("missing config should yield defaults, got %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, appName, "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	content := "dark = true\nseed = 7\nsize = 512\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.Dark {
		t.Error("Dark should be overridden to true")
	}
	if cfg.Seed != 7 {
		t.Errorf("Seed = %d, want 7", cfg.Seed)
	}
	if cfg.Size != 512 {
		t.Errorf("Size = %d, want 512", cfg.Size)
	}
	// Untouched keys keep their defaults
	if cfg.Iterations != 500 {
		t.Errorf("Iterations = %d, want 500", cfg.Iterations)
	}
}

func TestLoadConfigInvalidFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, appName, "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("dark = {not valid"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Error("invalid TOML should surface an error")
	}
	if cfg != DefaultConfig() {
		t.Error("invalid config should fall back to defaults")
	}
}
