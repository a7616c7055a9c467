package app

import (
	"path/filepath"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("MOSAIC_CONFIG_PATH", "/custom/mosaic.toml")
		t.Setenv("MOSAIC_HOME", "/custom/home")

		defaults, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error: %v", err)
		}
		if defaults["config_path"] != "/custom/mosaic.toml" {
			t.Errorf("config_path = %q, want env override", defaults["config_path"])
		}
		if defaults["base_dir"] != "/custom/home" {
			t.Errorf("base_dir = %q, want env override", defaults["base_dir"])
		}
		if defaults["data_dir"] != filepath.Join("/custom/home", "data") {
			t.Errorf("data_dir = %q, want data under base dir", defaults["data_dir"])
		}
		if defaults["log_dir"] != filepath.Join("/custom/home", "log") {
			t.Errorf("log_dir = %q, want log under base dir", defaults["log_dir"])
		}
	})

	t.Run("home fallback", func(t *testing.T) {
		t.Setenv("MOSAIC_CONFIG_PATH", "")
		t.Setenv("MOSAIC_HOME", "")
		t.Setenv("HOME", "/home/tester")

		defaults, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error: %v", err)
		}
		if defaults["config_path"] != filepath.Join("/home/tester", ".config", "mosaic.toml") {
			t.Errorf("config_path = %q, want XDG default", defaults["config_path"])
		}
		if defaults["base_dir"] != filepath.Join("/home/tester", ".local", "share", "mosaic") {
			t.Errorf("base_dir = %q, want XDG default", defaults["base_dir"])
		}
	})
}
