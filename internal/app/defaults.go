package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - MOSAIC_CONFIG_PATH: config file location (default: ~/.config/mosaic.toml)
//   - MOSAIC_HOME: base directory for mosaic data (default: ~/.local/share/mosaic)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"data_dir":    filepath.Join(baseDir, "data"),
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// getConfigPath returns the config file path, checking MOSAIC_CONFIG_PATH
// first, then falling back to the default ~/.config/mosaic.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("MOSAIC_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "mosaic.toml"), nil
}

// getBaseDir returns the base directory for mosaic data, checking
// MOSAIC_HOME first, then falling back to the XDG default
// ~/.local/share/mosaic.
func getBaseDir() (string, error) {
	if path := os.Getenv("MOSAIC_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "mosaic"), nil
}
