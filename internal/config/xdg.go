// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "blindtype"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	return xdgHome("XDG_CONFIG_HOME", ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	return xdgHome("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// XDGStateHome returns the XDG state home or a default fallback.
func XDGStateHome() string {
	return xdgHome("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func xdgHome(env, fallback string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, fallback)
}

// ConfigDir returns the application config directory.
func ConfigDir() string {
	return filepath.Join(XDGConfigHome(), appName)
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DefaultEnvPath returns the optional dotenv file beside the config.
func DefaultEnvPath() string {
	return filepath.Join(ConfigDir(), ".env")
}

// DefaultTextsPath returns the default practice sentence file.
func DefaultTextsPath() string {
	return filepath.Join(ConfigDir(), "texts.txt")
}

// DefaultResultsPath returns the aggregate results document path.
func DefaultResultsPath() string {
	return filepath.Join(XDGDataHome(), appName, "results.json")
}

// DefaultHistoryPath returns the path for the SQLite session history.
func DefaultHistoryPath() string {
	return filepath.Join(XDGDataHome(), appName, "history.db")
}

// DefaultLogPath returns the log file used while the TUI owns the terminal.
func DefaultLogPath() string {
	return filepath.Join(XDGStateHome(), appName, appName+".log")
}
