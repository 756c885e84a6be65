// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// GlobalDirName is the name of the global edakit directory.
	GlobalDirName = ".edakit"

	// LogsDirName is the name of the session logs directory.
	LogsDirName = "logs"

	// HomeEnvVar overrides the global directory location.
	HomeEnvVar = "EDAKIT_HOME"
)

// File names
const (
	SettingsFileName = "settings.yaml"
	LogFileExt       = ".log"
)

// GlobalDir returns the path to the global edakit directory ($EDAKIT_HOME or
// ~/.edakit/).
func GlobalDir() (string, error) {
	if dir := os.Getenv(HomeEnvVar); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalDirName), nil
}

// GlobalSettingsFile returns the path to the settings.yaml file.
func GlobalSettingsFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// GlobalLogsDir returns the path to the logs directory.
func GlobalLogsDir() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogsDirName), nil
}

// ToolLogsDir returns the directory holding the session logs of one tool.
func ToolLogsDir(tool string) (string, error) {
	dir, err := GlobalLogsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, tool), nil
}
