package models

import (
	"runtime"
	"time"
)

// InstallationDirectoryVar is the placeholder a BinaryDirectory template may
// reference, e.g. "${InstallationDirectory}/bin".
const InstallationDirectoryVar = "InstallationDirectory"

// ToolConfig holds configuration for one external tool.
type ToolConfig struct {
	Version               string        `yaml:"version"`
	InstallationDirectory string        `yaml:"installation_directory"` // empty = lookup in PATH
	BinaryDirectory       string        `yaml:"binary_directory"`
	UsePTY                bool          `yaml:"use_pty"`
	Timeout               time.Duration `yaml:"timeout,omitempty"` // 0 = run to completion
	Rules                 string        `yaml:"rules,omitempty"`   // "none" | "located"
}

// DefaultsConfig holds settings shared by all tools.
type DefaultsConfig struct {
	Verbosity string `yaml:"verbosity"` // "normal" | "verbose" | "debug"
	KeepLogs  bool   `yaml:"keep_logs"`
}

// Settings represents global settings.
// This corresponds to ~/.edakit/settings.yaml.
type Settings struct {
	Version  int                    `yaml:"version"`
	Tools    map[string]*ToolConfig `yaml:"tools"`
	Defaults DefaultsConfig         `yaml:"defaults"`
}

// DefaultBinaryDirectory returns the BinaryDirectory template used on the
// given GOOS.
func DefaultBinaryDirectory(goos string) string {
	if goos == "windows" {
		return "${" + InstallationDirectoryVar + "}/bin"
	}
	return "${" + InstallationDirectoryVar + "}"
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Tools: map[string]*ToolConfig{
			"gtkwave": {
				Version:         "3.3.70",
				BinaryDirectory: DefaultBinaryDirectory(runtime.GOOS),
			},
		},
		Defaults: DefaultsConfig{
			Verbosity: "normal",
			KeepLogs:  true,
		},
	}
}

// Tool returns the configuration for name, creating an entry with platform
// defaults if none exists.
func (s *Settings) Tool(name string) *ToolConfig {
	if s.Tools == nil {
		s.Tools = make(map[string]*ToolConfig)
	}
	cfg, ok := s.Tools[name]
	if !ok || cfg == nil {
		cfg = &ToolConfig{BinaryDirectory: DefaultBinaryDirectory(runtime.GOOS)}
		s.Tools[name] = cfg
	}
	return cfg
}
