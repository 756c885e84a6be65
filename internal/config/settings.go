package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/edakit/edakit/internal/executable"
	"github.com/edakit/edakit/internal/models"
)

// LoadSettings loads the global settings from settings.yaml.
// If the file doesn't exist, returns default settings.
func LoadSettings() (*models.Settings, error) {
	path, err := GlobalSettingsFile()
	if err != nil {
		return nil, err
	}
	return LoadYAMLOrDefault(path, models.NewSettings)
}

// SaveSettings saves the global settings to settings.yaml.
func SaveSettings(settings *models.Settings) error {
	path, err := GlobalSettingsFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, settings)
}

// ResolveBinaryDirectory expands the BinaryDirectory template of cfg.
// It returns "" when no installation directory is configured, meaning the
// tool is looked up in PATH.
func ResolveBinaryDirectory(cfg *models.ToolConfig) string {
	if cfg == nil || cfg.InstallationDirectory == "" {
		return ""
	}
	template := cfg.BinaryDirectory
	if template == "" {
		template = "${" + models.InstallationDirectoryVar + "}"
	}
	return os.Expand(template, func(key string) string {
		if key == models.InstallationDirectoryVar {
			return cfg.InstallationDirectory
		}
		return os.Getenv(key)
	})
}

// ToolKeys lists the keys accepted by SetToolValue.
var ToolKeys = []string{"version", "installation_directory", "binary_directory", "use_pty", "timeout", "rules"}

// SetToolValue sets one key of a tool's configuration from its string form.
func SetToolValue(settings *models.Settings, tool, key, value string) error {
	cfg := settings.Tool(tool)
	switch key {
	case "version":
		cfg.Version = value
	case "installation_directory":
		cfg.InstallationDirectory = value
	case "binary_directory":
		cfg.BinaryDirectory = value
	case "use_pty":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid use_pty value %q: %w", value, err)
		}
		cfg.UsePTY = b
	case "timeout":
		if value == "" {
			cfg.Timeout = 0
			return nil
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid timeout value %q: %w", value, err)
		}
		cfg.Timeout = d
	case "rules":
		if _, err := executable.RulePreset(value); err != nil {
			return err
		}
		cfg.Rules = value
	default:
		return fmt.Errorf("unknown tool setting %q (valid: %v)", key, ToolKeys)
	}
	return nil
}
