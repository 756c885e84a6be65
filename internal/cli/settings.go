package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/edakit/edakit/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"config"},
	Short:   "Show or change edakit settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <tool> <key> <value>",
	Short: "Set one setting of a tool",
	Long: `Set one setting of a tool in the settings file.

Keys: ` + strings.Join(config.ToolKeys, ", ") + `

binary_directory may reference ${InstallationDirectory}. An empty timeout
lets the tool run to completion.`,
	Example: `  edakit settings set gtkwave installation_directory "C:/Program Files/GTKWave"
  edakit settings set ghdl rules located`,
	Args: cobra.ExactArgs(3),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	path, err := config.GlobalSettingsFile()
	if err == nil {
		fmt.Fprintln(cmd.OutOrStdout(), styleHint.Render("# "+path))
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	tool, key, value := args[0], args[1], args[2]

	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if err := config.SetToolValue(settings, tool, key, value); err != nil {
		return err
	}
	if err := config.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), styleSuccess.Render(fmt.Sprintf("Set %s.%s = %q", tool, key, value)))
	return nil
}
