// Package cli implements the edakit CLI commands.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	flagVerbose bool
	flagDebug   bool
)

var rootCmd = &cobra.Command{
	Use:   "edakit",
	Short: "Run EDA tools and filter their console output",
	Long: `edakit launches external EDA tools such as GTKWave, classifies every
line they print into normal, warning and error messages, and records each
run in a session log under ~/.edakit/logs.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Show the launched command lines")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Show debug messages")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(gtkwaveCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)
}
