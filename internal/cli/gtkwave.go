package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/edakit/edakit/internal/config"
	"github.com/edakit/edakit/internal/executable"
	"github.com/edakit/edakit/internal/toolchain/gtkwave"
	"github.com/edakit/edakit/internal/toolversion"
)

const gtkwaveTool = "gtkwave"

var (
	gtkwaveDumpFile string
	gtkwaveSaveFile string
)

var gtkwaveCmd = &cobra.Command{
	Use:   "gtkwave",
	Short: "Run the GTKWave waveform viewer",
}

var gtkwaveViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open a waveform dump in GTKWave",
	Long: `Open a waveform dump in GTKWave and show its console messages.

The installation is taken from the gtkwave entry of the settings file;
without an installation_directory, gtkwave is looked up in PATH.`,
	Args: cobra.NoArgs,
	RunE: runGTKWaveView,
}

var gtkwaveCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that GTKWave is installed",
	Args:  cobra.NoArgs,
	RunE:  runGTKWaveCheck,
}

func init() {
	gtkwaveViewCmd.Flags().StringVar(&gtkwaveDumpFile, "dump", "", "Waveform dump file (VCD, FST, ...)")
	gtkwaveViewCmd.Flags().StringVar(&gtkwaveSaveFile, "save", "", "GTKWave save file with the signal selection")
	_ = gtkwaveViewCmd.MarkFlagRequired("dump")

	gtkwaveCmd.AddCommand(gtkwaveViewCmd)
	gtkwaveCmd.AddCommand(gtkwaveCheckCmd)
}

func newGTKWave(run *toolRun) (*gtkwave.GTKWave, error) {
	cfg := run.settings.Tool(gtkwaveTool)
	rules, err := executable.RulePreset(cfg.Rules)
	if err != nil {
		return nil, err
	}

	return gtkwave.New(
		executable.CurrentPlatform(),
		config.ResolveBinaryDirectory(cfg),
		cfg.Version,
		gtkwave.Options{
			Runner: executable.NewProcessRunner(processOptions(cfg)),
			Logger: run.logger(),
			Rules:  rules,
		},
	)
}

func runGTKWaveView(cmd *cobra.Command, args []string) error {
	run, err := newToolRun(cmd)
	if err != nil {
		return err
	}

	gw, err := newGTKWave(run)
	if err != nil {
		return err
	}
	if err := gw.SetDumpFile(gtkwaveDumpFile); err != nil {
		return err
	}
	if err := gw.SetSaveFile(gtkwaveSaveFile); err != nil {
		return err
	}

	inv, err := gw.Invocation()
	if err != nil {
		return err
	}

	startedAt := time.Now()
	result, viewErr := gw.View(cmd.Context())
	run.saveLog(gtkwaveTool, inv, startedAt, result, viewErr)
	if viewErr != nil {
		return viewErr
	}

	printSummary(cmd.OutOrStdout(), "GTKWave", result)
	return nil
}

func runGTKWaveCheck(cmd *cobra.Command, args []string) error {
	run, err := newToolRun(cmd)
	if err != nil {
		return err
	}

	gw, err := newGTKWave(run)
	if err != nil {
		return err
	}

	found, err := gw.CheckInstalled(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s %s\n",
		styleSuccess.Render("GTKWave"),
		styleVersion.Render(found.String()),
		styleHint.Render("("+gw.ExecutablePath()+")"))

	if want, err := toolversion.ParseSemver(gw.Version()); err == nil && found.LessThan(want) {
		fmt.Fprintln(out, styleWarning.Render(fmt.Sprintf("Installed GTKWave is older than the configured version %s.", want)))
	}
	return nil
}
