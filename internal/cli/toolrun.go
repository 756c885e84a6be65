package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/edakit/edakit/internal/config"
	"github.com/edakit/edakit/internal/executable"
	"github.com/edakit/edakit/internal/logging"
	"github.com/edakit/edakit/internal/models"
)

// toolRun carries what every tool command needs: settings, the console the
// user sees and a recorder feeding the session log.
type toolRun struct {
	settings *models.Settings
	console  *logging.Console
	recorder *logging.Recorder
}

func newToolRun(cmd *cobra.Command) (*toolRun, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	verbosity, err := resolveVerbosity(settings)
	if err != nil {
		return nil, err
	}

	return &toolRun{
		settings: settings,
		console:  logging.NewConsole(cmd.OutOrStdout(), verbosity),
		recorder: logging.NewRecorder(),
	}, nil
}

// resolveVerbosity applies --debug and --verbose on top of the configured
// default.
func resolveVerbosity(settings *models.Settings) (logging.Verbosity, error) {
	switch {
	case flagDebug:
		return logging.VerbosityDebug, nil
	case flagVerbose:
		return logging.VerbosityVerbose, nil
	}
	v, err := logging.ParseVerbosity(settings.Defaults.Verbosity)
	if err != nil {
		return logging.VerbosityNormal, fmt.Errorf("invalid defaults.verbosity in settings: %w", err)
	}
	return v, nil
}

// logger returns the logger a session writes to.
func (r *toolRun) logger() logging.Logger {
	return logging.Multi(r.console, r.recorder)
}

// processOptions builds runner options from a tool's configuration.
func processOptions(cfg *models.ToolConfig) executable.ProcessOptions {
	return executable.ProcessOptions{
		UsePTY:  cfg.UsePTY,
		Timeout: cfg.Timeout,
	}
}

// sessionStatus maps the outcome of a run to the status stored in its log.
// A tool that exited non-zero or was killed counts as failed.
func sessionStatus(result executable.Result, err error) string {
	switch {
	case executable.IsAbort(err):
		return models.SessionStatusAborted
	case err != nil, result.ExitCode != 0, result.ExitErr != nil:
		return models.SessionStatusFailed
	}
	return models.SessionStatusCompleted
}

// saveLog writes the recorded lines of one run and resets the recorder.
// Nothing is written when keep_logs is off.
func (r *toolRun) saveLog(tool string, inv executable.Invocation, startedAt time.Time, result executable.Result, runErr error) {
	defer r.recorder.Reset()
	if !r.settings.Defaults.KeepLogs {
		return
	}

	entry, err := config.WriteLog(&models.SessionLog{
		Tool:        tool,
		Command:     inv.CommandLine(),
		Status:      sessionStatus(result, runErr),
		HasWarnings: result.HasWarnings,
		HasErrors:   result.HasErrors,
		ExitCode:    result.ExitCode,
	}, startedAt, r.recorder.Lines())
	if err != nil {
		r.console.Normal("%s", styleWarning.Render(fmt.Sprintf("Warning: failed to save session log: %v", err)))
		return
	}
	r.console.Debug("session log: %s", entry.LogID)
}

// printSummary writes a one-line outcome of a run.
func printSummary(w io.Writer, tool string, result executable.Result) {
	switch {
	case result.HasErrors:
		fmt.Fprintln(w, styleError.Render(tool+" reported errors."))
	case result.HasWarnings:
		fmt.Fprintln(w, styleWarning.Render(tool+" reported warnings."))
	}
}
