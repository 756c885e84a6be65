package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/edakit/edakit/internal/config"
	"github.com/edakit/edakit/internal/executable"
	"github.com/edakit/edakit/internal/models"
	"github.com/edakit/edakit/internal/watcher"
)

var (
	runRules   string
	runPTY     bool
	runWatch   []string
	runFailOn  string
	runTimeout time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run <tool> [-- args...]",
	Short: "Run a tool and classify its output",
	Long: `Run any configured tool and classify its console output.

The executable is looked up in the tool's binary directory from the settings
file, or in PATH when none is configured. Arguments after "--" are passed to
the tool unchanged.

With --watch, the tool is run again whenever one of the watched files
changes, until interrupted.`,
	Example: `  edakit run ghdl --rules located -- -a counter.vhdl
  edakit run ghdl --watch counter.vhdl -- -a counter.vhdl`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runRules, "rules", "",
		"Classification rules ("+strings.Join(executable.RulePresetNames(), ", ")+"); defaults to the tool setting")
	runCmd.Flags().BoolVar(&runPTY, "pty", false, "Run the tool in a pseudo-terminal")
	runCmd.Flags().StringArrayVar(&runWatch, "watch", nil, "Re-run when this file changes (repeatable)")
	runCmd.Flags().StringVar(&runFailOn, "fail-on", "", "Fail when the tool reports messages of this severity (warning, error)")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "Kill the tool after this long; defaults to the tool setting")
}

// toolExecutablePath returns where the executable of tool is launched from.
func toolExecutablePath(tool string, cfg *models.ToolConfig, platform executable.Platform) string {
	name := tool
	if platform == executable.PlatformWindows && filepath.Ext(name) == "" {
		name += ".exe"
	}
	if dir := config.ResolveBinaryDirectory(cfg); dir != "" {
		return filepath.Join(dir, name)
	}
	return name
}

// failThreshold parses --fail-on. A nil result never fails.
func failThreshold(s string) (*models.Severity, error) {
	if s == "" {
		return nil, nil
	}
	sev, err := models.ParseSeverity(s)
	if err != nil {
		return nil, err
	}
	if sev == models.SeverityNormal {
		return nil, fmt.Errorf("--fail-on must be warning or error")
	}
	return &sev, nil
}

// checkResult turns a completed run into an error when the tool failed, was
// killed, or reported messages at or above the threshold.
func checkResult(tool string, result executable.Result, threshold *models.Severity) error {
	switch {
	case result.ExitCode > 0:
		return fmt.Errorf("%s exited with code %d", tool, result.ExitCode)
	case result.ExitErr != nil:
		return fmt.Errorf("%s was terminated: %w", tool, result.ExitErr)
	case result.ExitCode != 0:
		return fmt.Errorf("%s did not exit normally", tool)
	}
	if threshold == nil {
		return nil
	}
	if result.HasErrors {
		return fmt.Errorf("%s reported errors", tool)
	}
	if *threshold == models.SeverityWarning && result.HasWarnings {
		return fmt.Errorf("%s reported warnings", tool)
	}
	return nil
}

func runRun(cmd *cobra.Command, args []string) error {
	tool := args[0]
	toolArgs := args[1:]

	threshold, err := failThreshold(runFailOn)
	if err != nil {
		return err
	}

	run, err := newToolRun(cmd)
	if err != nil {
		return err
	}

	cfg := run.settings.Tool(tool)
	preset := cfg.Rules
	if cmd.Flags().Changed("rules") {
		preset = runRules
	}
	rules, err := executable.RulePreset(preset)
	if err != nil {
		return err
	}

	opts := processOptions(cfg)
	if cmd.Flags().Changed("pty") {
		opts.UsePTY = runPTY
	}
	if runTimeout > 0 {
		opts.Timeout = runTimeout
	}

	inv := executable.Invocation{
		Path: toolExecutablePath(tool, cfg, executable.CurrentPlatform()),
		Args: toolArgs,
	}
	runner := executable.NewProcessRunner(opts)

	once := func(ctx context.Context) error {
		session := executable.NewSession(executable.SessionOptions{
			Runner: runner,
			Rules:  rules,
			Logger: run.logger(),
			Title:  fmt.Sprintf("%s messages", tool),
			Indent: 2,
		})

		startedAt := time.Now()
		result, runErr := session.Run(ctx, inv)
		run.saveLog(tool, inv, startedAt, result, runErr)
		if runErr != nil {
			return runErr
		}
		printSummary(cmd.OutOrStdout(), tool, result)
		return checkResult(tool, result, threshold)
	}

	if len(runWatch) == 0 {
		return once(cmd.Context())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchLoop(ctx, cmd, runWatch, once)
}

// watchLoop runs fn once, then again after every change to one of paths,
// until ctx is cancelled. Run failures are reported and the loop goes on.
func watchLoop(ctx context.Context, cmd *cobra.Command, paths []string, fn func(context.Context) error) error {
	w, err := watcher.New(watcher.DefaultDebounce)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Stop()

	for _, p := range paths {
		if err := w.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
	}
	w.Start()

	out := cmd.ErrOrStderr()
	report := func(err error) {
		if err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintln(out, styleError.Render("Error: "+err.Error()))
		}
	}

	report(fn(ctx))
	fmt.Fprintln(out, styleHint.Render("Watching for changes. Press Ctrl+C to stop."))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-w.Events():
			fmt.Fprintln(out, styleLabel.Render("Changed: "+ev.Path))
			report(fn(ctx))
		}
	}
}
