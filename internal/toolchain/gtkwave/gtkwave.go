// Package gtkwave wraps the GTKWave waveform viewer.
package gtkwave

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/edakit/edakit/internal/executable"
	"github.com/edakit/edakit/internal/logging"
	"github.com/edakit/edakit/internal/toolversion"
)

// Parameter names.
const (
	ArgExecutable = "executable"
	ArgDumpFile   = "dump"
	ArgSaveFile   = "save"
)

// Error is returned when GTKWave cannot be run.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to %s GTKWave: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Options configures how GTKWave is launched and where its output goes.
type Options struct {
	Runner executable.Runner // nil = executable.ProcessRunner
	Logger logging.Logger
	Rules  []executable.Rule // empty: every line is Normal
	Dir    string
}

// GTKWave is a configured GTKWave installation.
type GTKWave struct {
	platform       executable.Platform
	binaryDir      string
	version        string
	executablePath string
	params         *executable.ArgumentList

	runner executable.Runner
	logger logging.Logger
	rules  []executable.Rule
	dir    string

	result executable.Result
}

// ExecutableName returns the GTKWave binary name for platform.
func ExecutableName(platform executable.Platform) (string, error) {
	switch platform {
	case executable.PlatformWindows:
		return "gtkwave.exe", nil
	case executable.PlatformLinux:
		return "gtkwave", nil
	}
	return "", &executable.PlatformUnsupportedError{Platform: platform}
}

// New creates a GTKWave wrapper. An empty binaryDir leaves the executable to
// be found in PATH when it is launched.
func New(platform executable.Platform, binaryDir, version string, opts Options) (*GTKWave, error) {
	name, err := ExecutableName(platform)
	if err != nil {
		return nil, err
	}

	executablePath := name
	if binaryDir != "" {
		executablePath = filepath.Join(binaryDir, name)
	}

	params := executable.NewArgumentList(
		executable.Argument{Name: ArgExecutable, Kind: executable.KindExecutable},
		executable.Argument{Name: ArgDumpFile, Kind: executable.KindLongValuedFlag},
		executable.Argument{Name: ArgSaveFile, Kind: executable.KindLongValuedFlag},
	)
	if err := params.Set(ArgExecutable, executablePath); err != nil {
		return nil, err
	}

	runner := opts.Runner
	if runner == nil {
		runner = executable.NewProcessRunner(executable.ProcessOptions{})
	}

	return &GTKWave{
		platform:       platform,
		binaryDir:      binaryDir,
		version:        version,
		executablePath: executablePath,
		params:         params,
		runner:         runner,
		logger:         logging.OrNop(opts.Logger),
		rules:          opts.Rules,
		dir:            opts.Dir,
	}, nil
}

// Platform returns the platform the executable path was resolved for.
func (g *GTKWave) Platform() executable.Platform { return g.platform }

// BinaryDirectoryPath returns the configured binary directory.
func (g *GTKWave) BinaryDirectoryPath() string { return g.binaryDir }

// Version returns the configured version.
func (g *GTKWave) Version() string { return g.version }

// ExecutablePath returns the path GTKWave is launched from.
func (g *GTKWave) ExecutablePath() string { return g.executablePath }

// Parameters returns the command-line parameters of the next run.
func (g *GTKWave) Parameters() *executable.ArgumentList { return g.params }

// SetDumpFile sets the waveform dump to open. The file is passed through
// unopened; an empty path drops the flag.
func (g *GTKWave) SetDumpFile(path string) error {
	return g.params.Set(ArgDumpFile, path)
}

// SetSaveFile sets the save file (signal selection) to load. An empty path
// drops the flag.
func (g *GTKWave) SetSaveFile(path string) error {
	return g.params.Set(ArgSaveFile, path)
}

// HasOutput reports whether the last run printed anything.
func (g *GTKWave) HasOutput() bool { return g.result.HasOutput }

// HasWarnings reports whether the last run printed warnings.
func (g *GTKWave) HasWarnings() bool { return g.result.HasWarnings }

// HasErrors reports whether the last run printed errors.
func (g *GTKWave) HasErrors() bool { return g.result.HasErrors }

// Invocation returns the invocation View would launch.
func (g *GTKWave) Invocation() (executable.Invocation, error) {
	inv, err := g.params.Invocation()
	if err != nil {
		return executable.Invocation{}, err
	}
	inv.Dir = g.dir
	return inv, nil
}

// View opens GTKWave and logs its console output until it exits.
func (g *GTKWave) View(ctx context.Context) (executable.Result, error) {
	g.result = executable.Result{}

	inv, err := g.Invocation()
	if err != nil {
		return g.result, err
	}

	session := executable.NewSession(executable.SessionOptions{
		Runner: g.runner,
		Rules:  g.rules,
		Logger: g.logger,
		Title:  fmt.Sprintf("GTKWave messages for '%s'", g.params.Get(ArgDumpFile)),
		Indent: 2,
	})

	result, err := session.Run(ctx, inv)
	g.result = result
	if err != nil && !session.Launched() {
		return result, &Error{Op: "launch", Err: err}
	}
	return result, err
}

// CheckInstalled runs "gtkwave --version" and returns the version it
// reports.
func (g *GTKWave) CheckInstalled(ctx context.Context) (toolversion.Semver, error) {
	rec := logging.NewRecorder()
	session := executable.NewSession(executable.SessionOptions{
		Runner: g.runner,
		Logger: rec,
	})

	inv := executable.Invocation{Path: g.executablePath, Args: []string{"--version"}, Dir: g.dir}
	if _, err := session.Run(ctx, inv); err != nil {
		if !session.Launched() {
			return toolversion.Semver{}, &Error{Op: "check", Err: err}
		}
		return toolversion.Semver{}, err
	}

	var out strings.Builder
	for _, e := range rec.Entries() {
		out.WriteString(e.Text)
		out.WriteByte('\n')
	}
	v, err := toolversion.Find(out.String())
	if err != nil {
		return toolversion.Semver{}, &Error{Op: "check", Err: err}
	}
	return v, nil
}
