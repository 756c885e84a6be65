package gtkwave

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edakit/edakit/internal/executable"
	"github.com/edakit/edakit/internal/logging"
)

type linesReader struct {
	lines []string
}

func (r *linesReader) ReadLine() (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

// scriptedRunner serves one scripted output per Start call.
type scriptedRunner struct {
	outputs  [][]string
	startErr error
	started  []executable.Invocation
}

func (r *scriptedRunner) Start(_ context.Context, inv executable.Invocation) (executable.LineReader, error) {
	r.started = append(r.started, inv)
	if r.startErr != nil {
		return nil, r.startErr
	}
	var lines []string
	if len(r.outputs) > 0 {
		lines = r.outputs[0]
		r.outputs = r.outputs[1:]
	}
	return &linesReader{lines: lines}, nil
}

func TestNewResolvesExecutablePerPlatform(t *testing.T) {
	binDir := filepath.Join("opt", "gtkwave", "bin")

	g, err := New(executable.PlatformLinux, binDir, "3.3.70", Options{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(binDir, "gtkwave"), g.ExecutablePath())
	assert.Equal(t, binDir, g.BinaryDirectoryPath())
	assert.Equal(t, "3.3.70", g.Version())
	assert.Equal(t, executable.PlatformLinux, g.Platform())

	g, err = New(executable.PlatformWindows, binDir, "3.3.70", Options{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(binDir, "gtkwave.exe"), g.ExecutablePath())

	g, err = New(executable.PlatformLinux, "", "", Options{})
	require.NoError(t, err)
	assert.Equal(t, "gtkwave", g.ExecutablePath())
}

func TestNewRejectsUnknownPlatform(t *testing.T) {
	runner := &scriptedRunner{}
	g, err := New(executable.PlatformDarwin, "/usr/bin", "3.3.70", Options{Runner: runner})
	require.Error(t, err)
	assert.Nil(t, g)

	var pe *executable.PlatformUnsupportedError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, executable.PlatformDarwin, pe.Platform)
	assert.Empty(t, runner.started)
}

func TestParametersRenderLongFlags(t *testing.T) {
	g, err := New(executable.PlatformLinux, "/usr/bin", "3.3.70", Options{})
	require.NoError(t, err)

	require.NoError(t, g.SetDumpFile("sim/wave.ghw"))
	require.NoError(t, g.SetSaveFile("sim/wave.gtkw"))

	assert.Equal(t, []string{"/usr/bin/gtkwave", "--dump=sim/wave.ghw", "--save=sim/wave.gtkw"},
		g.Parameters().ToArgumentList())

	require.NoError(t, g.SetSaveFile(""))
	assert.Equal(t, []string{"/usr/bin/gtkwave", "--dump=sim/wave.ghw"}, g.Parameters().ToArgumentList())
}

func TestViewLogsFramedOutput(t *testing.T) {
	runner := &scriptedRunner{outputs: [][]string{{"GTKWave Analyzer v3.3.70", "[0] start time."}}}
	rec := logging.NewRecorder()
	g, err := New(executable.PlatformLinux, "/usr/bin", "3.3.70", Options{Runner: runner, Logger: rec, Dir: "/work"})
	require.NoError(t, err)
	require.NoError(t, g.SetDumpFile("wave.vcd"))

	res, err := g.View(context.Background())
	require.NoError(t, err)
	assert.True(t, res.HasOutput)
	assert.True(t, g.HasOutput())
	assert.False(t, g.HasWarnings())
	assert.False(t, g.HasErrors())

	require.Len(t, runner.started, 1)
	assert.Equal(t, "/usr/bin/gtkwave", runner.started[0].Path)
	assert.Equal(t, []string{"--dump=wave.vcd"}, runner.started[0].Args)
	assert.Equal(t, "/work", runner.started[0].Dir)

	assert.Equal(t, []string{
		"    command: /usr/bin/gtkwave --dump=wave.vcd",
		"    GTKWave messages for 'wave.vcd'",
		executable.Separator,
		"    GTKWave Analyzer v3.3.70",
		"    [0] start time.",
		executable.Separator,
	}, rec.Lines())
}

func TestViewWrapsLaunchFailure(t *testing.T) {
	cause := &executable.LaunchError{Path: "/usr/bin/gtkwave", Err: errors.New("permission denied")}
	runner := &scriptedRunner{startErr: cause}
	rec := logging.NewRecorder()
	g, err := New(executable.PlatformLinux, "/usr/bin", "3.3.70", Options{Runner: runner, Logger: rec})
	require.NoError(t, err)

	_, err = g.View(context.Background())
	require.Error(t, err)

	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "launch", ge.Op)
	assert.ErrorIs(t, err, cause)
	assert.Empty(t, rec.Entries())
}

func TestViewWithMissingExecutable(t *testing.T) {
	binDir := filepath.Join(t.TempDir(), "missing")
	g, err := New(executable.PlatformLinux, binDir, "3.3.70", Options{})
	require.NoError(t, err)

	_, err = g.View(context.Background())

	var ge *Error
	require.ErrorAs(t, err, &ge)
	var le *executable.LaunchError
	assert.ErrorAs(t, err, &le)
}

func TestViewResetsFlagsBetweenRuns(t *testing.T) {
	runner := &scriptedRunner{outputs: [][]string{
		{"wave.vcd:1:1: warning: truncated", "wave.vcd:2:1: bad header"},
		{},
	}}
	g, err := New(executable.PlatformLinux, "", "", Options{Runner: runner, Rules: executable.LocatedRules()})
	require.NoError(t, err)

	res, err := g.View(context.Background())
	require.NoError(t, err)
	assert.True(t, res.HasOutput)
	assert.True(t, res.HasWarnings)
	assert.True(t, res.HasErrors)

	res, err = g.View(context.Background())
	require.NoError(t, err)
	assert.False(t, res.HasOutput)
	assert.False(t, g.HasWarnings())
	assert.False(t, g.HasErrors())
}

func TestViewStreamAbortIsNotWrapped(t *testing.T) {
	runner := &scriptedRunner{outputs: [][]string{{"top.vhd:1:1: unit top has changed and must be reanalysed"}}}
	g, err := New(executable.PlatformLinux, "", "", Options{Runner: runner, Rules: []executable.Rule{executable.ReanalyzeRule}})
	require.NoError(t, err)

	_, err = g.View(context.Background())
	require.Error(t, err)

	var ge *Error
	assert.False(t, errors.As(err, &ge))
	assert.True(t, executable.IsAbort(err))
}

func TestCheckInstalled(t *testing.T) {
	runner := &scriptedRunner{outputs: [][]string{{"GTKWave Analyzer v3.3.104 (w)1999-2020 BSI"}}}
	g, err := New(executable.PlatformLinux, "/usr/bin", "3.3.70", Options{Runner: runner})
	require.NoError(t, err)

	v, err := g.CheckInstalled(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "3.3.104", v.String())
	require.Len(t, runner.started, 1)
	assert.Equal(t, []string{"--version"}, runner.started[0].Args)
}

func TestCheckInstalledWithoutVersion(t *testing.T) {
	runner := &scriptedRunner{outputs: [][]string{{"usage: gtkwave [options]"}}}
	g, err := New(executable.PlatformLinux, "/usr/bin", "3.3.70", Options{Runner: runner})
	require.NoError(t, err)

	_, err = g.CheckInstalled(context.Background())
	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "check", ge.Op)
}
