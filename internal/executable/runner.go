package executable

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/creack/pty"
)

// LineReader yields process output one line at a time and returns io.EOF
// once the output stream is closed. It is single-pass.
type LineReader interface {
	ReadLine() (string, error)
}

// Runner launches an Invocation.
type Runner interface {
	Start(ctx context.Context, inv Invocation) (LineReader, error)
}

// ProcessOptions configures how processes are launched.
type ProcessOptions struct {
	UsePTY  bool          // run inside a pseudo-terminal instead of a pipe
	Rows    int           // PTY rows, default 24
	Cols    int           // PTY columns, default 80
	Timeout time.Duration // 0 = run until the process exits
}

// ProcessRunner starts real operating-system processes.
type ProcessRunner struct {
	opts ProcessOptions
}

// NewProcessRunner creates a runner with the given options.
func NewProcessRunner(opts ProcessOptions) *ProcessRunner {
	return &ProcessRunner{opts: opts}
}

// Start implements Runner.
func (r *ProcessRunner) Start(ctx context.Context, inv Invocation) (LineReader, error) {
	p, err := StartProcess(ctx, inv, r.opts)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Process is a running external tool whose stdout and stderr are read as one
// stream.
type Process struct {
	ctx       context.Context
	cmd       *exec.Cmd
	out       *os.File
	reader    *bufio.Reader
	usePTY    bool
	timeout   time.Duration
	cancel    context.CancelFunc
	stopClose func() bool

	finished bool
	exitErr  error
	exitCode int
}

// StartProcess launches inv in its own process group. When the timeout
// expires or Close is called, the whole group is killed and the output
// stream is closed, so descendants that inherited it cannot keep the read
// blocked. Any failure to start is returned as a *LaunchError.
func StartProcess(ctx context.Context, inv Invocation, opts ProcessOptions) (*Process, error) {
	var cancel context.CancelFunc
	if opts.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	cmd := inv.command(ctx)
	// pty.Start puts the child in a new session, which is already its own
	// process group.
	configureProcessGroup(cmd, !opts.UsePTY)

	var out *os.File
	if opts.UsePTY {
		rows, cols := opts.Rows, opts.Cols
		if rows <= 0 {
			rows = 24
		}
		if cols <= 0 {
			cols = 80
		}
		ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
		if err != nil {
			cancel()
			return nil, &LaunchError{Path: inv.Path, Err: err}
		}
		out = ptmx
	} else {
		pr, pw, err := os.Pipe()
		if err != nil {
			cancel()
			return nil, &LaunchError{Path: inv.Path, Err: err}
		}
		cmd.Stdout = pw
		cmd.Stderr = pw
		if err := cmd.Start(); err != nil {
			pr.Close()
			pw.Close()
			cancel()
			return nil, &LaunchError{Path: inv.Path, Err: err}
		}
		// The child holds its own copy of the write end.
		pw.Close()
		out = pr
	}

	return &Process{
		ctx:       ctx,
		cmd:       cmd,
		out:       out,
		reader:    bufio.NewReader(out),
		usePTY:    opts.UsePTY,
		timeout:   opts.Timeout,
		cancel:    cancel,
		stopClose: context.AfterFunc(ctx, func() { _ = out.Close() }),
		exitCode:  -1,
	}, nil
}

// ReadLine returns the next line of output without its line terminator.
// A final line without a terminator is still returned. Once the output is
// exhausted the process is reaped and io.EOF is returned.
func (p *Process) ReadLine() (string, error) {
	if p.finished {
		return "", io.EOF
	}

	line, err := p.reader.ReadString('\n')
	if err != nil {
		if !p.isEndOfOutput(err) {
			return "", err
		}
		if line != "" {
			return p.clean(line), nil
		}
		p.finish()
		return "", io.EOF
	}
	return p.clean(line), nil
}

// A PTY master reports EIO once the child side is closed.
func (p *Process) isEndOfOutput(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
		return true
	}
	return p.usePTY && errors.Is(err, syscall.EIO)
}

func (p *Process) clean(line string) string {
	line = strings.TrimRight(line, "\r\n")
	if p.usePTY {
		line = strings.TrimRight(ansi.Strip(line), "\r")
	}
	return line
}

func (p *Process) finish() {
	if p.finished {
		return
	}
	p.finished = true
	p.stopClose()
	_ = p.out.Close()
	p.exitErr = p.cmd.Wait()
	if p.cmd.ProcessState != nil {
		p.exitCode = p.cmd.ProcessState.ExitCode()
	}
	if errors.Is(p.ctx.Err(), context.DeadlineExceeded) {
		p.exitErr = fmt.Errorf("killed after %s: %w", p.timeout, context.DeadlineExceeded)
	}
	p.cancel()
}

// Close stops the process if it is still running and releases its output
// stream. It is safe to call after the output has been exhausted.
func (p *Process) Close() error {
	if p.finished {
		return nil
	}
	p.cancel()
	p.finish()
	return nil
}

// ExitCode returns the exit code, or -1 while output is still being read or
// when the process was killed by a signal.
func (p *Process) ExitCode() int {
	return p.exitCode
}

// ExitErr returns the error reported by waiting on the process (nil if it
// exited cleanly). A process killed by the timeout reports an error wrapping
// context.DeadlineExceeded. Only meaningful after ReadLine returned io.EOF.
func (p *Process) ExitErr() error {
	return p.exitErr
}
