// Package executable launches external tools and classifies their console
// output.
package executable

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/edakit/edakit/internal/logging"
	"github.com/edakit/edakit/internal/models"
)

// State is the lifecycle state of a Session.
type State int

// Session states.
const (
	StateIdle State = iota
	StateLaunching
	StateStreaming
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLaunching:
		return "launching"
	case StateStreaming:
		return "streaming"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Separator frames a block of tool messages.
var Separator = "    " + strings.Repeat("-", 76)

// Result summarizes one run. The flags only ever go from false to true while
// the run is in progress.
type Result struct {
	HasOutput   bool
	HasWarnings bool
	HasErrors   bool
	Entries     int
	ExitCode    int   // -1 until the process is reaped, or when it was killed
	ExitErr     error // why the process did not exit cleanly, if it did not
}

// SessionOptions configures a Session.
type SessionOptions struct {
	Runner Runner
	Rules  []Rule
	Logger logging.Logger
	Title  string // printed before the first entry, if set
	Indent int    // indentation applied to every entry
}

// Session performs a single tool run. Create a new Session per run.
type Session struct {
	runner Runner
	rules  []Rule
	logger logging.Logger
	title  string
	indent int

	state    State
	launched bool
	result   Result
}

// NewSession creates an idle session. A nil Runner means a ProcessRunner
// with default options.
func NewSession(opts SessionOptions) *Session {
	runner := opts.Runner
	if runner == nil {
		runner = NewProcessRunner(ProcessOptions{})
	}
	return &Session{
		runner: runner,
		rules:  opts.Rules,
		logger: logging.OrNop(opts.Logger),
		title:  opts.Title,
		indent: opts.Indent,
		state:  StateIdle,
	}
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Launched reports whether the process was started. A failed run that was
// never launched failed in the launch step.
func (s *Session) Launched() bool {
	return s.launched
}

// Result returns the summary of the run so far.
func (s *Session) Result() Result {
	return s.result
}

// Run launches inv and logs its classified output until the output stream
// closes.
//
// A launch failure is returned as the runner reported it (a *LaunchError for
// ProcessRunner) and nothing is logged. Errors while reading or classifying
// output, including *AbortError, are returned unchanged after everything
// before them has been logged.
func (s *Session) Run(ctx context.Context, inv Invocation) (Result, error) {
	if s.state != StateIdle {
		return s.result, ErrSessionUsed
	}

	s.result = Result{ExitCode: -1}
	s.state = StateLaunching
	s.logger.Verbose("    command: %s", inv.CommandLine())

	reader, err := s.runner.Start(ctx, inv)
	if err != nil {
		s.state = StateFailed
		return s.result, err
	}

	s.launched = true
	s.state = StateStreaming
	err = s.stream(reader)

	if s.result.HasOutput {
		s.logger.Normal("%s", Separator)
	}
	if err != nil {
		if c, ok := reader.(io.Closer); ok {
			_ = c.Close()
		}
		s.state = StateFailed
		return s.result, err
	}

	if p, ok := reader.(interface{ ExitCode() int }); ok {
		s.result.ExitCode = p.ExitCode()
		s.logger.Debug("    exit code: %d", s.result.ExitCode)
	}
	if p, ok := reader.(interface{ ExitErr() error }); ok && p.ExitErr() != nil {
		s.result.ExitErr = p.ExitErr()
		s.logger.Debug("    exit: %v", s.result.ExitErr)
	}
	s.state = StateCompleted
	return s.result, nil
}

func (s *Session) stream(reader LineReader) error {
	filter := NewFilter(reader, s.rules)
	for {
		entry, err := filter.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		entry = entry.Indented(s.indent)
		if !s.result.HasOutput {
			s.result.HasOutput = true
			if s.title != "" {
				s.logger.Normal("    %s", s.title)
				s.logger.Normal("%s", Separator)
			}
		}
		s.result.Entries++
		s.result.HasWarnings = s.result.HasWarnings || entry.Severity == models.SeverityWarning
		s.result.HasErrors = s.result.HasErrors || entry.Severity == models.SeverityError
		s.logger.Log(entry)
	}
}
