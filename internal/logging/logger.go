// Package logging provides the sinks that tool output is written to.
package logging

import (
	"fmt"
	"strings"

	"github.com/edakit/edakit/internal/models"
)

// Verbosity selects which message tiers a logger emits.
type Verbosity int

// Verbosity tiers. Entries and Normal messages are always emitted.
const (
	VerbosityNormal Verbosity = iota
	VerbosityVerbose
	VerbosityDebug
)

// ParseVerbosity parses "normal", "verbose" or "debug".
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return VerbosityNormal, nil
	case "verbose":
		return VerbosityVerbose, nil
	case "debug":
		return VerbosityDebug, nil
	}
	return VerbosityNormal, fmt.Errorf("unknown verbosity: %q", s)
}

// Logger receives classified tool output and free-text status lines.
type Logger interface {
	Log(entry models.LogEntry)
	Normal(format string, args ...any)
	Verbose(format string, args ...any)
	Debug(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Log(models.LogEntry)   {}
func (nopLogger) Normal(string, ...any)  {}
func (nopLogger) Verbose(string, ...any) {}
func (nopLogger) Debug(string, ...any)   {}

// Nop returns a logger that discards all output.
func Nop() Logger {
	return nopLogger{}
}

// OrNop returns logger when non-nil, otherwise a no-op logger.
func OrNop(logger Logger) Logger {
	if logger == nil {
		return Nop()
	}
	return logger
}

type multiLogger struct {
	loggers []Logger
}

// Multi returns a logger fan-out that calls every non-nil logger in order.
func Multi(loggers ...Logger) Logger {
	flattened := make([]Logger, 0, len(loggers))
	for _, logger := range loggers {
		if logger == nil {
			continue
		}
		if ml, ok := logger.(*multiLogger); ok {
			flattened = append(flattened, ml.loggers...)
			continue
		}
		flattened = append(flattened, logger)
	}
	switch len(flattened) {
	case 0:
		return Nop()
	case 1:
		return flattened[0]
	}
	return &multiLogger{loggers: flattened}
}

func (l *multiLogger) Log(entry models.LogEntry) {
	for _, logger := range l.loggers {
		logger.Log(entry)
	}
}

func (l *multiLogger) Normal(format string, args ...any) {
	for _, logger := range l.loggers {
		logger.Normal(format, args...)
	}
}

func (l *multiLogger) Verbose(format string, args ...any) {
	for _, logger := range l.loggers {
		logger.Verbose(format, args...)
	}
}

func (l *multiLogger) Debug(format string, args ...any) {
	for _, logger := range l.loggers {
		logger.Debug(format, args...)
	}
}
