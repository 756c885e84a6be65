package executable

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	ErrSessionUsed     = errors.New("session already run")
	ErrNoExecutable    = errors.New("argument list has no executable")
	ErrUnknownArgument = errors.New("unknown argument")
)

// LaunchError reports that an external process could not be started.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// PlatformUnsupportedError reports a platform with no known executable layout.
type PlatformUnsupportedError struct {
	Platform Platform
}

func (e *PlatformUnsupportedError) Error() string {
	return fmt.Sprintf("platform %q is not supported", string(e.Platform))
}

// AbortError is returned by a Filter when a line matches a rule that ends the
// run instead of being logged.
type AbortError struct {
	Rule    string
	Line    string
	Message string
}

func (e *AbortError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Rule, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Rule, e.Line)
}

// IsAbort reports whether err is, or wraps, an AbortError.
func IsAbort(err error) bool {
	var abortErr *AbortError
	return errors.As(err, &abortErr)
}
