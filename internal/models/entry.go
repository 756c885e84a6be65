package models

import (
	"fmt"
	"strings"
)

// Severity classifies a line of tool output. Values are ordered by
// increasing criticality.
type Severity int

// Severities.
const (
	SeverityNormal Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityNormal:
		return "normal"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// ParseSeverity parses a severity name (case-insensitive).
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "":
		return SeverityNormal, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	}
	return SeverityNormal, fmt.Errorf("unknown severity: %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// LogEntry is one classified line of tool output.
type LogEntry struct {
	Text     string
	Severity Severity
	Indent   int
}

// NewLogEntry creates an entry with no indentation.
func NewLogEntry(text string, severity Severity) LogEntry {
	return LogEntry{Text: text, Severity: severity}
}

// Indented returns a copy of the entry indented by n more levels.
func (e LogEntry) Indented(n int) LogEntry {
	e.Indent += n
	return e
}

// String renders the entry with two spaces per indentation level.
func (e LogEntry) String() string {
	if e.Indent <= 0 {
		return e.Text
	}
	return strings.Repeat("  ", e.Indent) + e.Text
}
