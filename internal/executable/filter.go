package executable

import (
	"regexp"

	"github.com/edakit/edakit/internal/models"
)

// Rule maps lines matching Pattern to a severity. When Abort is set, a
// matching line ends the run with an *AbortError instead of being logged.
type Rule struct {
	Name     string
	Pattern  *regexp.Regexp
	Severity models.Severity
	Abort    bool
}

// match reports whether the rule applies to line and returns the text of the
// pattern's "Message" group, if it has one.
func (r Rule) match(line string) (bool, string) {
	if r.Pattern == nil {
		return false, ""
	}
	m := r.Pattern.FindStringSubmatch(line)
	if m == nil {
		return false, ""
	}
	if i := r.Pattern.SubexpIndex("Message"); i >= 0 && i < len(m) {
		return true, m[i]
	}
	return true, ""
}

// Classify returns the entry for line and the first rule that matched it
// (nil if none did, in which case the entry is Normal).
func Classify(line string, rules []Rule) (models.LogEntry, *Rule, string) {
	for i := range rules {
		if ok, msg := rules[i].match(line); ok {
			return models.NewLogEntry(line, rules[i].Severity), &rules[i], msg
		}
	}
	return models.NewLogEntry(line, models.SeverityNormal), nil, ""
}

// Filter turns a LineReader into a sequence of classified entries. Like the
// reader it wraps, it is single-pass.
type Filter struct {
	reader LineReader
	rules  []Rule
}

// NewFilter creates a filter applying rules in order; the first match wins.
func NewFilter(reader LineReader, rules []Rule) *Filter {
	return &Filter{reader: reader, rules: rules}
}

// Next returns the next entry. It returns io.EOF when the reader is
// exhausted, an *AbortError when an aborting rule matched, and any reader
// error unchanged.
func (f *Filter) Next() (models.LogEntry, error) {
	line, err := f.reader.ReadLine()
	if err != nil {
		return models.LogEntry{}, err
	}
	entry, rule, msg := Classify(line, f.rules)
	if rule != nil && rule.Abort {
		return models.LogEntry{}, &AbortError{Rule: rule.Name, Line: line, Message: msg}
	}
	return entry, nil
}
