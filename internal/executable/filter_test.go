package executable

import (
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edakit/edakit/internal/models"
)

// sliceReader serves lines from memory, then err (io.EOF when nil).
type sliceReader struct {
	lines []string
	pos   int
	err   error
	reads int
}

func (r *sliceReader) ReadLine() (string, error) {
	r.reads++
	if r.pos < len(r.lines) {
		line := r.lines[r.pos]
		r.pos++
		return line, nil
	}
	if r.err != nil {
		return "", r.err
	}
	return "", io.EOF
}

func drain(t *testing.T, f *Filter) ([]models.LogEntry, error) {
	t.Helper()
	var entries []models.LogEntry
	for {
		e, err := f.Next()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return entries, err
		}
		entries = append(entries, e)
	}
}

func TestFilterPreservesLinesWithoutRules(t *testing.T) {
	inputs := [][]string{
		nil,
		{""},
		{"build ok"},
		{"build ok", "foo.vhd:10:3: warning: unused signal", "foo.vhd:12:1: syntax error"},
		{"a", "", "b", "  indented  "},
	}

	for _, lines := range inputs {
		entries, err := drain(t, NewFilter(&sliceReader{lines: lines}, nil))
		require.NoError(t, err)
		require.Len(t, entries, len(lines))

		texts := make([]string, len(entries))
		for i, e := range entries {
			texts[i] = e.Text
			assert.Equal(t, models.SeverityNormal, e.Severity)
			assert.Zero(t, e.Indent)
		}
		assert.Equal(t, strings.Join(lines, "\n"), strings.Join(texts, "\n"))
	}
}

func TestFilterIsLazy(t *testing.T) {
	r := &sliceReader{lines: []string{"one", "two", "three"}}
	f := NewFilter(r, nil)

	_, err := f.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, r.reads)
}

func TestLocatedRules(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected models.Severity
	}{
		{name: "plain", line: "build ok", expected: models.SeverityNormal},
		{name: "warning", line: "foo.vhd:10:3: warning: unused signal", expected: models.SeverityWarning},
		{name: "warning without space", line: "foo.vhd:10:3:warning: unused signal", expected: models.SeverityWarning},
		{name: "error", line: "foo.vhd:12:1: syntax error", expected: models.SeverityError},
		{name: "windows path", line: `C:\src\foo.vhd:12:1: no declaration for "x"`, expected: models.SeverityError},
		{name: "no column", line: "foo.vhd:12: missing column", expected: models.SeverityNormal},
	}

	rules := LocatedRules()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, _, _ := Classify(tt.line, rules)
			assert.Equal(t, tt.expected, entry.Severity)
			assert.Equal(t, tt.line, entry.Text)
		})
	}
}

func TestFilterFirstMatchWins(t *testing.T) {
	rules := []Rule{
		{Name: "a", Pattern: regexp.MustCompile(`x`), Severity: models.SeverityWarning},
		{Name: "b", Pattern: regexp.MustCompile(`x`), Severity: models.SeverityError},
	}
	_, rule, _ := Classify("x", rules)
	require.NotNil(t, rule)
	assert.Equal(t, "a", rule.Name)
}

func TestFilterReanalyzeAborts(t *testing.T) {
	line := "top.vhd:4:8: entity \"counter\" has changed and must be reanalysed"
	r := &sliceReader{lines: []string{"analyzing", line, "never read"}}

	entries, err := drain(t, NewFilter(r, LocatedRules()))
	require.Error(t, err)
	require.Len(t, entries, 1)

	var abortErr *AbortError
	require.ErrorAs(t, err, &abortErr)
	assert.Equal(t, "reanalyze", abortErr.Rule)
	assert.Equal(t, line, abortErr.Line)
	assert.Equal(t, "entity \"counter\" has changed and must be reanalysed", abortErr.Message)
	assert.True(t, IsAbort(err))
	assert.Equal(t, 2, r.pos)
}

func TestFilterReanalyzeRuleAlone(t *testing.T) {
	r := &sliceReader{lines: []string{"unit work.top has changed and must be reanalysed"}}
	_, err := drain(t, NewFilter(r, []Rule{ReanalyzeRule}))
	assert.True(t, IsAbort(err))
}

func TestFilterPassesReaderErrorsThrough(t *testing.T) {
	boom := errors.New("read failed")
	r := &sliceReader{lines: []string{"a"}, err: boom}

	entries, err := drain(t, NewFilter(r, nil))
	assert.Same(t, boom, err)
	assert.Len(t, entries, 1)
}

func TestRulePreset(t *testing.T) {
	rules, err := RulePreset("")
	require.NoError(t, err)
	assert.Empty(t, rules)

	rules, err = RulePreset("located")
	require.NoError(t, err)
	assert.Len(t, rules, 3)

	_, err = RulePreset("gcc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid: located, none")

	assert.Equal(t, []string{"located", "none"}, RulePresetNames())
}
