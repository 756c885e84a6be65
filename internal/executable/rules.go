package executable

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/edakit/edakit/internal/models"
)

// <path>:<line>:<column>: warning: <message>
var locatedWarningPattern = regexp.MustCompile(`^.+?:\d+:\d+:\s?warning: (?P<Message>.*)$`)

// <path>:<line>:<column>: <message>
var locatedErrorPattern = regexp.MustCompile(`^.+?:\d+:\d+: (?P<Message>.*)$`)

var reanalyzePattern = regexp.MustCompile(`^(?:.+?:\d+:\d+: )?(?P<Message>.*has changed and must be reanalysed)$`)

// ReanalyzeRule matches a compiler message saying a design unit is out of
// date. Such a run cannot be trusted, so it is aborted.
var ReanalyzeRule = Rule{
	Name:     "reanalyze",
	Pattern:  reanalyzePattern,
	Severity: models.SeverityError,
	Abort:    true,
}

// LocatedRules recognizes "<path>:<line>:<column>:" prefixed warnings and
// errors, aborting on reanalysis requests.
func LocatedRules() []Rule {
	return []Rule{
		{Name: "warning", Pattern: locatedWarningPattern, Severity: models.SeverityWarning},
		ReanalyzeRule,
		{Name: "error", Pattern: locatedErrorPattern, Severity: models.SeverityError},
	}
}

var presets = map[string]func() []Rule{
	"none":    func() []Rule { return nil },
	"located": LocatedRules,
}

// RulePreset returns a named rule table. The empty name is "none".
func RulePreset(name string) ([]Rule, error) {
	if name == "" {
		name = "none"
	}
	fn, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown rule preset %q (valid: %s)", name, strings.Join(RulePresetNames(), ", "))
	}
	return fn(), nil
}

// RulePresetNames lists the available presets.
func RulePresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
