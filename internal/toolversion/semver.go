// Package toolversion parses the version strings external tools report.
package toolversion

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Semver represents a semantic version. Tools that only report
// "major.minor" get Patch 0.
type Semver struct {
	Major int
	Minor int
	Patch int
}

var versionPattern = regexp.MustCompile(`v?(\d+)\.(\d+)(?:\.(\d+))?`)

// ParseSemver parses a version string like "1.2.3", "v1.2.3" or "3.3".
func ParseSemver(s string) (Semver, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	parts := strings.SplitN(s, ".", 3)
	if len(parts) < 2 {
		return Semver{}, fmt.Errorf("invalid version: %q", s)
	}

	var v Semver
	var err error
	if v.Major, err = strconv.Atoi(parts[0]); err != nil {
		return Semver{}, fmt.Errorf("invalid major version: %w", err)
	}
	if v.Minor, err = strconv.Atoi(parts[1]); err != nil {
		return Semver{}, fmt.Errorf("invalid minor version: %w", err)
	}
	if len(parts) == 3 {
		if v.Patch, err = strconv.Atoi(parts[2]); err != nil {
			return Semver{}, fmt.Errorf("invalid patch version: %w", err)
		}
	}
	return v, nil
}

// Find extracts the first version number from free text such as a tool's
// --version banner, e.g. "GTKWave Analyzer v3.3.104 (w)1999-2020 BSI".
func Find(text string) (Semver, error) {
	m := versionPattern.FindStringSubmatch(text)
	if m == nil {
		return Semver{}, fmt.Errorf("no version found in %q", strings.TrimSpace(text))
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch := 0
	if m[3] != "" {
		patch, _ = strconv.Atoi(m[3])
	}
	return Semver{Major: major, Minor: minor, Patch: patch}, nil
}

// String returns the version as "major.minor.patch".
func (v Semver) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// LessThan returns true if v < other.
func (v Semver) LessThan(other Semver) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor < other.Minor
	}
	return v.Patch < other.Patch
}
