// Package buildinfo holds the edakit version, set at release time with
// -ldflags "-X github.com/edakit/edakit/internal/buildinfo.Version=...".
package buildinfo

var (
	Version    = "dev"
	Codename   = "unreleased"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)
