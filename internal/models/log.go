package models

// Session log statuses.
const (
	SessionStatusCompleted = "completed"
	SessionStatusFailed    = "failed"
	SessionStatusAborted   = "aborted"
)

// SessionLog represents the metadata header of a persisted tool run.
type SessionLog struct {
	LogID       string `yaml:"log_id"`
	Tool        string `yaml:"tool"`
	Command     string `yaml:"command"`
	StartedAt   string `yaml:"started_at"`
	EndedAt     string `yaml:"ended_at"`
	Status      string `yaml:"status"`
	HasWarnings bool   `yaml:"has_warnings"`
	HasErrors   bool   `yaml:"has_errors"`
	ExitCode    int    `yaml:"exit_code"`
}
