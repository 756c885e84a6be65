package logging

import (
	"fmt"
	"sync"

	"github.com/edakit/edakit/internal/models"
)

// Recorder keeps everything logged to it in memory, in order. It backs the
// session log files and is handy in tests.
type Recorder struct {
	mu      sync.Mutex
	entries []models.LogEntry
	lines   []string
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Log records a classified entry.
func (r *Recorder) Log(entry models.LogEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	r.lines = append(r.lines, entry.String())
}

// Normal records a status line.
func (r *Recorder) Normal(format string, args ...any) {
	r.add(fmt.Sprintf(format, args...))
}

// Verbose records a diagnostic line.
func (r *Recorder) Verbose(format string, args ...any) {
	r.add(fmt.Sprintf(format, args...))
}

// Debug is ignored by the recorder.
func (r *Recorder) Debug(string, ...any) {}

func (r *Recorder) add(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
}

// Entries returns a copy of the recorded entries.
func (r *Recorder) Entries() []models.LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]models.LogEntry, len(r.entries))
	copy(result, r.entries)
	return result
}

// Lines returns a copy of all recorded lines, entries included.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]string, len(r.lines))
	copy(result, r.lines)
	return result
}

// Reset discards everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	r.lines = nil
}
