package config

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/edakit/edakit/internal/models"
)

const headerDelimiter = "---"

// NewLogID returns an id like "2026-10-19T15-04-05-1a2b3c4d".
func NewLogID(startedAt time.Time) string {
	return startedAt.UTC().Format("2006-01-02T15-04-05") + "-" + uuid.NewString()[:8]
}

// WriteLog writes a session log to disk with a YAML header followed by the
// recorded lines. LogID, StartedAt and EndedAt are filled in when empty.
func WriteLog(entry *models.SessionLog, startedAt time.Time, lines []string) (*models.SessionLog, error) {
	if entry.Tool == "" {
		return nil, fmt.Errorf("session log has no tool")
	}

	toolLogsDir, err := ToolLogsDir(entry.Tool)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(toolLogsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create tool logs dir: %w", err)
	}

	if entry.LogID == "" {
		entry.LogID = NewLogID(startedAt)
	}
	if entry.StartedAt == "" {
		entry.StartedAt = startedAt.UTC().Format(time.RFC3339)
	}
	if entry.EndedAt == "" {
		entry.EndedAt = time.Now().UTC().Format(time.RFC3339)
	}

	header, err := yaml.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal log header: %w", err)
	}

	filePath := filepath.Join(toolLogsDir, entry.LogID+LogFileExt)
	f, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, headerDelimiter)
	w.Write(header)
	fmt.Fprintln(w, headerDelimiter)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}

	return entry, w.Flush()
}

// ListLogs reads all session logs of a tool and returns their metadata
// (newest first).
func ListLogs(tool string) ([]*models.SessionLog, error) {
	toolLogsDir, err := ToolLogsDir(tool)
	if err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(toolLogsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var logs []*models.SessionLog
	for _, e := range dirEntries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), LogFileExt) {
			continue
		}

		entry, err := readLogHeader(filepath.Join(toolLogsDir, e.Name()))
		if err != nil {
			continue
		}
		logs = append(logs, entry)
	}

	sort.Slice(logs, func(i, j int) bool {
		if logs[i].StartedAt == logs[j].StartedAt {
			return logs[i].LogID > logs[j].LogID
		}
		return logs[i].StartedAt > logs[j].StartedAt
	})

	return logs, nil
}

// ReadLog reads a specific log file and returns metadata + content.
func ReadLog(tool, logID string) (*models.SessionLog, string, error) {
	toolLogsDir, err := ToolLogsDir(tool)
	if err != nil {
		return nil, "", err
	}

	data, err := os.ReadFile(filepath.Join(toolLogsDir, logID+LogFileExt))
	if err != nil {
		return nil, "", fmt.Errorf("log not found: %w", err)
	}

	header, body, ok := splitLogContent(data)
	if !ok {
		return nil, "", fmt.Errorf("invalid log format")
	}

	entry := &models.SessionLog{}
	if err := yaml.Unmarshal(header, entry); err != nil {
		return nil, "", fmt.Errorf("failed to parse log header: %w", err)
	}
	return entry, string(body), nil
}

func readLogHeader(path string) (*models.SessionLog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var header bytes.Buffer
	scanner := bufio.NewScanner(f)
	inHeader := false
	closed := false
	for scanner.Scan() {
		line := scanner.Text()
		if line == headerDelimiter {
			if !inHeader {
				inHeader = true
				continue
			}
			closed = true
			break
		}
		if inHeader {
			header.WriteString(line)
			header.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !closed {
		return nil, fmt.Errorf("invalid log format: %s", path)
	}

	entry := &models.SessionLog{}
	if err := yaml.Unmarshal(header.Bytes(), entry); err != nil {
		return nil, err
	}
	if entry.LogID == "" {
		entry.LogID = strings.TrimSuffix(filepath.Base(path), LogFileExt)
	}
	return entry, nil
}

// splitLogContent separates the YAML header from the body.
func splitLogContent(data []byte) (header, body []byte, ok bool) {
	open := []byte(headerDelimiter + "\n")
	if !bytes.HasPrefix(data, open) {
		return nil, nil, false
	}
	rest := data[len(open):]
	closing := []byte("\n" + headerDelimiter + "\n")
	i := bytes.Index(rest, closing)
	if i < 0 {
		return nil, nil, false
	}
	return rest[:i+1], rest[i+len(closing):], true
}
