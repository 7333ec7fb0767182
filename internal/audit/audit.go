package audit

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// Operations recorded in the local trail.
const (
	OpLink     = "link"
	OpPull     = "pull"
	OpPush     = "push"
	OpRollback = "rollback"
	OpReset    = "reset"
)

const timestampLayout = "2006-01-02T15:04:05.000000Z"

// Entry represents a single audit log entry.
type Entry struct {
	ID        string `json:"id"`   // Random UUID, unique per entry.
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // Email of the logged-in user, if known.
	Operation string `json:"op"`   // Operation name.

	// Optional fields depending on operation.
	ProjectID string `json:"project_id,omitempty"` // For everything but reset.
	Env       string `json:"env,omitempty"`        // For pull/push/rollback.
	Dir       string `json:"dir,omitempty"`        // Working directory of the operation.
	Count     int    `json:"count,omitempty"`      // Secrets transferred.
	Version   int    `json:"version,omitempty"`    // For rollback.
}

// Time parses the entry timestamp. The zero time is returned for malformed values.
func (e Entry) Time() time.Time {
	t, err := time.Parse(timestampLayout, e.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Trail is an append-only JSON Lines log on a filesystem.
type Trail struct {
	fs   afero.Fs
	path string
	now  func() time.Time
}

// NewTrail returns a Trail writing to path.
func NewTrail(afs afero.Fs, path string) *Trail {
	return &Trail{fs: afs, path: path, now: time.Now}
}

// Path returns the location of the log file.
func (t *Trail) Path() string {
	return t.path
}

// Log appends an entry to the audit log.
// If logging fails, it returns silently.
// Operations should not fail just because audit logging failed.
func (t *Trail) Log(entry Entry) {
	if t == nil || t.path == "" {
		return
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = t.now().UTC().Format(timestampLayout)
	}

	if err := t.fs.MkdirAll(filepath.Dir(t.path), 0o700); err != nil {
		return
	}

	f, err := t.fs.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func (t *Trail) ReadEntries() ([]Entry, error) {
	data, err := afero.ReadFile(t.fs, t.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data), nil
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) []Entry {
	var entries []Entry
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// Filter returns the entries for which keep returns true, preserving order.
func Filter(entries []Entry, keep func(Entry) bool) []Entry {
	var out []Entry
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Tail returns the last n entries.
func Tail(entries []Entry, n int) []Entry {
	if n <= 0 || len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}
