// Package history keeps a bounded JSON-lines log of processed blog runs.
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iconidentify/postcraft/internal/domain"
)

// Field limits applied before an entry is stored.
const (
	maxURLChars   = 2048
	maxErrorChars = 1024

	// maxLineBytes is the longest line read back; longer lines are skipped.
	maxLineBytes = 256 * 1024
)

// Run statuses.
const (
	StatusSuccess          = "success"
	StatusGenerationFailed = "generation_failed"
	StatusExtractionFailed = "extraction_failed"
)

// Entry is one /api/process run.
type Entry struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	URL            string    `json:"url"`
	Platform       string    `json:"platform"`
	Status         string    `json:"status"`
	Error          string    `json:"error,omitempty"`
	ImageRequested bool      `json:"image_requested,omitempty"`
	ImageGenerated bool      `json:"image_generated,omitempty"`
	DurationMS     int64     `json:"duration_ms"`
}

// NewID returns a short run identifier.
func NewID() string {
	return "run_" + uuid.New().String()[:8]
}

// Log manages the history file.
type Log struct {
	path string
	mu   sync.Mutex
	max  int
}

// NewLog creates a history log. An empty path disables recording.
func NewLog(path string, maxEntries int) *Log {
	if maxEntries <= 0 {
		maxEntries = 100
	}
	return &Log{
		path: path,
		max:  maxEntries,
	}
}

// Record appends entry, assigning an ID and timestamp when missing.
func (l *Log) Record(entry Entry) error {
	if l.path == "" {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	entries, err := l.readEntriesLocked()
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}

	entry.URL = domain.Truncate(entry.URL, maxURLChars)
	entry.Error = domain.Truncate(entry.Error, maxErrorChars)
	if entry.ID == "" {
		entry.ID = NewID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	entries = append(entries, entry)

	if len(entries) > l.max {
		entries = entries[len(entries)-l.max:]
	}

	return l.writeEntriesLocked(entries)
}

// Recent returns up to limit entries, newest first. A limit <= 0 returns all.
func (l *Log) Recent(limit int) ([]Entry, error) {
	if l.path == "" {
		return nil, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.readEntriesLocked()
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

func (l *Log) readEntriesLocked() ([]Entry, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadBytes('\n')
		if len(line) > 0 && len(line) <= maxLineBytes {
			var e Entry
			if jsonErr := json.Unmarshal(line, &e); jsonErr == nil {
				entries = append(entries, e)
			}
		}
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (l *Log) writeEntriesLocked(entries []Entry) error {
	f, err := os.Create(l.path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			continue
		}
		w.Write(data)
		w.WriteByte('\n')
	}
	return w.Flush()
}
