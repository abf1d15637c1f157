// Package history stores issue timelines in a single JSON document keyed by issue id.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/techflow/techflow/internal/domain/issue"
	"github.com/techflow/techflow/internal/shared/logger"
)

type entryRecord struct {
	Timestamp   string `json:"timestamp"`
	Action      string `json:"action"`
	Description string `json:"description"`
	PerformedBy string `json:"performed_by"`
}

type document map[string][]entryRecord

// JSONLog is an append-only history file. Each append rewrites the whole document.
type JSONLog struct {
	mu     sync.Mutex
	path   string
	logger logger.Interface
}

func NewJSONLog(path string, log logger.Interface) *JSONLog {
	return &JSONLog{path: path, logger: log}
}

func (l *JSONLog) Append(ctx context.Context, issueID uint, entry issue.HistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	doc, err := l.read()
	if err != nil {
		return err
	}

	key := strconv.FormatUint(uint64(issueID), 10)
	doc[key] = append(doc[key], entryRecord{
		Timestamp:   entry.Timestamp.Format(time.RFC3339),
		Action:      entry.Action,
		Description: entry.Description,
		PerformedBy: entry.PerformedBy,
	})

	return l.write(doc)
}

// Get returns the entries of one issue in append order. Unknown ids yield an empty slice.
func (l *JSONLog) Get(ctx context.Context, issueID uint) ([]issue.HistoryEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc, err := l.read()
	if err != nil {
		return nil, err
	}

	return toEntries(doc[strconv.FormatUint(uint64(issueID), 10)]), nil
}

// All returns every timeline. Keys that are not issue ids are skipped.
func (l *JSONLog) All(ctx context.Context) (map[uint][]issue.HistoryEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc, err := l.read()
	if err != nil {
		return nil, err
	}

	out := make(map[uint][]issue.HistoryEntry, len(doc))
	for key, records := range doc {
		id, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			l.logger.Warnw("skipping history key", "key", key)
			continue
		}
		out[uint(id)] = toEntries(records)
	}
	return out, nil
}

func (l *JSONLog) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete history file: %w", err)
	}
	return nil
}

func (l *JSONLog) read() (document, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return document{}, nil
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}
	if len(data) == 0 {
		return document{}, nil
	}

	doc := document{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse history file: %w", err)
	}
	return doc, nil
}

func (l *JSONLog) write(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, l.path); err != nil {
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	return nil
}

func toEntries(records []entryRecord) []issue.HistoryEntry {
	entries := make([]issue.HistoryEntry, 0, len(records))
	for _, r := range records {
		ts, err := time.Parse(time.RFC3339, r.Timestamp)
		if err != nil {
			ts = time.Time{}
		}
		entries = append(entries, issue.HistoryEntry{
			Timestamp:   ts,
			Action:      r.Action,
			Description: r.Description,
			PerformedBy: r.PerformedBy,
		})
	}
	return entries
}
