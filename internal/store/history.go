package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// History is the SQLite-backed utterance transcript. Every processed
// utterance is recorded with its resolved action and layout so `genui
// history` can show what the engine heard and what it decided. This is
// diagnostic data only; domain records never touch disk.
type History struct {
	db *sql.DB
	mu sync.Mutex
}

// HistoryEntry is one recorded utterance.
type HistoryEntry struct {
	ID        int64
	HeardAt   time.Time
	Utterance string
	Action    string
	Layout    string
}

// OpenHistory initializes the transcript database at the given path.
func OpenHistory(path string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	schema := `
	CREATE TABLE IF NOT EXISTS utterances (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		heard_at DATETIME NOT NULL,
		utterance TEXT NOT NULL,
		action TEXT NOT NULL,
		layout TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_utterances_heard_at ON utterances(heard_at);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}
	return &History{db: db}, nil
}

// Record appends one processed utterance to the transcript.
func (h *History) Record(utterance, action, layout string, heardAt time.Time) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.db.Exec(
		`INSERT INTO utterances (heard_at, utterance, action, layout) VALUES (?, ?, ?, ?)`,
		heardAt.UTC(), utterance, action, layout,
	)
	if err != nil {
		return fmt.Errorf("failed to record utterance: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (h *History) Recent(limit int) ([]HistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	rows, err := h.db.Query(
		`SELECT id, heard_at, utterance, action, layout FROM utterances ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.HeardAt, &e.Utterance, &e.Action, &e.Layout); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close releases the database handle.
func (h *History) Close() error {
	return h.db.Close()
}
