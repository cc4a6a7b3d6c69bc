// Package eventlog records application lifecycle events (startup,
// duplicate-launch attempts, deep-link activations, tray interactions) in
// a SQLite database, for diagnosing an app that usually runs headless in
// the tray.
package eventlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/perchhq/perch/internal/paths"
)

// Event kinds.
const (
	KindStart          = "start"
	KindSecondInstance = "second_instance"
	KindDeepLink       = "deeplink"
	KindTray           = "tray"
	KindSetupError     = "setup_error"
)

// Entry is one recorded event.
type Entry struct {
	ID     int64
	Time   time.Time
	Kind   string
	Detail string
}

// Store is a SQLite-backed event log. A nil *Store is valid and drops
// all writes — callers log best-effort without nil checks.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the event database at path, applying pragmas
// and schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), paths.DirPerm); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Set PRAGMAs before any DDL.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite pragma: %w", err)
		}
	}

	ddl := `
CREATE TABLE IF NOT EXISTS events (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp TEXT NOT NULL,
    kind      TEXT NOT NULL,
    detail    TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_events_kind      ON events(kind);
`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection. Safe on a nil store.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Log appends one event. Errors are reported to stderr, never returned —
// event logging is best-effort and must not disturb startup.
func (s *Store) Log(kind, detail string) {
	if s == nil {
		return
	}
	ts := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.db.Exec(
		"INSERT INTO events (timestamp, kind, detail) VALUES (?, ?, ?)",
		ts, kind, detail,
	); err != nil {
		fmt.Fprintf(os.Stderr, "eventlog: %v\n", err)
	}
}

// Entries returns events from the last `days` days, newest first.
// days == 0 returns everything.
func (s *Store) Entries(days int) ([]Entry, error) {
	if s == nil {
		return nil, nil
	}

	query := "SELECT id, timestamp, kind, detail FROM events"
	var args []any
	if days > 0 {
		query += " WHERE timestamp >= ?"
		cutoff := time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)
		args = append(args, cutoff)
	}
	query += " ORDER BY timestamp DESC, id DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.ID, &ts, &e.Kind, &e.Detail); err != nil {
			return nil, err
		}
		if e.Time, err = time.Parse(time.RFC3339, ts); err != nil {
			return nil, fmt.Errorf("bad timestamp %q: %w", ts, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clean removes events older than `days` days and returns how many were
// deleted.
func (s *Store) Clean(days int) (int, error) {
	if s == nil {
		return 0, nil
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)
	res, err := s.db.Exec("DELETE FROM events WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
