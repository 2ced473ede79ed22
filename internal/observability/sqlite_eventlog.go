package observability

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// openDB is the function used to open database connections.
// It is a variable so tests can substitute a failing implementation.
var openDB = sql.Open

// sqliteEventLog implements EventLog on a single SQLite table.
type sqliteEventLog struct {
	db *sql.DB
}

// NewSQLiteEventLog opens (or creates) the SQLite event database at path.
func NewSQLiteEventLog(path string) (EventLog, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating event log directory: %w", err)
		}
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening event database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	const ddl = `
	CREATE TABLE IF NOT EXISTS events (
		id    INTEGER PRIMARY KEY AUTOINCREMENT,
		time  TEXT NOT NULL,
		level TEXT NOT NULL,
		type  TEXT NOT NULL,
		msg   TEXT NOT NULL DEFAULT '',
		data  TEXT NOT NULL DEFAULT '{}'
	);
	CREATE INDEX IF NOT EXISTS idx_events_time ON events(time);
	CREATE INDEX IF NOT EXISTS idx_events_type ON events(type);`
	if _, err := db.Exec(ddl); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating events table: %w", err)
	}

	return &sqliteEventLog{db: db}, nil
}

// Write inserts one event row. Times are stored as UTC RFC 3339 strings so
// that lexical order matches chronological order.
func (l *sqliteEventLog) Write(event Event) error {
	data := []byte("{}")
	if len(event.Data) > 0 {
		var err error
		data, err = json.Marshal(event.Data)
		if err != nil {
			return fmt.Errorf("marshalling event data: %w", err)
		}
	}
	_, err := l.db.Exec(
		`INSERT INTO events (time, level, type, msg, data) VALUES (?, ?, ?, ?, ?)`,
		formatEventTime(event.Time), event.Level, event.Type, event.Message, string(data),
	)
	if err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	return nil
}

func formatEventTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000000Z")
}

// Read returns the events matching filter in insertion order.
func (l *sqliteEventLog) Read(filter EventFilter) ([]Event, error) {
	var (
		where []string
		args  []any
	)
	if filter.Since != nil {
		where = append(where, "time >= ?")
		args = append(args, formatEventTime(*filter.Since))
	}
	if filter.Until != nil {
		where = append(where, "time <= ?")
		args = append(args, formatEventTime(*filter.Until))
	}
	if filter.Type != "" {
		where = append(where, "type = ?")
		args = append(args, filter.Type)
	}
	if filter.TypePrefix != "" {
		where = append(where, "substr(type, 1, ?) = ?")
		args = append(args, len(filter.TypePrefix), filter.TypePrefix)
	}
	if filter.Level != "" {
		where = append(where, "level = ?")
		args = append(args, filter.Level)
	}

	query := `SELECT time, level, type, msg, data FROM events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := l.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []Event
	for rows.Next() {
		var (
			ts, data string
			event    Event
		)
		if err := rows.Scan(&ts, &event.Level, &event.Type, &event.Message, &data); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		event.Time, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			continue // skip rows with unreadable timestamps
		}
		if data != "" && data != "{}" {
			if err := json.Unmarshal([]byte(data), &event.Data); err != nil {
				continue
			}
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}

// Close closes the database.
func (l *sqliteEventLog) Close() error {
	if err := l.db.Close(); err != nil {
		return fmt.Errorf("closing event database: %w", err)
	}
	return nil
}
