package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS summaries (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id    TEXT NOT NULL,
    task_id       INTEGER NOT NULL,
    model         TEXT NOT NULL DEFAULT '',
    window_size   INTEGER NOT NULL,
    message_count INTEGER NOT NULL,
    prompt        TEXT NOT NULL,
    result        TEXT NOT NULL DEFAULT '',
    error         TEXT NOT NULL DEFAULT '',
    started_at    TEXT NOT NULL,
    duration_ms   INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS summaries_session ON summaries(session_id);

CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);
`

// schemaVersion is stored in meta so future migrations can detect old files.
const schemaVersion = "1"

const timeLayout = "2006-01-02T15:04:05Z"

// DB records every completed summarization.
type DB struct {
	db *sql.DB
}

func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	if _, err := db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("write schema version: %w", err)
	}

	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

type Entry struct {
	ID           int64
	SessionID    string
	TaskID       uint64
	Model        string
	WindowSize   int
	MessageCount int
	Prompt       string
	Result       string
	Error        string
	StartedAt    time.Time
	Duration     time.Duration
}

// OK reports whether the summarization succeeded.
func (e Entry) OK() bool {
	return e.Error == ""
}

// Record stores e and returns its row id.
func (d *DB) Record(e Entry) (int64, error) {
	res, err := d.db.Exec(
		`INSERT INTO summaries (session_id, task_id, model, window_size, message_count, prompt, result, error, started_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.SessionID,
		int64(e.TaskID),
		e.Model,
		e.WindowSize,
		e.MessageCount,
		e.Prompt,
		e.Result,
		e.Error,
		e.StartedAt.UTC().Format(timeLayout),
		e.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert summary: %w", err)
	}
	return res.LastInsertId()
}

type ListOptions struct {
	SessionID string // "" = all sessions
	Grep      string // substring match on result, "" = no filter
	OKOnly    bool   // skip failed summaries
	Limit     int    // 0 = no limit
}

// List returns entries newest first.
func (d *DB) List(opts ListOptions) ([]Entry, error) {
	var where []string
	var args []any
	if opts.SessionID != "" {
		where = append(where, "session_id = ?")
		args = append(args, opts.SessionID)
	}
	if opts.Grep != "" {
		where = append(where, "result LIKE ?")
		args = append(args, "%"+opts.Grep+"%")
	}
	if opts.OKOnly {
		where = append(where, "error = ''")
	}

	query := "SELECT " + entryColumns + " FROM summaries"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns the entry with the given id, or nil if there is none.
func (d *DB) Get(id int64) (*Entry, error) {
	row := d.db.QueryRow("SELECT "+entryColumns+" FROM summaries WHERE id = ?", id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (d *DB) Count() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM summaries").Scan(&n)
	return n, err
}

func (d *DB) FailureCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM summaries WHERE error != ''").Scan(&n)
	return n, err
}

const entryColumns = "id, session_id, task_id, model, window_size, message_count, prompt, result, error, started_at, duration_ms"

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var e Entry
	var taskID, durMS int64
	var started string
	err := s.Scan(&e.ID, &e.SessionID, &taskID, &e.Model, &e.WindowSize, &e.MessageCount,
		&e.Prompt, &e.Result, &e.Error, &started, &durMS)
	if err != nil {
		return Entry{}, err
	}
	e.TaskID = uint64(taskID)
	e.Duration = time.Duration(durMS) * time.Millisecond
	if t, err := time.Parse(timeLayout, started); err == nil {
		e.StartedAt = t
	}
	return e, nil
}
