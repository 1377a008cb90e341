// CLAUDE:SUMMARY SQLite-backed scan history: one row per run, success or failure.
// Package history persists one row per scan run to a local SQLite
// database. Failed runs are recorded too (status, error message, no
// result) so the history doubles as a diagnostic log; the JSON artifact
// contract is unaffected.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Schema for the scans table. Applied by Init.
const Schema = `
CREATE TABLE IF NOT EXISTS scans (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	url           TEXT NOT NULL,
	started_at    INTEGER NOT NULL,
	finished_at   INTEGER NOT NULL,
	status        TEXT NOT NULL,
	error         TEXT NOT NULL DEFAULT '',
	var_count     INTEGER NOT NULL DEFAULT 0,
	rule_count    INTEGER NOT NULL DEFAULT 0,
	sample_count  INTEGER NOT NULL DEFAULT 0,
	result_json   TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_scans_started ON scans(started_at);
`

// Run statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// ErrNotFound is returned when a scan id does not exist.
var ErrNotFound = errors.New("history: scan not found")

// Scan is one recorded run.
type Scan struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
	VarCount    int       `json:"var_count"`
	RuleCount   int       `json:"rule_count"`
	SampleCount int       `json:"sample_count"`
	ResultJSON  string    `json:"-"`
}

// Store persists scans to a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating directories as needed) the history database and
// applies the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("history: mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Record inserts one run and fills s.ID.
func (st *Store) Record(ctx context.Context, s *Scan) error {
	res, err := st.db.ExecContext(ctx,
		`INSERT INTO scans (url, started_at, finished_at, status, error, var_count, rule_count, sample_count, result_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.URL, s.StartedAt.UnixMilli(), s.FinishedAt.UnixMilli(), s.Status, s.Error,
		s.VarCount, s.RuleCount, s.SampleCount, s.ResultJSON)
	if err != nil {
		return fmt.Errorf("history: record: %w", err)
	}
	s.ID, _ = res.LastInsertId()
	return nil
}

// Latest returns the most recent run, or ErrNotFound on an empty history.
func (st *Store) Latest(ctx context.Context) (*Scan, error) {
	row := st.db.QueryRowContext(ctx,
		`SELECT id, url, started_at, finished_at, status, error, var_count, rule_count, sample_count, result_json
		FROM scans ORDER BY started_at DESC, id DESC LIMIT 1`)
	return scanRow(row)
}

// Get returns one run by id, or ErrNotFound.
func (st *Store) Get(ctx context.Context, id int64) (*Scan, error) {
	row := st.db.QueryRowContext(ctx,
		`SELECT id, url, started_at, finished_at, status, error, var_count, rule_count, sample_count, result_json
		FROM scans WHERE id = ?`, id)
	return scanRow(row)
}

// List returns the most recent runs, newest first.
func (st *Store) List(ctx context.Context, limit int) ([]*Scan, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := st.db.QueryContext(ctx,
		`SELECT id, url, started_at, finished_at, status, error, var_count, rule_count, sample_count, result_json
		FROM scans ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	defer rows.Close()

	var scans []*Scan
	for rows.Next() {
		s, err := scanFields(rows.Scan)
		if err != nil {
			return nil, err
		}
		scans = append(scans, s)
	}
	return scans, rows.Err()
}

// Close closes the database.
func (st *Store) Close() error {
	return st.db.Close()
}

func scanRow(row *sql.Row) (*Scan, error) {
	s, err := scanFields(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

func scanFields(scan func(...any) error) (*Scan, error) {
	var s Scan
	var startedAt, finishedAt int64
	err := scan(&s.ID, &s.URL, &startedAt, &finishedAt, &s.Status, &s.Error,
		&s.VarCount, &s.RuleCount, &s.SampleCount, &s.ResultJSON)
	if err != nil {
		return nil, err
	}
	s.StartedAt = time.UnixMilli(startedAt)
	s.FinishedAt = time.UnixMilli(finishedAt)
	return &s, nil
}
