// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

// Package history persists test-run results to a SQLite database so
// precision and recall can be tracked across checker revisions.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/giellalt/gramtest/pkg/types"
)

// Run is one recorded test run.
type Run struct {
	ID       int64
	When     time.Time
	TestFile string
	Variant  string
	Engine   string
	Counts   types.OutcomeCounts
}

// Store manages the run-history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path, creating parent
// directories as needed.
func Open(cfg types.HistoryConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("no history database path configured")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_at TEXT NOT NULL,
			test_file TEXT NOT NULL,
			variant TEXT,
			engine TEXT,
			tp INTEGER NOT NULL,
			tn INTEGER NOT NULL,
			fp1 INTEGER NOT NULL,
			fp2 INTEGER NOT NULL,
			fn1 INTEGER NOT NULL,
			fn2 INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_test_file ON runs(test_file)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores one run and returns its id.
func (s *Store) Record(run Run) (int64, error) {
	when := run.When
	if when.IsZero() {
		when = time.Now()
	}
	res, err := s.db.Exec(
		`INSERT INTO runs (run_at, test_file, variant, engine, tp, tn, fp1, fp2, fn1, fn2)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		when.UTC().Format(time.RFC3339), run.TestFile, run.Variant, run.Engine,
		run.Counts.TP, run.Counts.TN, run.Counts.FP1, run.Counts.FP2,
		run.Counts.FN1, run.Counts.FN2,
	)
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit runs, newest first. An empty testFile matches
// every file.
func (s *Store) Recent(testFile string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, run_at, test_file, variant, engine, tp, tn, fp1, fp2, fn1, fn2
		FROM runs`
	args := []any{}
	if testFile != "" {
		query += ` WHERE test_file = ?`
		args = append(args, testFile)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var runAt string
		if err := rows.Scan(&run.ID, &runAt, &run.TestFile, &run.Variant, &run.Engine,
			&run.Counts.TP, &run.Counts.TN, &run.Counts.FP1, &run.Counts.FP2,
			&run.Counts.FN1, &run.Counts.FN2); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		when, err := time.Parse(time.RFC3339, runAt)
		if err != nil {
			return nil, fmt.Errorf("parsing run timestamp: %w", err)
		}
		run.When = when
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}
