// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store keeps parsed schedule entries in a SQLite index so they can
// be looked up by class, grade, day, or teacher across parse runs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/schedule-parser/pkg/types"
)

// Store manages the schedule index database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens or creates the index database at cfg.DBPath, creating
// the parent directory and schema if they do not exist.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("index database path is empty")
	}
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating index directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
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
		`CREATE TABLE IF NOT EXISTS documents (
			source TEXT PRIMARY KEY,
			indexed_at TEXT NOT NULL,
			entry_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS entries (
			source TEXT NOT NULL REFERENCES documents(source) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			day TEXT NOT NULL,
			time TEXT NOT NULL,
			class TEXT NOT NULL,
			grade TEXT NOT NULL,
			subject TEXT NOT NULL,
			teacher TEXT NOT NULL,
			PRIMARY KEY (source, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_class ON entries(class)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_teacher ON entries(teacher)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save replaces every entry indexed for source with entries, in one
// transaction. Saving the same document twice leaves a single copy.
func (s *Store) Save(ctx context.Context, source string, entries []types.ScheduleEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE source = ?`, source); err != nil {
		return fmt.Errorf("deleting old entries: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (source, indexed_at, entry_count) VALUES (?, ?, ?)
		 ON CONFLICT(source) DO UPDATE SET
			indexed_at=excluded.indexed_at, entry_count=excluded.entry_count`,
		source, s.now().UTC().Format(time.RFC3339), len(entries),
	)
	if err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO entries (source, seq, day, time, class, grade, subject, teacher)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		_, err := stmt.ExecContext(ctx,
			source, i, e.Day, e.Time, e.Class, e.Grade, e.Subject, e.Teacher,
		)
		if err != nil {
			return fmt.Errorf("inserting entry %d (%s): %w", i, e.Class, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Document describes one indexed source.
type Document struct {
	Source     string    `json:"source" yaml:"source"`
	IndexedAt  time.Time `json:"indexed_at" yaml:"indexed_at"`
	EntryCount int       `json:"entry_count" yaml:"entry_count"`
}

// Documents lists indexed sources in name order.
func (s *Store) Documents(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, indexed_at, entry_count FROM documents ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var (
			d         Document
			indexedAt string
		)
		if err := rows.Scan(&d.Source, &indexedAt, &d.EntryCount); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		t, err := time.Parse(time.RFC3339, indexedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing indexed_at of %s: %w", d.Source, err)
		}
		d.IndexedAt = t
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
