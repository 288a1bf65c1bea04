// Package db provides the SQLite document backend.
//
// Each row holds one named JSON document, mirroring a browser
// localStorage slot: writes replace the whole value.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLite stores documents in a single table.
type SQLite struct {
	db *sql.DB
}

// New opens (creating if needed) the database at path and runs migrations.
func New(path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Load returns the document stored under key.
// The bool is false when no document exists.
func (s *SQLite) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM documents WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading %q: %w", key, err)
	}
	return []byte(value), true, nil
}

// Save replaces the document stored under key.
func (s *SQLite) Save(ctx context.Context, key string, value []byte) error {
	if err := upsert(ctx, s.db, key, value); err != nil {
		return fmt.Errorf("saving %q: %w", key, err)
	}
	return nil
}

// SaveMany replaces several documents in one transaction.
func (s *SQLite) SaveMany(ctx context.Context, docs map[string][]byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for key, value := range docs {
		if err := upsert(ctx, tx, key, value); err != nil {
			return fmt.Errorf("saving %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Delete removes the document stored under key. Missing keys are ignored.
func (s *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting %q: %w", key, err)
	}
	return nil
}

// Keys lists stored document keys in lexical order.
func (s *SQLite) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM documents ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating keys: %w", err)
	}
	return keys, nil
}

// UpdatedAt returns when the document under key was last written.
func (s *SQLite) UpdatedAt(ctx context.Context, key string) (time.Time, bool, error) {
	var raw any
	err := s.db.QueryRowContext(ctx, `SELECT updated_at FROM documents WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("reading timestamp of %q: %w", key, err)
	}
	// The driver may already have converted the DATETIME column.
	switch v := raw.(type) {
	case time.Time:
		return v, true, nil
	case string:
		return parseTimestamp(key, v)
	case []byte:
		return parseTimestamp(key, string(v))
	default:
		return time.Time{}, false, fmt.Errorf("unexpected timestamp type %T for %q", raw, key)
	}
}

func parseTimestamp(key, s string) (time.Time, bool, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing timestamp of %q: %w", key, err)
	}
	return t, true, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsert(ctx context.Context, ex execer, key string, value []byte) error {
	query := `
		INSERT INTO documents (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	_, err := ex.ExecContext(ctx, query, key, string(value), time.Now().UTC().Format(time.RFC3339))
	return err
}
