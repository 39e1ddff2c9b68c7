// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// SQLite stores everything in a single file on disk. There is no
// network, no separate server process, and no installation beyond the
// driver, which makes it the closest match to a browser's per-origin
// key-value storage: one local file, one writer.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at path, creates the kv table if it does
// not already exist, and returns a ready-to-use *SQLite.
//
// The parent directory is created when missing so a fresh checkout can
// run with the default "storage/storage.db" path.
func New(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.New: create dir: %w", err)
		}
	}

	// sql.Open does NOT open a real connection yet; it only validates
	// the driver name and data source name (DSN).
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// A single connection keeps the file single-writer.
	db.SetMaxOpenConns(1)

	// CREATE TABLE IF NOT EXISTS runs on every startup.
	//
	// Schema:
	//   key   — entry name, e.g. "students" or "darkMode"
	//   value — serialized entry, stored verbatim
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Get fetches the value stored under key.
//
// sql.ErrNoRows is not an error here: an absent key is a normal state on
// first start, so it is reported through found=false.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"SELECT value FROM kv WHERE key = ? LIMIT 1",
	)
	if err != nil {
		return "", false, fmt.Errorf("Get: prepare: %w", err)
	}
	defer stmt.Close()

	var value string
	err = stmt.QueryRowContext(ctx, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("Get: scan: %w", err)
	}

	return value, true, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Set writes value under key, inserting or replacing the row.
//
// The upsert keeps the whole value as the unit of durability: a list is
// always replaced as one row, never patched.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) Set(ctx context.Context, key, value string) error {
	stmt, err := s.Db.PrepareContext(ctx,
		"INSERT INTO kv (key, value) VALUES (?, ?) "+
			"ON CONFLICT(key) DO UPDATE SET value = excluded.value",
	)
	if err != nil {
		return fmt.Errorf("Set: prepare: %w", err)
	}
	defer stmt.Close()

	// Argument order matches the ? order in the SQL: key, value
	if _, err := stmt.ExecContext(ctx, key, value); err != nil {
		return fmt.Errorf("Set: exec: %w", err)
	}

	return nil
}

// Close closes the underlying connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}
