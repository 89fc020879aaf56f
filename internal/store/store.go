package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const timeLayout = time.RFC3339Nano

// SQLite is a KV backed by a single SQLite table.
type SQLite struct {
	db *sql.DB
}

// Open creates a new SQLite store at dsn.
// It applies recommended pragmas and creates the kv table if needed.
func Open(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.ensureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *SQLite) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_ts TEXT NOT NULL
	)`)
	return err
}

func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLite) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv(key, value, updated_ts) VALUES(?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_ts = excluded.updated_ts`,
		key, value, time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (s *SQLite) Keys(ctx context.Context, prefix string) ([]string, error) {
	// LIKE treats _ and % as wildcards, and progress keys are full of
	// underscores, so the prefix match is done with substr instead.
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM kv WHERE substr(key, 1, ?) = ? ORDER BY key`,
		len(prefix), prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("list keys %q: %w", prefix, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. BODYPATH_DB environment variable
// 2. $XDG_DATA_HOME/bodypath/progress.db
// 3. ~/.local/share/bodypath/progress.db
func DefaultDBPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv("BODYPATH_DB")); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "bodypath", "progress.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
