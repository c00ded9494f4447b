package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteSource reads settings from the gateway's options table.
//
// The gateway persists operator-editable settings in a two-column
// table:
//
//	CREATE TABLE options (key TEXT PRIMARY KEY, value TEXT)
//
// This source is strictly read-only: the gateway owns writes, and
// every Get issues a fresh query so rate changes made through the
// console are observed immediately.
type SQLiteSource struct {
	db    *sql.DB
	table string

	getStmt  *sql.Stmt
	listStmt *sql.Stmt
}

// SQLiteSourceConfig configures the SQLite settings source.
type SQLiteSourceConfig struct {
	// Path is the database file path.
	Path string

	// Table is the options table name. Default: "options"
	Table string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// NewSQLiteSource opens a read-only settings source against the
// database at path, using the default table name.
func NewSQLiteSource(path string) (*SQLiteSource, error) {
	return NewSQLiteSourceWithConfig(SQLiteSourceConfig{Path: path})
}

// NewSQLiteSourceWithConfig opens a read-only settings source with
// custom configuration.
func NewSQLiteSourceWithConfig(cfg SQLiteSourceConfig) (*SQLiteSource, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if cfg.Table == "" {
		cfg.Table = "options"
	}
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings database: %w", err)
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.BusyTimeout.Milliseconds())); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// The table name cannot be bound as a parameter; it comes from local
	// configuration, not user input.
	getStmt, err := db.Prepare(fmt.Sprintf("SELECT value FROM %s WHERE key = ?", cfg.Table))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare settings query: %w", err)
	}
	listStmt, err := db.Prepare(fmt.Sprintf("SELECT key FROM %s ORDER BY key", cfg.Table))
	if err != nil {
		_ = getStmt.Close()
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare settings list query: %w", err)
	}

	return &SQLiteSource{
		db:       db,
		table:    cfg.Table,
		getStmt:  getStmt,
		listStmt: listStmt,
	}, nil
}

// Get retrieves a value by key with a fresh query.
func (s *SQLiteSource) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.getStmt.QueryRowContext(ctx, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to query setting %q: %w", key, err)
	}
	return value, nil
}

// List returns all keys in the options table.
func (s *SQLiteSource) List(ctx context.Context) ([]string, error) {
	rows, err := s.listStmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan settings key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Name returns the source name.
func (s *SQLiteSource) Name() string {
	return "sqlite"
}

// Supports always reports true: the options table is the canonical
// store, so absence is only known after a lookup.
func (s *SQLiteSource) Supports(key string) bool {
	return true
}

// Close releases the database connection.
func (s *SQLiteSource) Close() error {
	if s.getStmt != nil {
		_ = s.getStmt.Close()
	}
	if s.listStmt != nil {
		_ = s.listStmt.Close()
	}
	return s.db.Close()
}
