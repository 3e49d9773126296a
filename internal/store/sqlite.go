package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/sergiomago/inspiro/internal/types"
)

// Compile-time interface check
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore is the SQLite-backed persistence layer.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath, applies pragmas,
// and runs all pending migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := enablePragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable pragmas: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// enablePragmas sets SQLite pragmas for performance and safety.
func enablePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// WasUsed reports whether quoteText was already served under contextKey.
// The caller decides what a lookup error means; this layer just reports it.
func (s *SQLiteStore) WasUsed(ctx context.Context, contextKey, quoteText string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM used_quotes WHERE search_key = ? AND quote = ?",
		contextKey, quoteText).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check used quote: %w", err)
	}
	return count > 0, nil
}

// MarkUsed appends one ledger row. Rows are never mutated or deleted here;
// administrative cleanup happens outside the service.
func (s *SQLiteStore) MarkUsed(ctx context.Context, contextKey, quoteText string, kind types.SourceKind) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO used_quotes (id, search_key, quote, quote_type, created_at) VALUES (?, ?, ?, ?, ?)",
		ulid.Make().String(), contextKey, quoteText, string(kind), now())
	if err != nil {
		return fmt.Errorf("mark quote used: %w", err)
	}
	return nil
}

// CountUsedQuotes returns the total ledger size, reported by the health check.
func (s *SQLiteStore) CountUsedQuotes(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM used_quotes").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count used quotes: %w", err)
	}
	return count, nil
}

// timeLayout is fixed-width so lexicographic ordering on the column matches
// chronological ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func now() string {
	return time.Now().UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
