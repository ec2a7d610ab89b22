// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/gsdgroup/billing/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// Ensure session implements storage.Session
var _ storage.Session = (*session)(nil)

const defaultBusyTimeout = 5 * time.Second

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// Option configures how the database is opened.
type Option func(*options)

type options struct {
	busyTimeout time.Duration
}

// WithBusyTimeout sets how long a connection waits on a locked database.
func WithBusyTimeout(d time.Duration) Option {
	return func(o *options) {
		o.busyTimeout = d
	}
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string, opts ...Option) (*SQLiteStore, error) {
	o := options{busyTimeout: defaultBusyTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas go in the DSN so every pooled connection gets them.
	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)", dbPath, o.busyTimeout.Milliseconds())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows one writer; a single connection keeps transactions serialized.
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// WithTx runs fn inside one transaction, committing only when fn succeeds.
func (s *SQLiteStore) WithTx(ctx context.Context, fn func(storage.Session) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := &session{tx: tx}
	if err := fn(q); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	for _, assign := range q.assigned {
		assign()
	}
	return nil
}

// session binds gateway operations to one transaction.
type session struct {
	tx *sql.Tx

	// assigned writes generated IDs back into the caller's graph once the
	// transaction has committed.
	assigned []func()
}

func (q *session) onCommit(fn func()) {
	q.assigned = append(q.assigned, fn)
}

// ids returns the set of IDs produced by query.
func (q *session) ids(ctx context.Context, query string, args ...any) (map[int64]bool, error) {
	rows, err := q.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		set[id] = true
	}
	return set, rows.Err()
}

func toUnix(t time.Time) int64 {
	return t.Unix()
}

// unixCeil returns the first whole second not before t. Stored dates are whole
// seconds, so due_date < unixCeil(now) holds exactly when the due date is before now.
func unixCeil(t time.Time) int64 {
	sec := t.Unix()
	if t.Nanosecond() > 0 {
		sec++
	}
	return sec
}

func fromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}
