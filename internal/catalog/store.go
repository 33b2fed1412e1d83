package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"shoebox/internal/config"
)

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock

	tx         *sql.Tx
	pending    int
	flushEvery int
}

// Open initializes or connects to the catalog database, acquires the
// exclusive catalog lock, and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire catalog lock: %w", err)
	}
	if !ok {
		return nil, errors.New("catalog is locked by another shoebox process")
	}

	dbPath := cfg.CatalogPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock, flushEvery: cfg.Ingest.FlushInterval}
	if store.flushEvery <= 0 {
		store.flushEvery = 25
	}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Close abandons any unflushed batch, closes the database connection, and
// releases the catalog lock. Callers that want the batch durable call Flush
// first.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	s.Abort()
	var closeErr error
	if s.db != nil {
		closeErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && closeErr == nil {
			closeErr = err
		}
	}
	return closeErr
}

// Path returns the catalog database path.
func (s *Store) Path() string {
	return s.path
}

// querier abstracts *sql.DB and *sql.Tx so reads observe buffered writes.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// q returns the open batch transaction when one exists, otherwise the db.
func (s *Store) q() querier {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

// beginBatch lazily opens the buffering transaction for writes.
func (s *Store) beginBatch(ctx context.Context) (querier, error) {
	if s.tx != nil {
		return s.tx, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin batch: %w", err)
	}
	s.tx = tx
	return tx, nil
}

// noteInsert counts a successful media insertion and commits the batch when
// the flush cadence is reached.
func (s *Store) noteInsert(ctx context.Context) error {
	s.pending++
	if s.pending < s.flushEvery {
		return nil
	}
	return s.Flush(ctx)
}

// Flush commits the open batch, making buffered writes durable.
func (s *Store) Flush(_ context.Context) error {
	if s.tx == nil {
		s.pending = 0
		return nil
	}
	err := s.tx.Commit()
	s.tx = nil
	s.pending = 0
	if err != nil {
		return fmt.Errorf("flush catalog batch: %w", err)
	}
	return nil
}

// Abort rolls back the open batch. Writes since the last Flush are discarded,
// leaving the catalog consistent with what was already made durable.
func (s *Store) Abort() {
	if s.tx == nil {
		return
	}
	_ = s.tx.Rollback()
	s.tx = nil
	s.pending = 0
}

// Pending returns the number of insertions buffered since the last flush.
func (s *Store) Pending() int {
	return s.pending
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, column)
}

func formatCaptureTime(value time.Time) string {
	return value.Format(captureTimeLayout)
}

func parseCaptureTime(value string) (time.Time, error) {
	return time.ParseInLocation(captureTimeLayout, value, time.Local)
}

func formatTimestamp(value time.Time) string {
	return value.UTC().Format(time.RFC3339Nano)
}

func parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	return time.Parse(time.RFC3339Nano, value)
}
