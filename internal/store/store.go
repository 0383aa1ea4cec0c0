package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - students, courses, grades
const currentSchemaVersion = 1

// dirPermissions is the permission mode for a created store directory.
const dirPermissions = 0750

// DefaultBusyTimeout is used when Options.BusyTimeout is zero.
const DefaultBusyTimeout = 5 * time.Second

// Options configures how each operation opens the database.
type Options struct {
	// BusyTimeout bounds how long a statement waits on a locked file.
	BusyTimeout time.Duration

	// WAL enables write-ahead logging on the store file.
	WAL bool

	// Logger receives per-operation debug records. Defaults to slog.Default().
	Logger *slog.Logger
}

// Store is the grade records facade over a single SQLite file.
// It holds no connection between calls and is safe to copy.
type Store struct {
	path   string
	opts   Options
	logger *slog.Logger
}

// New returns a Store for the database file at path.
// No I/O happens until the first operation; call Initialize before anything
// else on a fresh path.
func New(path string, opts Options) *Store {
	if opts.BusyTimeout <= 0 {
		opts.BusyTimeout = DefaultBusyTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, opts: opts, logger: logger}
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Initialize creates the parent directory and the schema if they do not
// exist. Safe to call any number of times.
func (s *Store) Initialize(ctx context.Context) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("initialize: create directory: %w", err)
		}
	}

	err := s.withDB(ctx, true, func(db *sql.DB) error {
		if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
		if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
			return fmt.Errorf("set user_version: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	s.logger.Debug("store initialized", "path", s.path, "schema_version", currentSchemaVersion)
	return nil
}

// uriPathEscaper escapes the characters SQLite treats as URI syntax in a
// file: path. SQLite decodes %HH escapes back before opening the file.
var uriPathEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// dsn builds the go-sqlite3 connection string.
// See: https://github.com/mattn/go-sqlite3#connection-string
func (s *Store) dsn(create bool) string {
	mode := "rw"
	if create {
		mode = "rwc"
	}
	dsn := fmt.Sprintf("file:%s?mode=%s&_foreign_keys=on&_busy_timeout=%d",
		uriPathEscaper.Replace(s.path), mode, s.opts.BusyTimeout.Milliseconds())
	if s.opts.WAL {
		dsn += "&_journal_mode=WAL&_synchronous=NORMAL"
	}
	return dsn
}

// open opens a single-connection handle to the store and verifies it.
// Only Initialize may create the file; every other operation fails on a
// missing store instead of silently creating an empty one.
func (s *Store) open(ctx context.Context, create bool) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", s.dsn(create))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("open store %s: %w", s.path, err)
	}
	return db, nil
}

// withDB runs fn against a freshly opened handle and always closes it.
func (s *Store) withDB(ctx context.Context, create bool, fn func(*sql.DB) error) (err error) {
	db, err := s.open(ctx, create)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close store: %w", closeErr)
		}
	}()
	return fn(db)
}

// withTx runs fn inside one transaction on a freshly opened handle.
// The transaction commits only if fn returns nil.
func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	return s.withDB(ctx, false, func(db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback() // No-op if committed

		if err := fn(tx); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		return nil
	})
}

// SchemaVersion returns the user_version recorded by Initialize.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := s.withDB(ctx, false, func(db *sql.DB) error {
		return db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version)
	})
	if err != nil {
		return 0, fmt.Errorf("schema version: %w", err)
	}
	return version, nil
}
