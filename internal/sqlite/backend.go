package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/huntbook/internal/logging"
	"github.com/mesh-intelligence/huntbook/pkg/types"
)

// Backend owns the SQLite connection. It is created detached; Attach opens
// and migrates the database and seeds default rows.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	path     string
	db       *sql.DB
	store    *Store
	logger   *slog.Logger
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for migration, cascade and import events.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Backend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBackend creates a detached backend.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{logger: logging.Discard()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// dsn builds the driver connection string for path.
func dsn(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// Attach opens the database described by config, applies pending
// migrations and seeds defaults. A database written by a newer program
// fails with a *types.SchemaOpenError and leaves the backend detached.
func (b *Backend) Attach(ctx context.Context, config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	var db *sql.DB
	var err error
	path := ":memory:"
	if config.InMemory {
		db, err = sql.Open("sqlite", path)
	} else {
		if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
		path = filepath.Join(config.DataDir, types.DatabaseFileName)
		db, err = sql.Open("sqlite", dsn(path))
	}
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	// One connection keeps transactions and the in-memory database on the
	// same handle.
	db.SetMaxOpenConns(1)

	if config.InMemory {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return fmt.Errorf("enabling foreign keys: %w", err)
		}
	}

	if err := migrate(ctx, db, path, b.logger); err != nil {
		db.Close()
		return err
	}

	store := newStore(db, db, b.logger)
	if err := seed(ctx, store); err != nil {
		db.Close()
		return err
	}

	b.db = db
	b.path = path
	b.config = config
	b.store = store
	b.attached = true
	b.logger.Info("backend attached", "path", path, "schema_version", SchemaVersion)
	return nil
}

// Detach closes the database. It is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	b.store = nil
	b.attached = false
	b.logger.Info("backend detached", "path", b.path)
	return err
}

// Path returns the database file path, or ":memory:".
func (b *Backend) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// Store returns the attached store.
func (b *Backend) Store() (*Store, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrBackendDetached
	}
	return b.store, nil
}

// Tx runs fn in one transaction on the attached store.
func (b *Backend) Tx(ctx context.Context, fn func(*Store) error) error {
	s, err := b.Store()
	if err != nil {
		return err
	}
	return s.Tx(ctx, fn)
}

// ReplaceSpecies swaps the species reference table for rows.
func (b *Backend) ReplaceSpecies(ctx context.Context, rows []*types.GameAnimal) (int, error) {
	s, err := b.Store()
	if err != nil {
		return 0, err
	}
	return s.ReplaceSpecies(ctx, rows)
}

// CountSpecies returns the number of species reference rows.
func (b *Backend) CountSpecies(ctx context.Context) (int, error) {
	s, err := b.Store()
	if err != nil {
		return 0, err
	}
	return s.Species.Count(ctx)
}
