// Package gate provides the length gate backed by a Store implementation.
// It exposes a Service which wraps a store.Store with the user's
// configuration, runs checks and records their reports.
package gate

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/jpl-au/qgate/extension"
	"github.com/jpl-au/qgate/internal/config"
	"github.com/jpl-au/qgate/internal/log"
	"github.com/jpl-au/qgate/internal/repo"
	"github.com/jpl-au/qgate/internal/service"
	"github.com/jpl-au/qgate/internal/store"
)

const DefaultAuthor = "unknown"

var _ service.Service = (*Service)(nil)

// Service provides gate operations backed by a Store.
type Service struct {
	store  *store.SQLiteStore
	dbPath string
	dir    string
	cfg    *config.Config
	extCtx extension.Context // for firing events to extensions
}

// New creates a new Service, discovering the DB by walking up the directory tree.
// The db parameter specifies which database to use (empty for default).
// Returns ErrNotInitialised if no matching database is found.
func New(db string) (*Service, error) {
	dbPath, err := repo.Discover(db)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err // config.Load provides detailed, actionable error messages
	}

	return Open(dbPath, cfg)
}

// Open creates a Service for the database at dbPath with an already loaded
// configuration.
func Open(dbPath string, cfg *config.Config) (*Service, error) {
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Service{
		store:  s,
		dbPath: dbPath,
		dir:    filepath.Dir(dbPath),
		cfg:    cfg,
	}, nil
}

// Init initialises a new qgate store.
// If dir is empty, uses current directory; otherwise uses dir.
// The db parameter specifies which database to create (empty for default).
// If local is true, the database is added to .gitignore (not committed).
//
// Note: Init does not write config. Config is managed separately via "qgate config".
func Init(force bool, db string, local bool, dir string) error {
	return repo.Init(force, db, local, dir)
}

// Close checkpoints the WAL and closes the database connection.
func (s *Service) Close() error {
	if err := s.store.Checkpoint(context.Background()); err != nil {
		log.Event("service:close", "checkpoint").
			Detail("error", err.Error()).
			Write(err)
	}
	return s.store.Close()
}

// ReloadConfig reloads configuration from disk.
// Call this after modifying config to ensure the service uses new settings.
func (s *Service) ReloadConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	s.cfg = cfg
	return nil
}

// Config returns the configuration checks run with.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// SetExtensionContext sets the extension context for firing events.
// Called from cmd/init_extensions.go after creating the context.
func (s *Service) SetExtensionContext(ctx extension.Context) {
	s.extCtx = ctx
}

// fireEvent notifies all registered extension event handlers.
//
// Handler errors are logged, not returned: events observe a recorded check
// and cannot undo it.
func (s *Service) fireEvent(e extension.Event) {
	if s.extCtx == nil {
		return
	}
	for _, ext := range extension.All() {
		if h, ok := ext.(extension.EventHandler); ok {
			if err := h.HandleEvent(s.extCtx, e); err != nil {
				log.Event("event:error", "error").
					Batch(e.EventBatch()).
					Detail("ext", ext.Name()).
					Detail("event", string(e.EventType())).
					Write(err)
			}
		}
	}
}

// DB returns the underlying database connection for extensions.
func (s *Service) DB() *sql.DB {
	return s.store.DB()
}

// DBPath returns the path to the database file.
func (s *Service) DBPath() string {
	return s.dbPath
}

// Dir returns the .qgate directory containing the database.
func (s *Service) Dir() string {
	return s.dir
}

// Tx runs a function within a database transaction.
//
// Rollback is always deferred and is a no-op after a successful Commit.
// Extensions get the raw *sql.Tx for multi-step work on their own tables.
func (s *Service) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.store.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return fmt.Errorf("transaction rolled back: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
