// Package storage is the embedded relational data layer.
//
// An Engine owns one in-memory SQLite database. Initialize loads it from a
// blob store (or creates it with the current schema and a seed account), the
// migrator brings older databases up to date, and after every mutation the
// whole database is serialized and written back under one key.
//
// Reads on an uninitialized engine return nil or an empty slice. Mutations
// return common.ErrUninitialized. A mutation whose write-back fails returns
// an error wrapping common.ErrSerialization even though the in-memory
// database already holds the change.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/freightdesk/internal/blobstore"
	"github.com/dmitrijs2005/freightdesk/internal/common"
	"github.com/dmitrijs2005/freightdesk/internal/cryptox"
	"github.com/dmitrijs2005/freightdesk/internal/dbx"
	"github.com/dmitrijs2005/freightdesk/internal/logging"
	"github.com/dmitrijs2005/freightdesk/internal/migrations"
	"github.com/dmitrijs2005/freightdesk/internal/repositories/users"
)

// Engine is safe for use by multiple goroutines; calls are serialized.
type Engine struct {
	store     blobstore.Store
	log       logging.Logger
	migrator  *migrations.Migrator
	blobKey   string
	markerKey string
	now       func() time.Time

	mu sync.Mutex
	db *sql.DB
}

type Option func(*Engine)

var errEmptySchema = errors.New("database has no schema")

// WithBlobKey overrides the key the database is stored under.
func WithBlobKey(key string) Option {
	return func(e *Engine) { e.blobKey = key }
}

// WithMarkerKey overrides the key of the last-backup marker.
func WithMarkerKey(key string) Option {
	return func(e *Engine) { e.markerKey = key }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func New(store blobstore.Store, log logging.Logger, opts ...Option) *Engine {
	log = log.With("component", "storage")
	e := &Engine{
		store:     store,
		log:       log,
		migrator:  migrations.New(log),
		blobKey:   common.DatabaseBlobKey,
		markerKey: common.LastBackupBlobKey,
		now:       time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Initialize loads or creates the database. Calling it on an initialized
// engine is a no-op. On failure the engine stays uninitialized.
func (e *Engine) Initialize(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db != nil {
		return nil
	}

	blob, err := e.store.Read(ctx, e.blobKey)
	var db *sql.DB
	switch {
	case errors.Is(err, common.ErrorNotFound):
		e.log.Info(ctx, "no stored database, creating a new one", "key", e.blobKey)
		db, err = e.create(ctx)
	case err != nil:
		e.log.Error(ctx, "failed to read stored database", "key", e.blobKey, "error", err)
		return fmt.Errorf("failed to read database blob: %w", err)
	default:
		e.log.Info(ctx, "loading stored database", "key", e.blobKey, "bytes", len(blob))
		db, err = e.load(ctx, blob)
	}
	if err != nil {
		e.log.Error(ctx, "database initialization failed", "error", err)
		return err
	}

	e.db = db
	return nil
}

func (e *Engine) create(ctx context.Context) (*sql.DB, error) {
	db, err := openMemory(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := e.migrator.Up(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	_, err = users.NewSQLiteRepository(db).Create(ctx,
		common.DefaultUsername, cryptox.HashPassword(common.DefaultPassword), e.now())
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to seed default user: %w", err)
	}

	if err := e.persist(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (e *Engine) load(ctx context.Context, blob []byte) (*sql.DB, error) {
	db, err := openMemory(ctx)
	if err != nil {
		return nil, err
	}

	if err := restore(ctx, db, blob); err != nil {
		_ = db.Close()
		return nil, err
	}

	applied, err := e.migrator.Up(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	if len(applied) > 0 {
		if err := e.persist(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

// persist writes the full database image to the store. A database without
// a schema is never written.
func (e *Engine) persist(ctx context.Context, db *sql.DB) error {
	ok, err := hasSchema(ctx, db)
	if err == nil && !ok {
		err = errEmptySchema
	}
	var data []byte
	if err == nil {
		data, err = serialize(ctx, db)
	}
	if err == nil {
		err = e.store.Write(ctx, e.blobKey, data)
	}
	if err != nil {
		e.log.Error(ctx, "failed to persist database", "key", e.blobKey, "error", err)
		return fmt.Errorf("%w: %w", common.ErrSerialization, err)
	}
	e.log.Debug(ctx, "database persisted", "key", e.blobKey, "bytes", len(data))
	return nil
}

// mutate runs fn in a transaction and persists the database after commit.
func (e *Engine) mutate(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db == nil {
		return common.ErrUninitialized
	}
	if err := dbx.WithTx(ctx, e.db, nil, fn); err != nil {
		return err
	}
	return e.persist(ctx, e.db)
}

// readOne runs a single-row read; an uninitialized engine yields nil.
func readOne[T any](ctx context.Context, e *Engine, op string, fn func(db dbx.DBTX) (*T, error)) (*T, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db == nil {
		e.log.Warn(ctx, "read on uninitialized database", "op", op)
		return nil, nil
	}
	return fn(e.db)
}

// readList runs a multi-row read; an uninitialized engine yields an empty slice.
func readList[T any](ctx context.Context, e *Engine, op string, fn func(db dbx.DBTX) ([]T, error)) ([]T, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db == nil {
		e.log.Warn(ctx, "read on uninitialized database", "op", op)
		return []T{}, nil
	}
	return fn(e.db)
}

// Initialized reports whether the engine holds an open database.
func (e *Engine) Initialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.db != nil
}

// SchemaVersion returns the stored schema version of the open database.
func (e *Engine) SchemaVersion(ctx context.Context) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db == nil {
		return 0, common.ErrUninitialized
	}
	return e.migrator.Version(ctx, e.db)
}

// Close releases the database. The engine is uninitialized afterwards.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db == nil {
		return nil
	}
	err := e.db.Close()
	e.db = nil
	return err
}
