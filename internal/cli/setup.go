package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/freightdesk/internal/blobstore"
	"github.com/dmitrijs2005/freightdesk/internal/config"
	"github.com/dmitrijs2005/freightdesk/internal/filex"
	"github.com/dmitrijs2005/freightdesk/internal/logging"
	"github.com/dmitrijs2005/freightdesk/internal/services"
	"github.com/dmitrijs2005/freightdesk/internal/storage"
)

// OpenStore builds the blob store selected by c. A passphrase wraps it in
// an encrypting store.
func OpenStore(ctx context.Context, c *config.Config) (blobstore.Store, error) {
	var (
		store blobstore.Store
		err   error
	)

	switch c.StorageBackend {
	case config.BackendDir:
		dir, derr := filex.EnsureDir(c.DataDir)
		if derr != nil {
			return nil, derr
		}
		store, err = blobstore.NewDir(dir)
	case config.BackendS3:
		store, err = blobstore.NewS3(ctx, blobstore.S3Options{
			Bucket:   c.S3.Bucket,
			Region:   c.S3.Region,
			Endpoint: c.S3.Endpoint,
			User:     c.S3.User,
			Password: c.S3.Password,
		})
	case config.BackendMemory:
		store = blobstore.NewMemory()
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
	if err != nil {
		return nil, err
	}

	if c.Passphrase != "" {
		store = blobstore.NewEncrypted(store, c.Passphrase)
	}
	return store, nil
}

// Bootstrap wires the logger, store, engine and services for c and
// initializes the database. The returned func releases everything.
func Bootstrap(ctx context.Context, c *config.Config, logw io.Writer) (*App, func(), error) {
	log, err := logging.New(c.LogFormat, c.LogLevel, logw)
	if err != nil {
		return nil, nil, err
	}

	store, err := OpenStore(ctx, c)
	if err != nil {
		log.Error(ctx, "failed to open storage", "backend", c.StorageBackend, "error", err)
		return nil, nil, err
	}

	engine := storage.New(store, log, storage.WithBlobKey(c.BlobKey))
	if err := engine.Initialize(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	auth := services.NewAuthService(engine, []byte(c.SessionSecret), c.SessionTTL)
	app := NewApp(engine, auth, log)

	cleanup := func() {
		if err := engine.Close(); err != nil {
			log.Warn(ctx, "failed to close database", "error", err)
		}
		if enc, ok := store.(*blobstore.Encrypted); ok {
			enc.Close()
		}
		if z, ok := log.(interface{ Sync() error }); ok {
			_ = z.Sync()
		}
	}
	return app, cleanup, nil
}
