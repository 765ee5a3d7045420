package storage

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/freightdesk/internal/dbx"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// serializer is implemented by the modernc.org/sqlite driver connection.
type serializer interface {
	Serialize() ([]byte, error)
}

var errNoSerializer = errors.New("sqlite driver does not support serialization")

var sqliteHeader = []byte("SQLite format 3\x00")

// openMemory opens a private in-memory database. The pool is pinned to one
// connection that never expires: the data lives inside that connection.
//
// If database/sql ever discards that connection (driver.ErrBadConn), the
// pool opens a new, empty one. persist refuses to write back a database
// without a schema, so such a connection can never overwrite a good blob.
func openMemory(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return db, nil
}

// serialize returns the whole database image.
func serialize(ctx context.Context, db *sql.DB) ([]byte, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize database: %w", err)
	}
	defer conn.Close()

	var out []byte
	err = conn.Raw(func(dc any) error {
		s, ok := dc.(serializer)
		if !ok {
			return errNoSerializer
		}
		var serr error
		out, serr = s.Serialize()
		return serr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize database: %w", err)
	}
	return out, nil
}

// hasSchema reports whether db holds at least one table.
func hasSchema(ctx context.Context, db dbx.DBTX) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// restore copies the database image blob into db, which must be empty.
//
// The image is written to a temporary file and attached. Tables are
// recreated from its catalog, rows copied with foreign keys off, and
// indexes and triggers created last. Every page of the result is owned by
// SQLite itself.
func restore(ctx context.Context, db *sql.DB, blob []byte) error {
	if len(blob) == 0 {
		return errors.New("database blob is empty")
	}
	if !bytes.HasPrefix(blob, sqliteHeader) {
		return errors.New("database blob is not a valid database")
	}

	path := filepath.Join(os.TempDir(), "freightdesk-"+uuid.NewString()+".db")
	if err := os.WriteFile(path, blob, 0o600); err != nil {
		return fmt.Errorf("failed to stage database blob: %w", err)
	}
	defer os.Remove(path)

	if _, err := db.ExecContext(ctx, `ATTACH DATABASE ? AS src`, path); err != nil {
		return fmt.Errorf("failed to attach database blob: %w", err)
	}
	defer func() { _, _ = db.ExecContext(context.WithoutCancel(ctx), `DETACH DATABASE src`) }()

	var check string
	if err := db.QueryRowContext(ctx, `PRAGMA src.quick_check`).Scan(&check); err != nil {
		return fmt.Errorf("database blob is not a valid database: %w", err)
	}
	if check != "ok" {
		return fmt.Errorf("database blob failed integrity check: %s", check)
	}

	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = OFF`); err != nil {
		return fmt.Errorf("failed to disable foreign keys: %w", err)
	}
	defer func() { _, _ = db.ExecContext(context.WithoutCancel(ctx), `PRAGMA foreign_keys = ON`) }()

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return copyAttached(ctx, tx)
	})
	if err != nil {
		return fmt.Errorf("failed to restore database blob: %w", err)
	}
	return nil
}

type catalogEntry struct {
	kind string
	name string
	sql  string
}

func copyAttached(ctx context.Context, tx dbx.DBTX) error {
	scan := func(s dbx.Scanner) (catalogEntry, error) {
		var c catalogEntry
		err := s.Scan(&c.kind, &c.name, &c.sql)
		return c, err
	}
	entries, err := dbx.Collect(dbx.Query(ctx, tx, scan, `
		SELECT type, name, sql FROM src.sqlite_master
		WHERE sql IS NOT NULL AND name NOT LIKE 'sqlite_%'
		ORDER BY rowid`))
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}

	for _, c := range entries {
		if c.kind != "table" {
			continue
		}
		if _, err := tx.ExecContext(ctx, c.sql); err != nil {
			return fmt.Errorf("failed to create table %s: %w", c.name, err)
		}
		q := quoteIdent(c.name)
		if _, err := tx.ExecContext(ctx, `INSERT INTO main.`+q+` SELECT * FROM src.`+q); err != nil {
			return fmt.Errorf("failed to copy table %s: %w", c.name, err)
		}
	}

	// Copying rows advanced the AUTOINCREMENT counters to the highest id;
	// the stored counters may be higher when rows were deleted.
	seq, err := tableExists(ctx, tx, "src", "sqlite_sequence")
	if err != nil {
		return err
	}
	if seq {
		if _, err := tx.ExecContext(ctx, `DELETE FROM main.sqlite_sequence`); err != nil {
			return fmt.Errorf("failed to reset sequences: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO main.sqlite_sequence SELECT * FROM src.sqlite_sequence`); err != nil {
			return fmt.Errorf("failed to copy sequences: %w", err)
		}
	}

	for _, c := range entries {
		if c.kind == "table" {
			continue
		}
		if _, err := tx.ExecContext(ctx, c.sql); err != nil {
			return fmt.Errorf("failed to create %s %s: %w", c.kind, c.name, err)
		}
	}
	return nil
}

func tableExists(ctx context.Context, db dbx.DBTX, schema, name string) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+schema+`.sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to look up table %s: %w", name, err)
	}
	return n > 0, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
