// Package migrations evolves the embedded database schema.
//
// The schema is an ordered list of steps, each creating one table, column
// or index. Steps run through a goose provider, so the applied version is
// recorded in goose_db_version and only newer steps execute on later
// starts. Each step also checks the catalog before running its DDL, which
// lets databases created before version tracking existed be adopted: their
// steps are recorded as applied without touching existing objects.
package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/freightdesk/internal/common"
	"github.com/dmitrijs2005/freightdesk/internal/logging"
	"github.com/pressly/goose/v3"
)

// Migrator brings a database to Latest.
type Migrator struct {
	log logging.Logger
}

func New(log logging.Logger) *Migrator {
	return &Migrator{log: log.With("component", "migrations")}
}

func (m *Migrator) provider(db *sql.DB) (*goose.Provider, error) {
	migrations := make([]*goose.Migration, 0, len(steps))
	for _, s := range steps {
		migrations = append(migrations, goose.NewGoMigration(s.Version, &goose.GoFunc{RunTx: m.runStep(s)}, nil))
	}

	return goose.NewProvider(goose.DialectSQLite3, db, nil,
		goose.WithGoMigrations(migrations...),
		goose.WithDisableGlobalRegistry(true),
	)
}

func (m *Migrator) runStep(s Step) func(ctx context.Context, tx *sql.Tx) error {
	return func(ctx context.Context, tx *sql.Tx) error {
		created, err := s.apply(ctx, tx)
		if err != nil {
			return err
		}
		if created {
			m.log.Debug(ctx, "schema step applied", "version", s.Version, "step", s.Name, "kind", s.Kind.String())
		} else {
			m.log.Debug(ctx, "schema step already present", "version", s.Version, "step", s.Name)
		}
		return nil
	}
}

// Up applies every pending step in order and returns the versions applied.
// Running it on an up-to-date database applies nothing.
func (m *Migrator) Up(ctx context.Context, db *sql.DB) ([]int64, error) {
	p, err := m.provider(db)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrMigration, err)
	}

	results, err := p.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrMigration, err)
	}

	applied := make([]int64, 0, len(results))
	for _, r := range results {
		applied = append(applied, r.Source.Version)
	}
	if len(applied) > 0 {
		m.log.Info(ctx, "schema migrated", "from", applied[0]-1, "to", applied[len(applied)-1])
	}
	return applied, nil
}

// Version reports the stored schema version; zero for an untracked database.
func (m *Migrator) Version(ctx context.Context, db *sql.DB) (int64, error) {
	p, err := m.provider(db)
	if err != nil {
		return 0, err
	}
	v, err := p.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, nil
}
