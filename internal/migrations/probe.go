package migrations

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/freightdesk/internal/dbx"
)

// Exists reports whether the object the step creates is already present.
func (s Step) Exists(ctx context.Context, db dbx.DBTX) (bool, error) {
	switch s.Kind {
	case KindTable:
		return TableExists(ctx, db, s.Table)
	case KindIndex:
		return IndexExists(ctx, db, s.Object)
	case KindColumn:
		return ColumnExists(ctx, db, s.Table, s.Object)
	default:
		return false, fmt.Errorf("unknown step kind %d", s.Kind)
	}
}

// apply runs the DDL unless the object already exists.
func (s Step) apply(ctx context.Context, db dbx.DBTX) (bool, error) {
	ok, err := s.Exists(ctx, db)
	if err != nil {
		return false, fmt.Errorf("probe %q: %w", s.Name, err)
	}
	if ok {
		return false, nil
	}
	if _, err := db.ExecContext(ctx, s.DDL); err != nil {
		return false, fmt.Errorf("apply %q: %w", s.Name, err)
	}
	return true, nil
}

func TableExists(ctx context.Context, db dbx.DBTX, name string) (bool, error) {
	return masterHas(ctx, db, "table", name)
}

func IndexExists(ctx context.Context, db dbx.DBTX, name string) (bool, error) {
	return masterHas(ctx, db, "index", name)
}

func ColumnExists(ctx context.Context, db dbx.DBTX, table, column string) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`, table, column).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func masterHas(ctx context.Context, db dbx.DBTX, typ, name string) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = ? AND name = ?`, typ, name).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
