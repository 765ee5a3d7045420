package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/freightdesk/internal/common"
	"github.com/dmitrijs2005/freightdesk/internal/dbx"
	"github.com/dmitrijs2005/freightdesk/internal/migrations"
	"github.com/dmitrijs2005/freightdesk/internal/models"
)

// ExportAll dumps every entity table and records the export time as the
// last backup.
func (e *Engine) ExportAll(ctx context.Context) (*models.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db == nil {
		return nil, common.ErrUninitialized
	}

	version, err := e.migrator.Version(ctx, e.db)
	if err != nil {
		return nil, err
	}

	snap := &models.Snapshot{
		Version:       models.SnapshotVersion,
		SchemaVersion: version,
		ExportedAt:    e.now().UTC(),
		Tables:        make(map[string][]map[string]any, len(models.SnapshotTables)),
	}
	for _, table := range models.SnapshotTables {
		rows, err := dumpTable(ctx, e.db, table)
		if err != nil {
			return nil, err
		}
		snap.Tables[table] = rows
	}

	marker := []byte(snap.ExportedAt.Format(time.RFC3339Nano))
	if err := e.store.Write(ctx, e.markerKey, marker); err != nil {
		e.log.Warn(ctx, "failed to record backup time", "key", e.markerKey, "error", err)
	}

	e.log.Info(ctx, "database exported", "schema_version", version)
	return snap, nil
}

func dumpTable(ctx context.Context, db dbx.DBTX, table string) ([]map[string]any, error) {
	rows, err := db.QueryContext(ctx, `SELECT * FROM `+table+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s columns: %w", table, err)
	}

	out := []map[string]any{}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}

		row := make(map[string]any, len(cols))
		for i, c := range cols {
			if b, ok := vals[i].([]byte); ok {
				row[c] = string(b)
				continue
			}
			row[c] = vals[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}
	return out, nil
}

func invalidSnapshot(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrInvalidSnapshot, fmt.Sprintf(format, args...))
}

func checkSnapshot(s *models.Snapshot) error {
	if s == nil {
		return invalidSnapshot("empty snapshot")
	}
	if s.Version != models.SnapshotVersion {
		return invalidSnapshot("unsupported version %d", s.Version)
	}
	if s.SchemaVersion > migrations.Latest {
		return invalidSnapshot("schema version %d is newer than %d", s.SchemaVersion, migrations.Latest)
	}
	for table, rows := range s.Tables {
		if !slices.Contains(models.SnapshotTables, table) {
			return invalidSnapshot("unknown table %q", table)
		}
		for i, row := range rows {
			if row["id"] == nil {
				return invalidSnapshot("%s row %d has no id", table, i)
			}
		}
	}
	return nil
}

// ImportAll replaces the whole database with the snapshot content. The
// snapshot is loaded into a fresh database first; the current one is kept
// untouched if anything fails.
func (e *Engine) ImportAll(ctx context.Context, s *models.Snapshot) error {
	if err := checkSnapshot(s); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db == nil {
		return common.ErrUninitialized
	}

	db, err := openMemory(ctx)
	if err != nil {
		return err
	}
	if _, err := e.migrator.Up(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, table := range models.SnapshotTables {
			if err := e.restoreTable(ctx, tx, table, s.Tables[table]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("%w: %w", common.ErrInvalidSnapshot, err)
	}

	old := e.db
	e.db = db
	if err := old.Close(); err != nil {
		e.log.Warn(ctx, "failed to close replaced database", "error", err)
	}

	e.log.Info(ctx, "database imported", "schema_version", s.SchemaVersion)
	return e.persist(ctx, e.db)
}

func tableColumns(ctx context.Context, db dbx.DBTX, table string) ([]string, error) {
	return dbx.Collect(dbx.Query(ctx, db, func(s dbx.Scanner) (string, error) {
		var name string
		err := s.Scan(&name)
		return name, err
	}, `SELECT name FROM pragma_table_info(?)`, table))
}

func (e *Engine) restoreTable(ctx context.Context, tx dbx.DBTX, table string, rows []map[string]any) error {
	if len(rows) == 0 {
		return nil
	}

	known, err := tableColumns(ctx, tx, table)
	if err != nil {
		return fmt.Errorf("failed to read %s columns: %w", table, err)
	}

	for _, row := range rows {
		cols := make([]string, 0, len(row))
		args := make([]any, 0, len(row))
		for _, c := range known {
			v, ok := row[c]
			if !ok {
				continue
			}
			arg, err := importValue(v)
			if err != nil {
				return fmt.Errorf("%s.%s: %w", table, c, err)
			}
			cols = append(cols, c)
			args = append(args, arg)
		}
		for c := range row {
			if !slices.Contains(known, c) {
				e.log.Warn(ctx, "ignoring unknown column in snapshot", "table", table, "column", c)
			}
		}

		q := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
			table, strings.Join(cols, ", "), strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "))
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("failed to restore %s row %v: %w", table, row["id"], err)
		}
	}
	return nil
}

// importValue converts a decoded JSON value into a driver argument.
func importValue(v any) (any, error) {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, nil
		}
		return x.Float64()
	case bool:
		if x {
			return int64(1), nil
		}
		return int64(0), nil
	case map[string]any, []any:
		b, err := json.Marshal(x)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	default:
		return v, nil
	}
}

// ClearAllData removes the stored database and backup marker and closes the
// engine. The next Initialize starts from an empty database.
func (e *Engine) ClearAllData(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var errs []error
	if err := e.store.Delete(ctx, e.blobKey); err != nil {
		errs = append(errs, fmt.Errorf("failed to delete database blob: %w", err))
	}
	if err := e.store.Delete(ctx, e.markerKey); err != nil {
		errs = append(errs, fmt.Errorf("failed to delete backup marker: %w", err))
	}
	if e.db != nil {
		if err := e.db.Close(); err != nil {
			errs = append(errs, err)
		}
		e.db = nil
	}

	err := errors.Join(errs...)
	if err != nil {
		e.log.Error(ctx, "failed to clear data", "error", err)
	} else {
		e.log.Info(ctx, "all data cleared")
	}
	return err
}

// LastBackupAt returns the time of the last export, or nil if there was none.
func (e *Engine) LastBackupAt(ctx context.Context) (*time.Time, error) {
	b, err := e.store.Read(ctx, e.markerKey)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup marker: %w", err)
	}

	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(string(b)))
	if err != nil {
		return nil, fmt.Errorf("invalid backup marker: %w", err)
	}
	return &t, nil
}
