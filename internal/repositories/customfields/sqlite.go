package customfields

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/freightdesk/internal/dbx"
	"github.com/dmitrijs2005/freightdesk/internal/models"
)

const selectField = `SELECT id, user_id, field_name, field_label, field_type, is_required,
	options, display_order, is_active, created_at
	FROM custom_fields`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func scanField(s dbx.Scanner) (models.CustomFieldDefinition, error) {
	var (
		f         models.CustomFieldDefinition
		fieldType string
		options   sql.NullString
		createdAt string
	)
	err := s.Scan(&f.ID, &f.OwnerUserID, &f.FieldName, &f.FieldLabel, &fieldType, &f.IsRequired,
		&options, &f.DisplayOrder, &f.IsActive, &createdAt)
	if err != nil {
		return f, err
	}
	f.FieldType = models.FieldType(fieldType)

	if options.Valid && options.String != "" {
		if err := json.Unmarshal([]byte(options.String), &f.Options); err != nil {
			return f, fmt.Errorf("bad options of field %d: %w", f.ID, err)
		}
	}

	if f.CreatedAt, err = dbx.ParseTime(createdAt); err != nil {
		return f, err
	}
	return f, nil
}

func optionsArg(opts []string) (sql.NullString, error) {
	if opts == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(opts)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, f *models.CustomFieldDefinition) (int64, error) {
	opts, err := optionsArg(f.Options)
	if err != nil {
		return 0, fmt.Errorf("failed to encode options: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO custom_fields (user_id, field_name, field_label, field_type, is_required,
			options, display_order, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.OwnerUserID, f.FieldName, f.FieldLabel, string(f.FieldType), f.IsRequired,
		opts, f.DisplayOrder, f.IsActive, dbx.FormatTime(f.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("failed to insert custom field: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get custom field id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.CustomFieldDefinition, error) {
	f, err := dbx.QueryOne(ctx, r.db, scanField, selectField+` WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get custom field %d: %w", id, err)
	}
	return f, nil
}

// ListByOwner orders by display_order, then id.
func (r *SQLiteRepository) ListByOwner(ctx context.Context, ownerID int64, includeInactive bool) ([]models.CustomFieldDefinition, error) {
	q := selectField + ` WHERE user_id = ?`
	if !includeInactive {
		q += ` AND is_active = 1`
	}
	q += ` ORDER BY display_order, id`

	out, err := dbx.Collect(dbx.Query(ctx, r.db, scanField, q, ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to list custom fields: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id int64, f *models.CustomFieldDefinition) (int64, error) {
	opts, err := optionsArg(f.Options)
	if err != nil {
		return 0, fmt.Errorf("failed to encode options: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE custom_fields SET field_name = ?, field_label = ?, field_type = ?, is_required = ?,
			options = ?, display_order = ?, is_active = ?
		WHERE id = ? AND user_id = ?`,
		f.FieldName, f.FieldLabel, string(f.FieldType), f.IsRequired,
		opts, f.DisplayOrder, f.IsActive, id, f.OwnerUserID)
	if err != nil {
		return 0, fmt.Errorf("failed to update custom field %d: %w", id, err)
	}
	return affected(res)
}

// Deactivate is the soft delete: the row stays so records that used the
// field can still be read.
func (r *SQLiteRepository) Deactivate(ctx context.Context, id, ownerID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE custom_fields SET is_active = 0 WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate custom field %d: %w", id, err)
	}
	return affected(res)
}

func affected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n, nil
}
