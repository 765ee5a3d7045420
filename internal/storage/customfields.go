package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/freightdesk/internal/common"
	"github.com/dmitrijs2005/freightdesk/internal/dbx"
	"github.com/dmitrijs2005/freightdesk/internal/models"
	"github.com/dmitrijs2005/freightdesk/internal/repositories/customfields"
)

// SaveCustomField stores a new, active field definition.
func (e *Engine) SaveCustomField(ctx context.Context, f *models.CustomFieldDefinition) (int64, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}

	def := *f
	def.IsActive = true
	if def.CreatedAt.IsZero() {
		def.CreatedAt = e.now()
	}

	var id int64
	err := e.mutate(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		id, err = customfields.NewSQLiteRepository(tx).Create(ctx, &def)
		return err
	})
	if err != nil {
		return 0, err
	}

	f.ID, f.IsActive, f.CreatedAt = id, true, def.CreatedAt
	return id, nil
}

func (e *Engine) GetCustomField(ctx context.Context, id int64) (*models.CustomFieldDefinition, error) {
	return readOne(ctx, e, "GetCustomField", func(db dbx.DBTX) (*models.CustomFieldDefinition, error) {
		return customfields.NewSQLiteRepository(db).GetByID(ctx, id)
	})
}

// GetUserCustomFields lists the owner's fields by display order.
func (e *Engine) GetUserCustomFields(ctx context.Context, owner int64, includeInactive bool) ([]models.CustomFieldDefinition, error) {
	return readList(ctx, e, "GetUserCustomFields", func(db dbx.DBTX) ([]models.CustomFieldDefinition, error) {
		return customfields.NewSQLiteRepository(db).ListByOwner(ctx, owner, includeInactive)
	})
}

func (e *Engine) UpdateCustomField(ctx context.Context, id int64, f *models.CustomFieldDefinition) error {
	if err := f.Validate(); err != nil {
		return err
	}

	return e.mutate(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		n, err := customfields.NewSQLiteRepository(tx).Update(ctx, id, f)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("custom field %d: %w", id, common.ErrorNotFound)
		}
		return nil
	})
}

// DeleteCustomField deactivates the field; it is kept for older records.
func (e *Engine) DeleteCustomField(ctx context.Context, id, owner int64) error {
	return e.mutate(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		n, err := customfields.NewSQLiteRepository(tx).Deactivate(ctx, id, owner)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("custom field %d: %w", id, common.ErrorNotFound)
		}
		return nil
	})
}
