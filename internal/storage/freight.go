package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/freightdesk/internal/common"
	"github.com/dmitrijs2005/freightdesk/internal/dbx"
	"github.com/dmitrijs2005/freightdesk/internal/models"
	"github.com/dmitrijs2005/freightdesk/internal/repositories/freight"
	"github.com/dmitrijs2005/freightdesk/internal/repositories/history"
	"github.com/dmitrijs2005/freightdesk/internal/repositories/profiles"
)

// checkProfileOwner rejects a company profile reference the owner cannot see.
func checkProfileOwner(ctx context.Context, tx dbx.DBTX, profileID *int64, owner int64) error {
	if profileID == nil {
		return nil
	}
	p, err := profiles.NewSQLiteRepository(tx).GetByID(ctx, *profileID)
	if err != nil {
		return err
	}
	if p == nil || p.OwnerUserID != owner {
		return fmt.Errorf("company profile %d: %w", *profileID, common.ErrorNotFound)
	}
	return nil
}

// SaveFreightDetails stores a new record and sets r.ID and r.CreatedAt.
func (e *Engine) SaveFreightDetails(ctx context.Context, r *models.FreightRecord) (int64, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}

	rec := *r
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = e.now()
	}
	rec.UpdatedAt = nil

	var id int64
	err := e.mutate(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := checkProfileOwner(ctx, tx, rec.CompanyProfileID, rec.OwnerUserID); err != nil {
			return err
		}
		var err error
		id, err = freight.NewSQLiteRepository(tx).Create(ctx, &rec)
		return err
	})
	if err != nil {
		return 0, err
	}

	r.ID, r.CreatedAt, r.UpdatedAt = id, rec.CreatedAt, nil
	return id, nil
}

// GetFreightDetails returns nil for an unknown id.
func (e *Engine) GetFreightDetails(ctx context.Context, id int64) (*models.FreightRecord, error) {
	return readOne(ctx, e, "GetFreightDetails", func(db dbx.DBTX) (*models.FreightRecord, error) {
		return freight.NewSQLiteRepository(db).GetByID(ctx, id)
	})
}

// GetUserFreightRecords lists the owner's records, most recent first.
func (e *Engine) GetUserFreightRecords(ctx context.Context, owner int64) ([]models.FreightRecord, error) {
	return readList(ctx, e, "GetUserFreightRecords", func(db dbx.DBTX) ([]models.FreightRecord, error) {
		return freight.NewSQLiteRepository(db).ListByOwner(ctx, owner)
	})
}

// UpdateFreightDetails replaces the mutable fields of record id owned by
// r.OwnerUserID. common.ErrorNotFound means no such record for that owner.
func (e *Engine) UpdateFreightDetails(ctx context.Context, id int64, r *models.FreightRecord) error {
	if err := r.Validate(); err != nil {
		return err
	}

	rec := *r
	now := e.now()
	rec.UpdatedAt = &now

	err := e.mutate(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := checkProfileOwner(ctx, tx, rec.CompanyProfileID, rec.OwnerUserID); err != nil {
			return err
		}
		n, err := freight.NewSQLiteRepository(tx).Update(ctx, id, &rec)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("freight record %d: %w", id, common.ErrorNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.UpdatedAt = rec.UpdatedAt
	return nil
}

// DeleteFreightDetails removes an owned record together with its document
// history, in one transaction.
func (e *Engine) DeleteFreightDetails(ctx context.Context, id, owner int64) error {
	return e.mutate(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := freight.NewSQLiteRepository(tx)

		rec, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if rec == nil || rec.OwnerUserID != owner {
			return fmt.Errorf("freight record %d: %w", id, common.ErrorNotFound)
		}

		if _, err := history.NewSQLiteRepository(tx).DeleteByFreight(ctx, id); err != nil {
			return err
		}
		_, err = repo.Delete(ctx, id, owner)
		return err
	})
}
