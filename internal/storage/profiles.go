package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/freightdesk/internal/common"
	"github.com/dmitrijs2005/freightdesk/internal/dbx"
	"github.com/dmitrijs2005/freightdesk/internal/models"
	"github.com/dmitrijs2005/freightdesk/internal/repositories/freight"
	"github.com/dmitrijs2005/freightdesk/internal/repositories/profiles"
)

// SaveCompanyProfile stores a profile. Saving one with IsDefault set clears
// the flag on the owner's other profiles in the same transaction.
func (e *Engine) SaveCompanyProfile(ctx context.Context, p *models.CompanyProfile) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	prof := *p
	if prof.CreatedAt.IsZero() {
		prof.CreatedAt = e.now()
	}

	var id int64
	err := e.mutate(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := profiles.NewSQLiteRepository(tx)
		var err error
		if id, err = repo.Create(ctx, &prof); err != nil {
			return err
		}
		if prof.IsDefault {
			return repo.ClearDefault(ctx, prof.OwnerUserID, id)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	p.ID, p.CreatedAt = id, prof.CreatedAt
	return id, nil
}

func (e *Engine) GetCompanyProfile(ctx context.Context, id int64) (*models.CompanyProfile, error) {
	return readOne(ctx, e, "GetCompanyProfile", func(db dbx.DBTX) (*models.CompanyProfile, error) {
		return profiles.NewSQLiteRepository(db).GetByID(ctx, id)
	})
}

func (e *Engine) GetUserCompanyProfiles(ctx context.Context, owner int64) ([]models.CompanyProfile, error) {
	return readList(ctx, e, "GetUserCompanyProfiles", func(db dbx.DBTX) ([]models.CompanyProfile, error) {
		return profiles.NewSQLiteRepository(db).ListByOwner(ctx, owner)
	})
}

// GetDefaultCompanyProfile returns nil when the owner has no default.
func (e *Engine) GetDefaultCompanyProfile(ctx context.Context, owner int64) (*models.CompanyProfile, error) {
	return readOne(ctx, e, "GetDefaultCompanyProfile", func(db dbx.DBTX) (*models.CompanyProfile, error) {
		return profiles.NewSQLiteRepository(db).GetDefault(ctx, owner)
	})
}

// UpdateCompanyProfile replaces profile id owned by p.OwnerUserID.
func (e *Engine) UpdateCompanyProfile(ctx context.Context, id int64, p *models.CompanyProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	return e.mutate(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := profiles.NewSQLiteRepository(tx)
		n, err := repo.Update(ctx, id, p)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("company profile %d: %w", id, common.ErrorNotFound)
		}
		if p.IsDefault {
			return repo.ClearDefault(ctx, p.OwnerUserID, id)
		}
		return nil
	})
}

// DeleteCompanyProfile removes an owned profile; freight records that
// referenced it keep existing without a profile.
func (e *Engine) DeleteCompanyProfile(ctx context.Context, id, owner int64) error {
	return e.mutate(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := profiles.NewSQLiteRepository(tx)

		p, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil || p.OwnerUserID != owner {
			return fmt.Errorf("company profile %d: %w", id, common.ErrorNotFound)
		}

		if err := freight.NewSQLiteRepository(tx).DetachProfile(ctx, id); err != nil {
			return err
		}
		_, err = repo.Delete(ctx, id, owner)
		return err
	})
}
