package profiles

import (
	"context"

	"github.com/dmitrijs2005/freightdesk/internal/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.CompanyProfile) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.CompanyProfile, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.CompanyProfile, error)
	GetDefault(ctx context.Context, ownerID int64) (*models.CompanyProfile, error)
	Update(ctx context.Context, id int64, p *models.CompanyProfile) (int64, error)
	Delete(ctx context.Context, id, ownerID int64) (int64, error)
	ClearDefault(ctx context.Context, ownerID, exceptID int64) error
}
