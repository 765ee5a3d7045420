package freight

import (
	"context"

	"github.com/dmitrijs2005/freightdesk/internal/models"
)

type Repository interface {
	Create(ctx context.Context, r *models.FreightRecord) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.FreightRecord, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.FreightRecord, error)
	Update(ctx context.Context, id int64, r *models.FreightRecord) (int64, error)
	Delete(ctx context.Context, id, ownerID int64) (int64, error)
	DetachProfile(ctx context.Context, profileID int64) error
}
