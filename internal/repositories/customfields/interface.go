package customfields

import (
	"context"

	"github.com/dmitrijs2005/freightdesk/internal/models"
)

type Repository interface {
	Create(ctx context.Context, f *models.CustomFieldDefinition) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.CustomFieldDefinition, error)
	ListByOwner(ctx context.Context, ownerID int64, includeInactive bool) ([]models.CustomFieldDefinition, error)
	Update(ctx context.Context, id int64, f *models.CustomFieldDefinition) (int64, error)
	Deactivate(ctx context.Context, id, ownerID int64) (int64, error)
}
