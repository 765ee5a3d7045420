package history

import (
	"context"
	"time"

	"github.com/dmitrijs2005/freightdesk/internal/models"
)

type Repository interface {
	Create(ctx context.Context, freightID int64, docType models.DocumentType, at time.Time) (int64, error)
	ListByFreight(ctx context.Context, freightID int64) ([]models.DocumentGenerationRecord, error)
	DeleteByFreight(ctx context.Context, freightID int64) (int64, error)
}
