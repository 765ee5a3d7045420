package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/freightdesk/internal/models"
)

type Repository interface {
	Create(ctx context.Context, username, passwordHash string, createdAt time.Time) (int64, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Count(ctx context.Context) (int, error)
}
