package drafts

import (
	"context"
	"time"

	"github.com/dmitrijs2005/cardcraft/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, id string, now time.Time) (*models.Draft, error)
	Save(ctx context.Context, draft *models.Draft) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
