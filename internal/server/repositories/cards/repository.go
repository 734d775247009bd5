package cards

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/cardcraft/internal/server/models"
)

type Repository interface {
	Save(ctx context.Context, card *models.Card) error
	Get(ctx context.Context, id string) (*models.Card, error)
	Update(ctx context.Context, id string, data json.RawMessage, updatedAt time.Time) (*models.Card, error)
}
