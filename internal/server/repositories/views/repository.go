package views

import (
	"context"

	"github.com/dmitrijs2005/cardcraft/internal/server/models"
)

type Repository interface {
	Add(ctx context.Context, view *models.View) error
	Count(ctx context.Context, cardID string) (int64, error)
	Recent(ctx context.Context, cardID string, limit int) ([]*models.View, error)
}
