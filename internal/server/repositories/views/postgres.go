// Package views provides PostgreSQL-backed storage for card interaction events.
package views

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cardcraft/internal/dbx"
	"github.com/dmitrijs2005/cardcraft/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Add records view and fills in its generated id.
func (r *PostgresRepository) Add(ctx context.Context, view *models.View) error {
	query := `
		INSERT INTO views (card_id, action, country, city, device, referrer, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		view.CardID, view.Action, view.Country, view.City, view.Device, view.Referrer, view.CreatedAt).
		Scan(&view.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Count returns the number of recorded events for cardID.
func (r *PostgresRepository) Count(ctx context.Context, cardID string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM views WHERE card_id = $1`, cardID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// Recent returns up to limit events for cardID, newest first.
func (r *PostgresRepository) Recent(ctx context.Context, cardID string, limit int) ([]*models.View, error) {
	query := `
		SELECT id, card_id, action, country, city, device, referrer, created_at FROM views
		WHERE card_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, cardID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select views: %w", err)
	}
	defer rows.Close()

	var result []*models.View
	for rows.Next() {
		var v models.View
		if err := rows.Scan(&v.ID, &v.CardID, &v.Action, &v.Country, &v.City, &v.Device, &v.Referrer, &v.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
