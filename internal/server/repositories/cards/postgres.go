// Package cards provides PostgreSQL-backed storage for published cards.
package cards

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cardcraft/internal/common"
	"github.com/dmitrijs2005/cardcraft/internal/dbx"
	"github.com/dmitrijs2005/cardcraft/internal/server/models"
)

// PostgresRepository implements card storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Save upserts card by ID. A new row starts at version 1 with created_at =
// updated_at = card.UpdatedAt; an existing row keeps its created_at and
// version and only takes the new data and timestamp. The stored bookkeeping
// columns are written back into card.
func (r *PostgresRepository) Save(ctx context.Context, card *models.Card) error {
	query := `
		INSERT INTO cards (id, data, version, created_at, updated_at)
		VALUES ($1, $2, 1, $3, $3)
		ON CONFLICT (id)
		DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at
		RETURNING version, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, card.ID, []byte(card.Data), card.UpdatedAt).
		Scan(&card.Version, &card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Get returns the card with the given id or common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Card, error) {
	query := `SELECT id, data, version, created_at, updated_at FROM cards WHERE id = $1`

	card := &models.Card{}
	var data []byte
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&card.ID, &data, &card.Version, &card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	card.Data = data

	return card, nil
}

// Update replaces the data of an existing card and bumps its version.
// Unknown ids yield common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, id string, data json.RawMessage, updatedAt time.Time) (*models.Card, error) {
	query := `
		UPDATE cards SET data = $2, version = version + 1, updated_at = $3
		WHERE id = $1
		RETURNING id, data, version, created_at, updated_at
	`

	card := &models.Card{}
	var stored []byte
	err := r.db.QueryRowContext(ctx, query, id, []byte(data), updatedAt).
		Scan(&card.ID, &stored, &card.Version, &card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	card.Data = stored

	return card, nil
}
