// Package drafts provides PostgreSQL-backed storage for expiring card drafts.
package drafts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cardcraft/internal/common"
	"github.com/dmitrijs2005/cardcraft/internal/dbx"
	"github.com/dmitrijs2005/cardcraft/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectDraft = `SELECT id, data, version, created_at, saved_at, expires_at FROM drafts
		WHERE id = $1 AND expires_at > $2`

// Get returns a draft that has not expired at now. Expired and unknown
// drafts both yield common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, id string, now time.Time) (*models.Draft, error) {
	d := &models.Draft{}
	var data []byte
	err := r.db.QueryRowContext(ctx, selectDraft, id, now).
		Scan(&d.ID, &data, &d.Version, &d.CreatedAt, &d.SavedAt, &d.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	d.Data = data
	return d, nil
}

// Save upserts draft in one statement. When a live row with the same id
// exists (expires_at after draft.SavedAt) its version is bumped and its
// creation time kept; otherwise the row starts over at version 1. The
// resulting Version and CreatedAt are written back into draft.
func (r *PostgresRepository) Save(ctx context.Context, draft *models.Draft) error {
	query := `
		INSERT INTO drafts (id, data, version, created_at, saved_at, expires_at)
		VALUES ($1, $2, 1, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET
			data = EXCLUDED.data,
			version = CASE WHEN drafts.expires_at > EXCLUDED.saved_at
				THEN drafts.version + 1 ELSE 1 END,
			created_at = CASE WHEN drafts.expires_at > EXCLUDED.saved_at
				THEN drafts.created_at ELSE EXCLUDED.created_at END,
			saved_at = EXCLUDED.saved_at,
			expires_at = EXCLUDED.expires_at
		RETURNING version, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		draft.ID, []byte(draft.Data), draft.CreatedAt, draft.SavedAt, draft.ExpiresAt).
		Scan(&draft.Version, &draft.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// DeleteExpired removes drafts whose expiry is at or before now and
// reports how many were removed.
func (r *PostgresRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM drafts WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
