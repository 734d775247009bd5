package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/cardcraft/internal/common"
	sc "github.com/dmitrijs2005/cardcraft/internal/server/config"
	"github.com/dmitrijs2005/cardcraft/internal/server/models"
	"github.com/dmitrijs2005/cardcraft/internal/server/repositories/repomanager"
)

const draftIDLength = 8

type DraftService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewDraftService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config) *DraftService {
	return &DraftService{db: db, repomanager: repomanager, config: config}
}

// NewDraftID returns "draft_" followed by 8 characters from an alphabet
// without look-alike glyphs.
func NewDraftID() (string, error) {
	suffix, err := common.RandomString(common.DraftIDAlphabet, draftIDLength)
	if err != nil {
		return "", err
	}
	return models.DraftIDPrefix + suffix, nil
}

// Save stores payload under draftID, or under a fresh id when draftID is
// empty. Re-saving a live draft bumps its version and keeps its creation
// time; every save pushes the expiry out by the configured TTL. The version
// is decided by the store in the same statement that writes the row, so
// concurrent saves of one draft each get their own version.
func (s *DraftService) Save(ctx context.Context, draftID string, payload json.RawMessage) (*models.Draft, error) {
	fields, err := decodeObject(payload)
	if err != nil {
		return nil, err
	}
	data, err := stripBookkeeping(fields)
	if err != nil {
		return nil, err
	}

	id := draftID
	if id == "" {
		if id, err = NewDraftID(); err != nil {
			return nil, fmt.Errorf("generate draft id: %w", err)
		}
	}

	ts := now().UTC()
	draft := &models.Draft{
		ID:        id,
		Data:      data,
		CreatedAt: ts,
		SavedAt:   ts,
		ExpiresAt: ts.Add(s.config.DraftTTL),
	}

	if err := s.repomanager.Drafts(s.db).Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}

	return draft, nil
}

// Load returns a live draft; expired drafts are reported as common.ErrorNotFound.
func (s *DraftService) Load(ctx context.Context, id string) (*models.Draft, error) {
	return s.repomanager.Drafts(s.db).Get(ctx, id, now().UTC())
}

// PurgeExpired deletes drafts past their expiry.
func (s *DraftService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.repomanager.Drafts(s.db).DeleteExpired(ctx, now().UTC())
}

// DraftDocument merges the draft data with its bookkeeping fields.
func DraftDocument(d *models.Draft) (map[string]any, error) {
	doc, err := decodeObject(d.Data)
	if err != nil {
		return nil, err
	}
	doc["draftId"] = d.ID
	doc["isDraft"] = true
	doc["version"] = d.Version
	doc["createdAt"] = d.CreatedAt.UTC().Format(timeFormat)
	doc["savedAt"] = d.SavedAt.UTC().Format(timeFormat)
	doc["expiresAt"] = d.ExpiresAt.UTC().Format(timeFormat)
	return doc, nil
}
