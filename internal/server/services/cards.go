package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/cardcraft/internal/common"
	cm "github.com/dmitrijs2005/cardcraft/internal/models"
	sc "github.com/dmitrijs2005/cardcraft/internal/server/config"
	"github.com/dmitrijs2005/cardcraft/internal/server/models"
	"github.com/dmitrijs2005/cardcraft/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

var now = time.Now

// timeFormat renders timestamps the way browsers' Date.toISOString does.
const timeFormat = "2006-01-02T15:04:05.000Z07:00"

// cardIDLength is the length of generated public card ids.
const cardIDLength = 8

// bookkeepingKeys are owned by the server and stripped from stored card data.
var bookkeepingKeys = []string{"id", "createdAt", "updatedAt", "version", "draftId", "isDraft", "savedAt"}

type CardService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewCardService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config) *CardService {
	return &CardService{db: db, repomanager: repomanager, config: config}
}

// NewCardID returns an 8-character id cut from a random UUID.
func NewCardID() string {
	return uuid.NewString()[:cardIDLength]
}

// ShareURL is the public link for a stored card.
func (s *CardService) ShareURL(id string) string {
	return strings.TrimRight(s.config.BaseURL, "/") + "/c/" + id
}

// Save stores payload as a card. The id comes from payload's "id" field
// or is generated. Saving an existing id replaces its data but keeps its
// creation time and version.
func (s *CardService) Save(ctx context.Context, payload json.RawMessage) (*models.Card, error) {
	fields, err := decodeObject(payload)
	if err != nil {
		return nil, err
	}
	if err := checkCardFields(payload); err != nil {
		return nil, err
	}

	id, _ := fields["id"].(string)
	if id == "" {
		id = NewCardID()
	}

	data, err := stripBookkeeping(fields)
	if err != nil {
		return nil, err
	}

	card := &models.Card{ID: id, Data: data, UpdatedAt: now().UTC()}
	if err := s.repomanager.Cards(s.db).Save(ctx, card); err != nil {
		return nil, fmt.Errorf("save card: %w", err)
	}
	return card, nil
}

// Get returns the stored card or common.ErrorNotFound.
func (s *CardService) Get(ctx context.Context, id string) (*models.Card, error) {
	return s.repomanager.Cards(s.db).Get(ctx, id)
}

// Update replaces the data of an existing card and bumps its version. The
// new data must carry a fullName.
func (s *CardService) Update(ctx context.Context, id string, payload json.RawMessage) (*models.Card, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: card id required", common.ErrorValidation)
	}

	fields, err := decodeObject(payload)
	if err != nil {
		return nil, err
	}
	if name, _ := fields["fullName"].(string); name == "" {
		return nil, fmt.Errorf("%w: fullName required", common.ErrorValidation)
	}
	if err := checkCardFields(payload); err != nil {
		return nil, err
	}

	data, err := stripBookkeeping(fields)
	if err != nil {
		return nil, err
	}

	return s.repomanager.Cards(s.db).Update(ctx, id, data, now().UTC())
}

// CardData decodes the contact fields of a stored card.
func CardData(card *models.Card) (cm.CardData, error) {
	var data cm.CardData
	if err := json.Unmarshal(card.Data, &data); err != nil {
		return cm.CardData{}, fmt.Errorf("decode card %s: %w", card.ID, err)
	}
	return data, nil
}

// CardDocument merges the stored card data with its bookkeeping fields,
// the shape clients get back from get-card.
func CardDocument(card *models.Card) (map[string]any, error) {
	doc, err := decodeObject(card.Data)
	if err != nil {
		return nil, err
	}
	doc["id"] = card.ID
	doc["version"] = card.Version
	doc["createdAt"] = card.CreatedAt.UTC().Format(timeFormat)
	doc["updatedAt"] = card.UpdatedAt.UTC().Format(timeFormat)
	return doc, nil
}

// checkCardFields rejects payloads whose contact fields could not later be
// rendered into a pass.
func checkCardFields(payload json.RawMessage) error {
	var data cm.CardData
	if err := json.Unmarshal(payload, &data); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return nil
}

func decodeObject(raw json.RawMessage) (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: card data must be a JSON object", common.ErrorValidation)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: card data must be a JSON object", common.ErrorValidation)
	}
	return fields, nil
}

func stripBookkeeping(fields map[string]any) (json.RawMessage, error) {
	for _, k := range bookkeepingKeys {
		delete(fields, k)
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode card data: %w", err)
	}
	return b, nil
}
