// Package httpapi exposes the CardCraft HTTP API: wallet pass generation,
// card and draft storage, view tracking and share-link redirects.
package httpapi

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/cardcraft/internal/logging"
	cm "github.com/dmitrijs2005/cardcraft/internal/models"
	"github.com/dmitrijs2005/cardcraft/internal/pkpass"
	"github.com/dmitrijs2005/cardcraft/internal/server/models"
	"github.com/dmitrijs2005/cardcraft/internal/server/services"
)

type CardStore interface {
	Save(ctx context.Context, payload json.RawMessage) (*models.Card, error)
	Get(ctx context.Context, id string) (*models.Card, error)
	Update(ctx context.Context, id string, payload json.RawMessage) (*models.Card, error)
	ShareURL(id string) string
}

type DraftStore interface {
	Save(ctx context.Context, draftID string, payload json.RawMessage) (*models.Draft, error)
	Load(ctx context.Context, id string) (*models.Draft, error)
}

type ViewTracker interface {
	Track(ctx context.Context, view *models.View) (int64, error)
	Summary(ctx context.Context, cardID string) (*services.Analytics, error)
}

type PassGenerator interface {
	CardURL(url string) string
	Apple(card cm.CardData, url string) (*pkpass.Pass, error)
	Google(card cm.CardData, url string) (*services.GooglePass, error)
	VCard(card cm.CardData) string
	Archive(ctx context.Context, cardID string, pass *pkpass.Pass) (*services.ObjectLink, error)
}

// Handler serves the API routes. Build it with NewHandler and mount it with NewRouter.
type Handler struct {
	cards  CardStore
	drafts DraftStore
	views  ViewTracker
	passes PassGenerator
	logger logging.Logger
}

func NewHandler(cards CardStore, drafts DraftStore, views ViewTracker, passes PassGenerator, l logging.Logger) *Handler {
	return &Handler{
		cards:  cards,
		drafts: drafts,
		views:  views,
		passes: passes,
		logger: l.With("module", "http_api"),
	}
}
