package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/cardcraft/internal/common"
	"github.com/dmitrijs2005/cardcraft/internal/logging"
	cm "github.com/dmitrijs2005/cardcraft/internal/models"
	"github.com/dmitrijs2005/cardcraft/internal/pkpass"
	sc "github.com/dmitrijs2005/cardcraft/internal/server/config"
	"github.com/dmitrijs2005/cardcraft/internal/server/models"
	"github.com/dmitrijs2005/cardcraft/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var stamp = time.Date(2025, 4, 5, 6, 7, 8, 0, time.UTC)

// -------- fakes --------

type fakeCards struct {
	cards  map[string]*models.Card
	err    error
	nextID string
}

func (f *fakeCards) Save(ctx context.Context, payload json.RawMessage) (*models.Card, error) {
	if f.err != nil {
		return nil, f.err
	}
	var probe map[string]any
	if json.Unmarshal(payload, &probe) != nil {
		return nil, common.ErrorValidation
	}
	id, _ := probe["id"].(string)
	if id == "" {
		id = f.nextID
	}
	c := &models.Card{ID: id, Data: payload, Version: 1, CreatedAt: stamp, UpdatedAt: stamp}
	f.cards[id] = c
	return c, nil
}

func (f *fakeCards) Get(ctx context.Context, id string) (*models.Card, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.cards[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return c, nil
}

func (f *fakeCards) Update(ctx context.Context, id string, payload json.RawMessage) (*models.Card, error) {
	if f.err != nil {
		return nil, f.err
	}
	var probe struct {
		FullName string `json:"fullName"`
	}
	_ = json.Unmarshal(payload, &probe)
	if probe.FullName == "" {
		return nil, common.ErrorValidation
	}
	c, ok := f.cards[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c.Data = payload
	c.Version++
	c.UpdatedAt = stamp.Add(time.Hour)
	return c, nil
}

func (f *fakeCards) ShareURL(id string) string { return "https://cards.example/c/" + id }

type fakeDrafts struct {
	drafts map[string]*models.Draft
	err    error
}

func (f *fakeDrafts) Save(ctx context.Context, id string, payload json.RawMessage) (*models.Draft, error) {
	if f.err != nil {
		return nil, f.err
	}
	if id == "" {
		id = "draft_NEW23456"
	}
	d := &models.Draft{ID: id, Data: payload, Version: 1, CreatedAt: stamp, SavedAt: stamp, ExpiresAt: stamp.Add(time.Hour)}
	if prev, ok := f.drafts[id]; ok {
		d.Version = prev.Version + 1
	}
	f.drafts[id] = d
	return d, nil
}

func (f *fakeDrafts) Load(ctx context.Context, id string) (*models.Draft, error) {
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.drafts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return d, nil
}

type fakeViews struct {
	tracked []*models.View
	err     error
	summary *services.Analytics
}

func (f *fakeViews) Track(ctx context.Context, v *models.View) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.tracked = append(f.tracked, v)
	return int64(len(f.tracked)), nil
}

func (f *fakeViews) Summary(ctx context.Context, id string) (*services.Analytics, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.summary, nil
}

// fakePasses generates real passes but keeps archives in memory.
type fakePasses struct {
	*services.PassService
	archived   map[string][]byte
	archiveErr error
	appleErr   error
}

func (f *fakePasses) Apple(card cm.CardData, url string) (*pkpass.Pass, error) {
	if f.appleErr != nil {
		return nil, f.appleErr
	}
	return f.PassService.Apple(card, url)
}

func (f *fakePasses) Archive(ctx context.Context, cardID string, p *pkpass.Pass) (*services.ObjectLink, error) {
	if f.archiveErr != nil {
		return nil, f.archiveErr
	}
	f.archived[cardID] = p.Data
	return &services.ObjectLink{Key: cardID, URL: "https://s3.example/" + cardID + "?sig", ExpiresIn: 15 * time.Minute}, nil
}

// -------- helpers --------

type fixture struct {
	router *gin.Engine
	cards  *fakeCards
	drafts *fakeDrafts
	views  *fakeViews
	passes *fakePasses
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := &sc.Config{}
	cfg.LoadDefaults()
	cfg.BaseURL = "https://cards.example"

	ps, err := services.NewPassServiceFromConfig(cfg)
	require.NoError(t, err)

	f := &fixture{
		cards:  &fakeCards{cards: map[string]*models.Card{}, nextID: "gen12345"},
		drafts: &fakeDrafts{drafts: map[string]*models.Draft{}},
		views:  &fakeViews{},
		passes: &fakePasses{PassService: ps, archived: map[string][]byte{}},
	}
	f.router = NewRouter(NewHandler(f.cards, f.drafts, f.views, f.passes, logging.Nop{}))
	return f
}

func (f *fixture) storeCard(id, data string) {
	f.cards.cards[id] = &models.Card{ID: id, Data: json.RawMessage(data), Version: 1, CreatedAt: stamp, UpdatedAt: stamp}
}

func (f *fixture) do(method, target string, body any, headers ...string) *httptest.ResponseRecorder {
	var rd *bytes.Reader
	switch b := body.(type) {
	case nil:
		rd = bytes.NewReader(nil)
	case string:
		rd = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

var errBoom = errors.New("boom")
