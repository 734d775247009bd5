package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/cardcraft/internal/common"
	"github.com/dmitrijs2005/cardcraft/internal/dbx"
	sc "github.com/dmitrijs2005/cardcraft/internal/server/config"
	"github.com/dmitrijs2005/cardcraft/internal/server/models"
	"github.com/dmitrijs2005/cardcraft/internal/server/repositories/cards"
	"github.com/dmitrijs2005/cardcraft/internal/server/repositories/drafts"
	"github.com/dmitrijs2005/cardcraft/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/cardcraft/internal/server/repositories/views"
)

// -------- test fakes --------

type fakeCardsRepo struct {
	cards.Repository
	stored  map[string]*models.Card
	saveErr error
}

func newFakeCards() *fakeCardsRepo {
	return &fakeCardsRepo{stored: map[string]*models.Card{}}
}

func (f *fakeCardsRepo) Save(ctx context.Context, c *models.Card) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if prev, ok := f.stored[c.ID]; ok {
		c.Version = prev.Version
		c.CreatedAt = prev.CreatedAt
	} else {
		c.Version = 1
		c.CreatedAt = c.UpdatedAt
	}
	cp := *c
	f.stored[c.ID] = &cp
	return nil
}

func (f *fakeCardsRepo) Get(ctx context.Context, id string) (*models.Card, error) {
	c, ok := f.stored[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCardsRepo) Update(ctx context.Context, id string, data json.RawMessage, at time.Time) (*models.Card, error) {
	c, ok := f.stored[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c.Data = data
	c.Version++
	c.UpdatedAt = at
	cp := *c
	return &cp, nil
}

type fakeDraftsRepo struct {
	drafts.Repository
	stored  map[string]*models.Draft
	getErr  error
	saveErr error
	boundTo []dbx.DBTX
	purged  int64
}

func newFakeDrafts() *fakeDraftsRepo {
	return &fakeDraftsRepo{stored: map[string]*models.Draft{}}
}

func (f *fakeDraftsRepo) Get(ctx context.Context, id string, at time.Time) (*models.Draft, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	d, ok := f.stored[id]
	if !ok || d.Expired(at) {
		return nil, common.ErrorNotFound
	}
	cp := *d
	return &cp, nil
}

// Save mirrors the upsert: a live row keeps its creation time and gets the
// next version, anything else starts at version 1.
func (f *fakeDraftsRepo) Save(ctx context.Context, d *models.Draft) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	d.Version = 1
	if prev, ok := f.stored[d.ID]; ok && !prev.Expired(d.SavedAt) {
		d.Version = prev.Version + 1
		d.CreatedAt = prev.CreatedAt
	}
	cp := *d
	f.stored[d.ID] = &cp
	return nil
}

func (f *fakeDraftsRepo) DeleteExpired(ctx context.Context, at time.Time) (int64, error) {
	var n int64
	for id, d := range f.stored {
		if d.Expired(at) {
			delete(f.stored, id)
			n++
		}
	}
	f.purged += n
	return n, nil
}

type fakeViewsRepo struct {
	views.Repository
	added    []*models.View
	addErr   error
	countErr error
	recent   []*models.View
	limit    int
}

func (f *fakeViewsRepo) Add(ctx context.Context, v *models.View) error {
	if f.addErr != nil {
		return f.addErr
	}
	v.ID = int64(len(f.added) + 1)
	f.added = append(f.added, v)
	return nil
}

func (f *fakeViewsRepo) Count(ctx context.Context, cardID string) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return int64(len(f.added)), nil
}

func (f *fakeViewsRepo) Recent(ctx context.Context, cardID string, limit int) ([]*models.View, error) {
	f.limit = limit
	return f.recent, nil
}

type fakeRepoManager struct {
	repomanager.RepositoryManager
	c *fakeCardsRepo
	d *fakeDraftsRepo
	v *fakeViewsRepo
}

func (m *fakeRepoManager) Cards(db dbx.DBTX) cards.Repository { return m.c }
func (m *fakeRepoManager) Drafts(db dbx.DBTX) drafts.Repository {
	m.d.boundTo = append(m.d.boundTo, db)
	return m.d
}
func (m *fakeRepoManager) Views(db dbx.DBTX) views.Repository { return m.v }

// -------- helpers --------

// expectTx registers one transaction that commits or rolls back.
func expectTx(mock sqlmock.Sqlmock, commit bool) {
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testConfig() *sc.Config {
	cfg := &sc.Config{}
	cfg.LoadDefaults()
	cfg.BaseURL = "https://cards.example"
	cfg.S3Bucket = "passes"
	cfg.S3BaseEndpoint = "http://127.0.0.1:9000"
	return cfg
}

var fixedNow = time.Date(2025, 4, 5, 6, 7, 8, 0, time.UTC)

func fixNow(t *testing.T, at time.Time) {
	t.Helper()
	orig := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = orig })
}
