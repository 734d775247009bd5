package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/cardcraft/internal/common"
	"github.com/dmitrijs2005/cardcraft/internal/dbx"
	"github.com/dmitrijs2005/cardcraft/internal/server/models"
	"github.com/dmitrijs2005/cardcraft/internal/server/repositories/repomanager"
)

const (
	// analyticsWindow is how many of the newest events a summary looks at.
	analyticsWindow = 100
	// recentViewsLimit is how many events a summary lists.
	recentViewsLimit = 20
)

// Analytics summarises the latest interactions with one card.
type Analytics struct {
	TotalViews  int64            `json:"totalViews"`
	RecentViews []*models.View   `json:"recentViews"`
	Countries   map[string]int64 `json:"countries"`
	Actions     map[string]int64 `json:"actions"`
	DailyViews  map[string]int64 `json:"dailyViews"`
}

type AnalyticsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAnalyticsService(db *sql.DB, repomanager repomanager.RepositoryManager) *AnalyticsService {
	return &AnalyticsService{db: db, repomanager: repomanager}
}

// Track records view, filling defaults for missing fields, and returns the
// card's event count including it.
func (s *AnalyticsService) Track(ctx context.Context, view *models.View) (int64, error) {
	if view.CardID == "" {
		return 0, fmt.Errorf("%w: card id required", common.ErrorValidation)
	}
	withDefaults(view)

	var total int64
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Views(tx)
		if err := repo.Add(ctx, view); err != nil {
			return err
		}
		n, err := repo.Count(ctx, view.CardID)
		if err != nil {
			return err
		}
		total = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("track view: %w", err)
	}
	return total, nil
}

func withDefaults(v *models.View) {
	if v.Action == "" {
		v.Action = models.ActionView
	}
	if v.Country == "" {
		v.Country = models.UnknownOrigin
	}
	if v.City == "" {
		v.City = models.UnknownOrigin
	}
	if v.Device == "" {
		v.Device = models.UnknownOrigin
	}
	if v.Referrer == "" {
		v.Referrer = models.DirectReferrer
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now().UTC()
	}
}

// Summary aggregates the newest events of cardID. Totals cover all events;
// the breakdowns cover the newest analyticsWindow of them.
func (s *AnalyticsService) Summary(ctx context.Context, cardID string) (*Analytics, error) {
	if cardID == "" {
		return nil, fmt.Errorf("%w: card id required", common.ErrorValidation)
	}
	repo := s.repomanager.Views(s.db)

	total, err := repo.Count(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("count views: %w", err)
	}

	events, err := repo.Recent(ctx, cardID, analyticsWindow)
	if err != nil {
		return nil, fmt.Errorf("recent views: %w", err)
	}

	return summarize(total, events), nil
}

// summarize expects events newest first.
func summarize(total int64, events []*models.View) *Analytics {
	a := &Analytics{
		TotalViews:  total,
		RecentViews: []*models.View{},
		Countries:   map[string]int64{},
		Actions:     map[string]int64{},
		DailyViews:  map[string]int64{},
	}
	for _, action := range models.TrackedActions {
		a.Actions[action] = 0
	}

	for _, v := range events {
		a.Countries[v.Country]++
		if _, ok := a.Actions[v.Action]; ok {
			a.Actions[v.Action]++
		}
		a.DailyViews[v.CreatedAt.UTC().Format("2006-01-02")]++
	}

	if len(events) > recentViewsLimit {
		events = events[:recentViewsLimit]
	}
	a.RecentViews = append(a.RecentViews, events...)

	return a
}
