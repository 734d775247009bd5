// Package server wires the CardCraft services together and runs the HTTP API
// and the gRPC health endpoint until the process is signalled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/cardcraft/internal/logging"
	"github.com/dmitrijs2005/cardcraft/internal/server/config"
	"github.com/dmitrijs2005/cardcraft/internal/server/httpapi"
	"github.com/dmitrijs2005/cardcraft/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/cardcraft/internal/server/services"

	gs "github.com/dmitrijs2005/cardcraft/internal/server/grpc"
)

const (
	draftPurgeInterval = time.Hour
	healthInterval     = 15 * time.Second
)

type draftPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	cards     *services.CardService
	drafts    *services.DraftService
	analytics *services.AnalyticsService
	passes    *services.PassService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	db, err := repomanager.OpenDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migrations error: %w", err)
	}

	ps, err := services.NewPassServiceFromConfig(c)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if !ps.StorageConfigured() {
		logger.Warn(ctx, "object storage not configured, pass links disabled")
	}

	return &App{
		config:    c,
		logger:    logger,
		db:        db,
		cards:     services.NewCardService(db, rm, c),
		drafts:    services.NewDraftService(db, rm, c),
		analytics: services.NewAnalyticsService(db, rm),
		passes:    ps,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	h := httpapi.NewHandler(app.cards, app.drafts, app.analytics, app.passes, app.logger)
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, httpapi.NewRouter(h), app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewHealthServer(app.config.EndpointAddrGRPC, app.logger)
	go s.Probe(ctx, healthInterval, app.db.PingContext)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// purgeDrafts deletes expired drafts every interval until ctx is done.
func purgeDrafts(ctx context.Context, p draftPurger, interval time.Duration, l logging.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.PurgeExpired(ctx)
			if err != nil {
				l.Error(ctx, "purge expired drafts", "error", err)
				continue
			}
			if n > 0 {
				l.Info(ctx, "purged expired drafts", "count", n)
			}
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		purgeDrafts(ctx, app.drafts, draftPurgeInterval, app.logger)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "close db", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
