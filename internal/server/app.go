// Package server initializes and runs the application server: it opens the
// database, applies migrations, selects the blob storage backend, and
// starts the HTTP endpoint with graceful shutdown.
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

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrijs2005/fragshare/internal/logging"
	"github.com/dmitrijs2005/fragshare/internal/server/config"
	"github.com/dmitrijs2005/fragshare/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/fragshare/internal/server/services"
	"github.com/dmitrijs2005/fragshare/internal/server/slug"
	"github.com/dmitrijs2005/fragshare/internal/server/storage"
	"github.com/dmitrijs2005/fragshare/internal/server/web"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	web    *web.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	blobs, err := storage.New(ctx, storage.Config{
		Type:           storage.Type(cfg.StorageType),
		LocalBasePath:  cfg.LocalStoragePath,
		S3Bucket:       cfg.S3Bucket,
		S3Region:       cfg.S3Region,
		S3AccessKey:    cfg.S3AccessKey,
		S3SecretKey:    cfg.S3SecretKey,
		S3BaseEndpoint: cfg.S3BaseEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	slugs := slug.NewRandGenerator()

	uploads := services.NewUploadService(db, rm, blobs, slugs, logger)
	links := services.NewLinkService(db, rm, blobs, slugs, logger)
	users := services.NewUserService(db, rm, cfg, logger)

	srv := web.NewServer(cfg.EndpointAddr, cfg.SecretKey, cfg.MaxUploadSize, uploads, links, users, logger)

	return &App{config: cfg, logger: logger, db: db, web: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startWebServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.web.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startWebServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err.Error())
	}
}
