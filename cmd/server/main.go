package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"trending-api/internal/auth"
	"trending-api/internal/cache"
	"trending-api/internal/categories"
	"trending-api/internal/config"
	"trending-api/internal/database"
	"trending-api/internal/handlers"
	"trending-api/internal/logging"
	"trending-api/internal/ranking"
	"trending-api/internal/realtime"
	"trending-api/internal/routes"
	"trending-api/internal/supervisor"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	gin.SetMode(cfg.Server.Mode)
	auth.Configure(cfg.Security)

	if err := database.InitDB(cfg.Database); err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close database")
		}
	}()
	db := database.GetDB()

	appCache := cache.New[any](cache.Options{
		Name:       "app",
		MaxEntries: cfg.Cache.MaxEntries,
	})

	categoryService := categories.NewService(db, appCache)
	if cfg.Database.SeedCategories {
		if _, err := categoryService.SeedDefaults(context.Background()); err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed categories")
		}
	}

	h := &handlers.Handler{
		Ranking: ranking.NewService(db, appCache, ranking.Options{
			QueryTimeout:    cfg.Ranking.QueryTimeout,
			BreakerFailures: cfg.Ranking.BreakerFailures,
			BreakerTimeout:  cfg.Ranking.BreakerTimeout,
		}),
		Categories: categoryService,
		Cache:      appCache,
		Hub:        realtime.NewHub(),
		Security:   cfg.Security,
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           routes.SetupRoutes(h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(supervisor.NewHTTPService(server, cfg.Server.ShutdownTimeout))
	tree.AddMaintenanceService(supervisor.NewSweeperService(appCache.Name(), appCache, cfg.Cache.SweepInterval))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().
		Str("addr", server.Addr).
		Int("cache_max_entries", cfg.Cache.MaxEntries).
		Dur("sweep_interval", cfg.Cache.SweepInterval).
		Msg("Server starting")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor stopped with error")
	}
	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		logging.Warn().Int("services", len(report)).Msg("Some services did not stop in time")
	}
	logging.Info().Msg("Server stopped")
}
