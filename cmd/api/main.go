package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/oebbdash/internal/adapters/hafas"
	"github.com/samirrijal/oebbdash/internal/adapters/http"
	natsadapter "github.com/samirrijal/oebbdash/internal/adapters/nats"
	"github.com/samirrijal/oebbdash/internal/adapters/postgres"
	"github.com/samirrijal/oebbdash/internal/adapters/rss"
	"github.com/samirrijal/oebbdash/internal/adapters/valkey"
	"github.com/samirrijal/oebbdash/internal/core/ports"
	"github.com/samirrijal/oebbdash/internal/core/usecases"
	"github.com/samirrijal/oebbdash/internal/pkg/config"
	"github.com/samirrijal/oebbdash/internal/pkg/logging"
	"github.com/samirrijal/oebbdash/internal/pkg/metrics"
	"github.com/samirrijal/oebbdash/internal/pkg/telemetry"
)

// snapshotTTL keeps the last refresher result around for a few refresh
// rounds.
const snapshotTTL = 10 * time.Minute

func main() {
	cfg, err := config.Load("oebbdash-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup("oebbdash-api", cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.CollectorAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer func() { _ = shutdown(context.Background()) }()
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	go reportPoolStats(ctx, db)

	deps := &http.Dependencies{DB: db}

	// Cache (optional: every use case works without it)
	var cache ports.CacheService
	if vc, err := valkey.New(cfg.Valkey.Addr); err != nil {
		slog.Warn("valkey unavailable, running without cache", "error", err)
	} else {
		defer vc.Close()
		cache = vc
		deps.Cache = vc
	}

	// Providers
	provider := hafas.New(cfg.Provider.BaseURL, cfg.Provider.Timeout)
	deps.Provider = provider
	feed := rss.New(cfg.Alerts.FeedURL, cfg.Provider.Timeout)

	// Use cases
	connRepo := postgres.NewConnectionRepo(db)
	deps.Itineraries = usecases.NewItineraryService(provider, cache, usecases.ItineraryOptions{
		Results:  cfg.Provider.JourneyResults,
		CacheTTL: cfg.Dashboard.JourneyCacheTTL,
		WebURL:   cfg.Provider.WebURL,
	})
	deps.Stations = usecases.NewStationService(provider, cache, cfg.Provider.StationResults, cfg.Dashboard.StationCacheTTL)
	deps.Connections = usecases.NewConnectionService(connRepo)
	deps.Alerts = usecases.NewAlertService(feed, cache, cfg.Alerts.Limit, cfg.Alerts.CacheTTL)

	// NATS: on-demand refreshes publish snapshots, and snapshots published by
	// the refresher are kept for ?cached=true.
	var publisher ports.EventPublisher
	nc, err := natsadapter.Connect(cfg.NATS.URL, "oebbdash-api")
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer nc.Drain()
		deps.NATS = nc
		if pub, err := natsadapter.NewPublisher(nc, cfg.NATS.Stream); err != nil {
			slog.Warn("nats publisher unavailable", "error", err)
		} else {
			publisher = pub
		}
	}

	deps.Dashboard = usecases.NewDashboardService(connRepo, deps.Itineraries, publisher, cfg.Dashboard.Concurrency)
	if cache != nil {
		deps.Dashboard.WithSnapshotStore(cache, snapshotTTL)
	}

	if nc != nil && cache != nil {
		sub, err := natsadapter.NewSubscriber(nc, cfg.NATS.Stream)
		if err != nil {
			slog.Warn("nats subscriber unavailable", "error", err)
		} else {
			defer sub.Close()
			if err := sub.SubscribeBoardSnapshots(ctx, "oebbdash-api-snapshots", deps.Dashboard.StoreSnapshot); err != nil {
				slog.Warn("snapshot subscription failed", "error", err)
			}
		}
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    64 * 1024,
		AppName:      "ÖBB Dashboard API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, If-None-Match",
		MaxAge:       3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}

// reportPoolStats exports pgx pool gauges until ctx is done.
func reportPoolStats(ctx context.Context, db *postgres.DB) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.UpdateDBPoolMetrics(db.Stat())
		}
	}
}
