package main

import (
	"context"
	"log"
	"log/slog"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/samirrijal/oebbdash/internal/adapters/hafas"
	natsadapter "github.com/samirrijal/oebbdash/internal/adapters/nats"
	"github.com/samirrijal/oebbdash/internal/adapters/postgres"
	"github.com/samirrijal/oebbdash/internal/adapters/valkey"
	"github.com/samirrijal/oebbdash/internal/core/ports"
	"github.com/samirrijal/oebbdash/internal/core/usecases"
	"github.com/samirrijal/oebbdash/internal/pkg/config"
	"github.com/samirrijal/oebbdash/internal/pkg/logging"
	"github.com/samirrijal/oebbdash/internal/pkg/telemetry"
	"github.com/samirrijal/oebbdash/internal/workflows"
)

func main() {
	cfg, err := config.Load("oebbdash-refresher")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.Setup("oebbdash-refresher", cfg.Log.Level, cfg.Log.Format)

	ctx := context.Background()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.CollectorAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer func() { _ = shutdown(context.Background()) }()
		}
	}

	db, err := postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Sharing the journey cache with the API lets dashboards opened right
	// after a refresh skip the provider.
	var cache ports.CacheService
	if vc, err := valkey.New(cfg.Valkey.Addr); err != nil {
		slog.Warn("valkey unavailable, running without cache", "error", err)
	} else {
		defer vc.Close()
		cache = vc
	}

	nc, err := natsadapter.Connect(cfg.NATS.URL, "oebbdash-refresher")
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	publisher, err := natsadapter.NewPublisher(nc, cfg.NATS.Stream)
	if err != nil {
		log.Fatalf("nats publisher: %v", err)
	}
	defer publisher.Close()

	provider := hafas.New(cfg.Provider.BaseURL, cfg.Provider.Timeout)
	connRepo := postgres.NewConnectionRepo(db)
	planner := usecases.NewItineraryService(provider, cache, usecases.ItineraryOptions{
		Results:  cfg.Provider.JourneyResults,
		CacheTTL: cfg.Dashboard.JourneyCacheTTL,
		WebURL:   cfg.Provider.WebURL,
	})
	dashboard := usecases.NewDashboardService(connRepo, planner, publisher, cfg.Dashboard.Concurrency)

	c, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})
	w.RegisterWorkflow(workflows.RefreshWorkflow)
	w.RegisterActivity(&workflows.RefreshActivities{
		Connections: connRepo,
		Dashboard:   dashboard,
	})

	// Joins the running refresh loop if one already exists.
	run, err := c.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        workflows.RefreshWorkflowID,
		TaskQueue: cfg.Temporal.TaskQueue,
	}, workflows.RefreshWorkflow, workflows.RefreshInput{Interval: cfg.Dashboard.RefreshInterval})
	if err != nil {
		log.Fatalf("start refresh workflow: %v", err)
	}
	slog.Info("refresh workflow running", "workflow_id", run.GetID(), "run_id", run.GetRunID(),
		"interval", cfg.Dashboard.RefreshInterval)

	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker: %v", err)
	}
}
