package http

import (
	"context"

	"github.com/nats-io/nats.go"
	"github.com/samirrijal/oebbdash/internal/core/usecases"
)

// Pinger is a backing service the readiness check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Itineraries *usecases.ItineraryService
	Stations    *usecases.StationService
	Connections *usecases.ConnectionService
	Dashboard   *usecases.DashboardService
	Alerts      *usecases.AlertService

	NATS     *nats.Conn
	DB       Pinger
	Cache    Pinger
	Provider Pinger
}
