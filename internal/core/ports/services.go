package ports

import (
	"context"
	"time"

	"github.com/samirrijal/oebbdash/internal/core/domain"
)

// JourneyFetcher queries the routing provider for journeys between two
// stations.
type JourneyFetcher interface {
	Journeys(ctx context.Context, from, to string, departure time.Time, results int) ([]domain.RawJourney, error)
}

// StationLocator resolves free-text station queries.
type StationLocator interface {
	Locations(ctx context.Context, query string, results int) ([]domain.RawLocation, error)
}

// AlertFeed reads the traffic-alert feed.
type AlertFeed interface {
	Alerts(ctx context.Context) ([]domain.TrafficAlert, error)
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishBoardSnapshot(ctx context.Context, snap *domain.BoardSnapshot) error
	PublishFetchFailure(ctx context.Context, conn domain.SavedConnection, reason string) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// EventSubscriber consumes domain events from a message broker.
type EventSubscriber interface {
	SubscribeBoardSnapshots(ctx context.Context, durable string, handler func(ctx context.Context, snap *domain.BoardSnapshot) error) error
}
