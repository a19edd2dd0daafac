package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/samirrijal/oebbdash/internal/core/domain"
	"github.com/samirrijal/oebbdash/internal/core/itinerary"
	"github.com/samirrijal/oebbdash/internal/core/ports"
	"github.com/samirrijal/oebbdash/internal/core/presentation"
	"github.com/samirrijal/oebbdash/internal/pkg/metrics"
	"github.com/samirrijal/oebbdash/internal/pkg/telemetry"
	"go.opentelemetry.io/otel/codes"
)

// UpstreamError is returned when the provider could not serve a connection
// query. FallbackURL opens the same query in the provider's web view.
type UpstreamError struct {
	FallbackURL string
	Err         error
}

func (e *UpstreamError) Error() string { return e.Err.Error() }
func (e *UpstreamError) Unwrap() error { return e.Err }

// ItineraryOptions tunes an ItineraryService.
type ItineraryOptions struct {
	Results  int
	CacheTTL time.Duration
	WebURL   string
}

// ItineraryService answers connection queries between two stations.
type ItineraryService struct {
	fetcher ports.JourneyFetcher
	cache   ports.CacheService
	opts    ItineraryOptions
	now     func() time.Time
}

// NewItineraryService creates a new ItineraryService.
func NewItineraryService(fetcher ports.JourneyFetcher, cache ports.CacheService, opts ItineraryOptions) *ItineraryService {
	if opts.Results <= 0 {
		opts.Results = 5
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 30 * time.Second
	}
	return &ItineraryService{fetcher: fetcher, cache: cache, opts: opts, now: time.Now}
}

// FallbackURL is the provider web view for a station pair.
func (s *ItineraryService) FallbackURL(from, to string, when time.Time) string {
	return presentation.DeepLink(s.opts.WebURL, from, to, when)
}

// PlanConnections returns normalized itineraries from one station to another
// departing around when. A zero when means now.
func (s *ItineraryService) PlanConnections(ctx context.Context, from, to string, when time.Time) ([]domain.Itinerary, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" || to == "" {
		return nil, fmt.Errorf("%w: both stations are required", domain.ErrInvalidQuery)
	}
	if when.IsZero() {
		when = s.now()
	}
	when = when.Truncate(time.Minute)

	ctx, span := telemetry.Start(ctx, "itinerary.plan",
		telemetry.AttrFromStation.String(from),
		telemetry.AttrToStation.String(to),
	)
	defer span.End()

	cacheKey := fmt.Sprintf("journeys:%s:%s:%d", from, to, when.Unix())
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var its []domain.Itinerary
			if err := json.Unmarshal(data, &its); err == nil {
				metrics.CacheHits.WithLabelValues("journeys").Inc()
				span.SetAttributes(telemetry.AttrCacheHit.Bool(true))
				return its, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("journeys").Inc()
	}

	start := time.Now()
	raw, err := s.fetcher.Journeys(ctx, from, to, when, s.opts.Results)
	metrics.ObserveProvider("journeys", start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider failed")
		slog.WarnContext(ctx, "journey query failed", "from", from, "to", to, "error", err)
		if !errors.Is(err, domain.ErrUpstream) {
			err = fmt.Errorf("%w: %w", domain.ErrUpstream, err)
		}
		return nil, &UpstreamError{FallbackURL: s.FallbackURL(from, to, when), Err: err}
	}

	its, stats := itinerary.Normalize(raw)
	record(its, stats)
	span.SetAttributes(telemetry.AttrItineraries.Int(len(its)))

	if s.cache != nil {
		if data, err := json.Marshal(its); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, int(s.opts.CacheTTL.Seconds()))
		}
	}

	return its, nil
}

func record(its []domain.Itinerary, stats itinerary.Stats) {
	metrics.ItinerariesBuilt.Add(float64(len(its)))
	metrics.LegsDropped.Add(float64(stats.SkippedLegs))
	metrics.JourneysDropped.Add(float64(stats.SkippedJourneys))
	for _, it := range its {
		for _, seg := range it.Segments {
			metrics.SegmentsByType.WithLabelValues(string(seg.Category.Type)).Inc()
		}
	}
}
