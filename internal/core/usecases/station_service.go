package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/samirrijal/oebbdash/internal/core/domain"
	"github.com/samirrijal/oebbdash/internal/core/itinerary"
	"github.com/samirrijal/oebbdash/internal/core/ports"
	"github.com/samirrijal/oebbdash/internal/pkg/metrics"
	"github.com/samirrijal/oebbdash/internal/pkg/telemetry"
)

const (
	minQueryLen    = 2
	maxQueryLen    = 200
	maxSuggestions = 15
)

// StationService powers the station autocomplete.
type StationService struct {
	locator ports.StationLocator
	cache   ports.CacheService
	results int
	ttl     time.Duration
}

// NewStationService creates a new StationService. results is the number of
// raw hits requested from the provider.
func NewStationService(locator ports.StationLocator, cache ports.CacheService, results int, ttl time.Duration) *StationService {
	if results <= 0 {
		results = 20
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &StationService{locator: locator, cache: cache, results: results, ttl: ttl}
}

// Search returns at most 15 stations or stops matching query, each tagged
// with its display type. Queries shorter than two characters yield nothing.
func (s *StationService) Search(ctx context.Context, query string) ([]domain.Station, error) {
	query = strings.TrimSpace(query)
	n := utf8.RuneCountInString(query)
	if n < minQueryLen {
		return []domain.Station{}, nil
	}
	if n > maxQueryLen {
		return nil, fmt.Errorf("%w: query longer than %d characters", domain.ErrInvalidQuery, maxQueryLen)
	}

	ctx, span := telemetry.Start(ctx, "station.search", telemetry.AttrQuery.String(query))
	defer span.End()

	cacheKey := "stations:search:" + strings.ToLower(query)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var stations []domain.Station
			if err := json.Unmarshal(data, &stations); err == nil {
				metrics.CacheHits.WithLabelValues("stations").Inc()
				return stations, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("stations").Inc()
	}

	start := time.Now()
	locs, err := s.locator.Locations(ctx, query, s.results)
	metrics.ObserveProvider("locations", start, err)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("search stations: %w", err)
	}

	stations := make([]domain.Station, 0, maxSuggestions)
	for _, loc := range locs {
		if !itinerary.IsStop(loc) {
			continue
		}
		stations = append(stations, itinerary.ClassifyStation(loc))
		if len(stations) == maxSuggestions {
			break
		}
	}

	if s.cache != nil {
		if data, err := json.Marshal(stations); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, int(s.ttl.Seconds()))
		}
	}

	return stations, nil
}
