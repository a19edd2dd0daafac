package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/samirrijal/oebbdash/internal/core/domain"
	"github.com/samirrijal/oebbdash/internal/core/ports"
	"github.com/samirrijal/oebbdash/internal/pkg/metrics"
)

const alertsCacheKey = "alerts:feed"

// AlertService serves the latest traffic alerts.
type AlertService struct {
	feed  ports.AlertFeed
	cache ports.CacheService
	limit int
	ttl   time.Duration
}

// NewAlertService creates a new AlertService.
func NewAlertService(feed ports.AlertFeed, cache ports.CacheService, limit int, ttl time.Duration) *AlertService {
	if limit <= 0 {
		limit = 5
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AlertService{feed: feed, cache: cache, limit: limit, ttl: ttl}
}

// Latest returns the first alerts of the feed in feed order.
func (s *AlertService) Latest(ctx context.Context) ([]domain.TrafficAlert, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, alertsCacheKey); err == nil {
			var alerts []domain.TrafficAlert
			if err := json.Unmarshal(data, &alerts); err == nil {
				metrics.CacheHits.WithLabelValues("alerts").Inc()
				return alerts, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("alerts").Inc()
	}

	start := time.Now()
	alerts, err := s.feed.Alerts(ctx)
	metrics.ObserveProvider("alerts", start, err)
	if err != nil {
		return nil, fmt.Errorf("fetch alerts: %w", err)
	}
	if len(alerts) > s.limit {
		alerts = alerts[:s.limit]
	}
	if alerts == nil {
		alerts = []domain.TrafficAlert{}
	}

	if s.cache != nil {
		if data, err := json.Marshal(alerts); err == nil {
			_ = s.cache.Set(ctx, alertsCacheKey, data, int(s.ttl.Seconds()))
		}
	}
	return alerts, nil
}
