package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "oebbdash",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "oebbdash",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "oebbdash",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Provider metrics
	ProviderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "oebbdash",
		Subsystem: "provider",
		Name:      "requests_total",
		Help:      "Total requests sent to the routing provider and alert feed",
	}, []string{"operation"})

	ProviderErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "oebbdash",
		Subsystem: "provider",
		Name:      "errors_total",
		Help:      "Total failed provider requests",
	}, []string{"operation"})

	ProviderLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "oebbdash",
		Subsystem: "provider",
		Name:      "request_duration_seconds",
		Help:      "Latency of provider requests",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"operation"})

	// Normalizer metrics
	ItinerariesBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "oebbdash",
		Subsystem: "itinerary",
		Name:      "built_total",
		Help:      "Total itineraries produced from provider journeys",
	})

	SegmentsByType = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "oebbdash",
		Subsystem: "itinerary",
		Name:      "segments_total",
		Help:      "Total segments produced, by transport type",
	}, []string{"type"})

	LegsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "oebbdash",
		Subsystem: "itinerary",
		Name:      "legs_dropped_total",
		Help:      "Total provider legs without usable time or line",
	})

	JourneysDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "oebbdash",
		Subsystem: "itinerary",
		Name:      "journeys_dropped_total",
		Help:      "Total provider journeys that yielded no segment",
	})

	// Board refresh metrics
	BoardRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "oebbdash",
		Subsystem: "board",
		Name:      "refreshes_total",
		Help:      "Total board refreshes by outcome",
	}, []string{"outcome"})

	BoardRefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "oebbdash",
		Subsystem: "board",
		Name:      "refresh_duration_seconds",
		Help:      "Duration of a full board refresh",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "oebbdash",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "oebbdash",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"operation"})

	// Database pool metrics
	DBPoolConnsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "oebbdash",
		Subsystem: "db",
		Name:      "pool_conns_open",
		Help:      "Total connections open in the database pool",
	})

	DBPoolConnsAcquired = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "oebbdash",
		Subsystem: "db",
		Name:      "pool_conns_acquired",
		Help:      "Connections currently acquired from the database pool",
	})

	DBPoolConnsIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "oebbdash",
		Subsystem: "db",
		Name:      "pool_conns_idle",
		Help:      "Idle connections in the database pool",
	})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
		httpResponseSize.WithLabelValues(method, path).Observe(float64(len(c.Response().Body())))

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}

// poolStat is the subset of pgxpool.Stat read here, so this package does not
// import pgx.
type poolStat interface {
	AcquiredConns() int32
	IdleConns() int32
	TotalConns() int32
}

// UpdateDBPoolMetrics copies pool gauges from a pgxpool.Stat.
func UpdateDBPoolMetrics(stat any) {
	if s, ok := stat.(poolStat); ok {
		DBPoolConnsAcquired.Set(float64(s.AcquiredConns()))
		DBPoolConnsIdle.Set(float64(s.IdleConns()))
		DBPoolConnsOpen.Set(float64(s.TotalConns()))
	}
}

// ObserveProvider records one provider call.
func ObserveProvider(operation string, start time.Time, err error) {
	ProviderRequests.WithLabelValues(operation).Inc()
	ProviderLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		ProviderErrors.WithLabelValues(operation).Inc()
	}
}
