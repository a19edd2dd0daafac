package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/samirrijal/oebbdash/internal/pkg/metrics"
)

const (
	requestTimeout = 15 * time.Second
	// A board refresh fans out one provider query per saved pair.
	dashboardTimeout = 30 * time.Second
)

// SetupRoutes registers all REST, GraphQL and documentation routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	app.Use(requestid.New())
	app.Use(RequestIDLogMiddleware())
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return newError(c, fiber.StatusTooManyRequests, "rate_limited", "too many requests, please try again later")
		},
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	app.Use(ETagMiddleware())
	app.Use(CachingMiddleware())

	// Health & readiness (no timeout, fast internal checks)
	app.Get("/v1/health", HealthHandler())
	app.Get("/v1/ready", ReadyHandler(deps))

	v1 := app.Group("/v1")
	v1.Post("/connections", timeout.NewWithContext(QueryConnectionsHandler(deps), requestTimeout))
	v1.Get("/stations", timeout.NewWithContext(SearchStationsHandler(deps), requestTimeout))
	v1.Get("/traffic-alerts", timeout.NewWithContext(TrafficAlertsHandler(deps), requestTimeout))

	boards := v1.Group("/boards/:board")
	boards.Get("/connections", timeout.NewWithContext(ListSavedConnectionsHandler(deps), requestTimeout))
	boards.Post("/connections", timeout.NewWithContext(AddSavedConnectionHandler(deps), requestTimeout))
	boards.Delete("/connections/:id", timeout.NewWithContext(RemoveSavedConnectionHandler(deps), requestTimeout))
	boards.Put("/connections/:id/position", timeout.NewWithContext(MoveSavedConnectionHandler(deps), requestTimeout))
	boards.Get("/dashboard", timeout.NewWithContext(DashboardHandler(deps), dashboardTimeout))

	app.Post("/graphql", timeout.NewWithContext(GraphQLHandler(deps), requestTimeout))

	SetupDocs(app)
}
