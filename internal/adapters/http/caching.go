package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control on GET responses the handler left
// unmarked. Live data gets short lifetimes; board state is never cached.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != fiber.MethodGet || c.GetRespHeader(fiber.HeaderCacheControl) != "" {
			return err
		}
		if c.Response().StatusCode() >= 400 {
			c.Set(fiber.HeaderCacheControl, "no-store")
			return err
		}

		path := c.Path()
		var cc string
		switch {
		case path == "/v1/health" || path == "/v1/ready":
			cc = "public, max-age=10"
		case path == "/metrics":
			cc = "no-cache"
		case strings.HasPrefix(path, "/v1/boards/"):
			cc = "no-store"
		case path == "/v1/stations":
			cc = "public, max-age=300"
		case path == "/v1/traffic-alerts":
			cc = "public, max-age=300"
		case strings.HasPrefix(path, "/docs"):
			cc = "public, max-age=3600"
		case strings.HasPrefix(path, "/v1/"):
			cc = "public, max-age=30"
		}

		if cc != "" {
			c.Set(fiber.HeaderCacheControl, cc)
		}
		return err
	}
}
