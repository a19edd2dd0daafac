package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/samirrijal/oebbdash/internal/core/domain"
	"github.com/samirrijal/oebbdash/internal/core/usecases"
)

// APIError is a structured error response.
type APIError struct {
	Status      int    `json:"status"`
	Code        string `json:"code"`    // bad_request, not_found, upstream_error, internal_error
	Message     string `json:"message"` // Human-readable message
	RequestID   string `json:"request_id,omitempty"`
	FallbackURL string `json:"fallback_url,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	return writeError(c, APIError{Status: status, Code: code, Message: message})
}

func writeError(c *fiber.Ctx, e APIError) error {
	e.RequestID, _ = c.Locals("requestid").(string)
	return c.Status(e.Status).JSON(e)
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusNotFound, "not_found", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusInternalServerError, "internal_error", msg)
}

// errUpstream returns a 502 error pointing the client at the provider's own
// web view when one is known.
func errUpstream(c *fiber.Ctx, msg, fallbackURL string) error {
	return writeError(c, APIError{
		Status:      fiber.StatusBadGateway,
		Code:        "upstream_error",
		Message:     msg,
		FallbackURL: fallbackURL,
	})
}

// respondError maps a use-case error onto its HTTP representation.
func respondError(c *fiber.Ctx, err error) error {
	var upstream *usecases.UpstreamError
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		return errBadRequest(c, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return errNotFound(c, err.Error())
	case errors.As(err, &upstream):
		return errUpstream(c, "routing provider unavailable", upstream.FallbackURL)
	case errors.Is(err, domain.ErrUpstream):
		return errUpstream(c, "upstream service unavailable", "")
	case errors.Is(err, context.DeadlineExceeded):
		return newError(c, fiber.StatusGatewayTimeout, "timeout", "request timed out")
	}
	LoggerFromCtx(c.UserContext()).Error("request failed", "error", err)
	return errInternal(c, err.Error())
}
