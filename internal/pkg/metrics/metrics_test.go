package metrics_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/samirrijal/oebbdash/internal/pkg/metrics"
)

func TestObserveProvider(t *testing.T) {
	reqs := testutil.ToFloat64(metrics.ProviderRequests.WithLabelValues("test-op"))
	errs := testutil.ToFloat64(metrics.ProviderErrors.WithLabelValues("test-op"))

	metrics.ObserveProvider("test-op", time.Now(), nil)
	metrics.ObserveProvider("test-op", time.Now(), errors.New("boom"))

	if got := testutil.ToFloat64(metrics.ProviderRequests.WithLabelValues("test-op")) - reqs; got != 2 {
		t.Errorf("expected 2 requests, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.ProviderErrors.WithLabelValues("test-op")) - errs; got != 1 {
		t.Errorf("expected 1 error, got %v", got)
	}
}

type fakeStat struct{ acquired, idle, total int32 }

func (s fakeStat) AcquiredConns() int32 { return s.acquired }
func (s fakeStat) IdleConns() int32     { return s.idle }
func (s fakeStat) TotalConns() int32    { return s.total }

func TestUpdateDBPoolMetrics(t *testing.T) {
	metrics.UpdateDBPoolMetrics(fakeStat{acquired: 2, idle: 3, total: 5})

	if got := testutil.ToFloat64(metrics.DBPoolConnsOpen); got != 5 {
		t.Errorf("expected 5 open, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.DBPoolConnsAcquired); got != 2 {
		t.Errorf("expected 2 acquired, got %v", got)
	}

	// Unknown types are ignored.
	metrics.UpdateDBPoolMetrics("not a stat")
	if got := testutil.ToFloat64(metrics.DBPoolConnsIdle); got != 3 {
		t.Errorf("expected 3 idle, got %v", got)
	}
}

func TestHandler_ExposesRouteLabels(t *testing.T) {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())
	app.Get("/v1/boards/:board/dashboard", func(c *fiber.Ctx) error { return c.SendString("ok") })

	if _, err := app.Test(httptest.NewRequest("GET", "/v1/boards/kitchen/dashboard", nil), -1); err != nil {
		t.Fatal(err)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `path="/v1/boards/:board/dashboard"`) {
		t.Error("expected route pattern as path label")
	}
	if strings.Contains(string(body), "kitchen") {
		t.Error("board ids must not leak into labels")
	}
}
