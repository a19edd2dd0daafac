// Package hafas is a client for a HAFAS REST endpoint serving the ÖBB
// profile. Responses are FPTF-shaped JSON and decode straight into the raw
// domain types.
package hafas

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/samirrijal/oebbdash/internal/core/domain"
)

const userAgent = "oebbdash/1.0"

// Client queries journeys and locations.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *fasthttp.Client
}

// New creates a Client for the endpoint at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http: &fasthttp.Client{
			Name:                userAgent,
			MaxConnsPerHost:     32,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
	}
}

type journeysResponse struct {
	Journeys []domain.RawJourney `json:"journeys"`
}

type errorResponse struct {
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
	Msg     string          `json:"msg"`
}

// failed reports whether the body carries an error flag or error string.
func (e errorResponse) failed() bool {
	switch string(e.Error) {
	case "", "null", "false", `""`:
		return false
	}
	return true
}

func (e errorResponse) text(fallback string) string {
	var s string
	if json.Unmarshal(e.Error, &s) == nil && s != "" {
		return s
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Msg != "" {
		return e.Msg
	}
	return fallback
}

// Journeys implements ports.JourneyFetcher.
func (c *Client) Journeys(ctx context.Context, from, to string, departure time.Time, results int) ([]domain.RawJourney, error) {
	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)
	q.Set("departure", departure.Format(time.RFC3339))
	q.Set("results", strconv.Itoa(results))
	q.Set("stopovers", "true")

	var resp journeysResponse
	if err := c.get(ctx, "/journeys", q, &resp); err != nil {
		return nil, fmt.Errorf("journeys %s -> %s: %w", from, to, err)
	}
	if resp.Journeys == nil {
		return []domain.RawJourney{}, nil
	}
	return resp.Journeys, nil
}

// Locations implements ports.StationLocator.
func (c *Client) Locations(ctx context.Context, query string, results int) ([]domain.RawLocation, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("results", strconv.Itoa(results))
	q.Set("poi", "false")
	q.Set("addresses", "false")
	q.Set("stops", "true")
	q.Set("linesOfStops", "false")

	var locs []domain.RawLocation
	if err := c.get(ctx, "/locations", q, &locs); err != nil {
		return nil, fmt.Errorf("locations %q: %w", query, err)
	}
	return locs, nil
}

// Ping checks that the endpoint answers at all.
func (c *Client) Ping(ctx context.Context) error {
	q := url.Values{}
	q.Set("query", "Wien")
	q.Set("results", "1")
	var locs []domain.RawLocation
	return c.get(ctx, "/locations", q, &locs)
}

// get performs one request. Every failure is wrapped in domain.ErrUpstream.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path + "?" + q.Encode())
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}

	body := resp.Body()
	var e errorResponse
	// Array bodies (locations) leave e empty.
	_ = json.Unmarshal(body, &e)
	if status := resp.StatusCode(); status < 200 || status > 299 {
		return fmt.Errorf("%w: status %d: %s", domain.ErrUpstream, status, e.text(fasthttp.StatusMessage(status)))
	}
	if e.failed() {
		return fmt.Errorf("%w: provider error: %s", domain.ErrUpstream, e.text("unknown error"))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode response: %w", domain.ErrUpstream, err)
	}
	return nil
}
