// Package rss reads the Vienna public-transport disruption feed.
package rss

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/samirrijal/oebbdash/internal/core/domain"
)

type document struct {
	Channel struct {
		Items []item `xml:"item"`
	} `xml:"channel"`
}

type item struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	Link        string `xml:"link"`
}

// Feed fetches and parses an RSS 2.0 document.
type Feed struct {
	url     string
	timeout time.Duration
	http    *fasthttp.Client
}

// New creates a Feed reading from url.
func New(url string, timeout time.Duration) *Feed {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Feed{
		url:     url,
		timeout: timeout,
		http:    &fasthttp.Client{Name: "oebbdash/1.0", ReadTimeout: timeout},
	}
}

// Alerts implements ports.AlertFeed. Items keep feed order.
func (f *Feed) Alerts(ctx context.Context) ([]domain.TrafficAlert, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(f.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/rss+xml, application/xml")

	deadline := time.Now().Add(f.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := f.http.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("%w: fetch feed: %w", domain.ErrUpstream, err)
	}
	if status := resp.StatusCode(); status != fasthttp.StatusOK {
		return nil, fmt.Errorf("%w: feed status %d", domain.ErrUpstream, status)
	}

	return Parse(resp.Body())
}

// Parse decodes an RSS document into alerts.
func Parse(body []byte) ([]domain.TrafficAlert, error) {
	var doc document
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse feed: %w", domain.ErrUpstream, err)
	}
	alerts := make([]domain.TrafficAlert, 0, len(doc.Channel.Items))
	for _, it := range doc.Channel.Items {
		alerts = append(alerts, domain.TrafficAlert{
			Title:       strings.TrimSpace(it.Title),
			Description: strings.TrimSpace(it.Description),
			PubDate:     strings.TrimSpace(it.PubDate),
			Link:        strings.TrimSpace(it.Link),
		})
	}
	return alerts, nil
}
