package http_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/samirrijal/oebbdash/internal/core/domain"
)

// ---- Mock ports ----

type mockFetcher struct {
	journeysFn func(ctx context.Context, from, to string, departure time.Time, results int) ([]domain.RawJourney, error)
}

func (m *mockFetcher) Journeys(ctx context.Context, from, to string, departure time.Time, results int) ([]domain.RawJourney, error) {
	if m.journeysFn != nil {
		return m.journeysFn(ctx, from, to, departure, results)
	}
	return nil, nil
}

type mockLocator struct {
	locationsFn func(ctx context.Context, query string, results int) ([]domain.RawLocation, error)
}

func (m *mockLocator) Locations(ctx context.Context, query string, results int) ([]domain.RawLocation, error) {
	if m.locationsFn != nil {
		return m.locationsFn(ctx, query, results)
	}
	return nil, nil
}

type mockFeed struct {
	alertsFn func(ctx context.Context) ([]domain.TrafficAlert, error)
}

func (m *mockFeed) Alerts(ctx context.Context) ([]domain.TrafficAlert, error) {
	if m.alertsFn != nil {
		return m.alertsFn(ctx)
	}
	return nil, nil
}

// memRepo is an in-memory ConnectionRepository.
type memRepo struct {
	mu     sync.Mutex
	boards map[string][]domain.SavedConnection
}

func newMemRepo() *memRepo { return &memRepo{boards: map[string][]domain.SavedConnection{}} }

func (r *memRepo) List(ctx context.Context, boardID string) ([]domain.SavedConnection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := slices.Clone(r.boards[boardID])
	slices.SortFunc(out, func(a, b domain.SavedConnection) int { return a.Position - b.Position })
	return out, nil
}

func (r *memRepo) Create(ctx context.Context, conn *domain.SavedConnection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.boards[conn.BoardID] = append(r.boards[conn.BoardID], *conn)
	return nil
}

func (r *memRepo) Delete(ctx context.Context, boardID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	conns := r.boards[boardID]
	i := slices.IndexFunc(conns, func(c domain.SavedConnection) bool { return c.ID == id })
	if i < 0 {
		return domain.ErrNotFound
	}
	r.boards[boardID] = slices.Delete(conns, i, i+1)
	return nil
}

func (r *memRepo) Reorder(ctx context.Context, boardID string, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	conns := r.boards[boardID]
	for pos, id := range ids {
		for i := range conns {
			if conns[i].ID == id {
				conns[i].Position = pos
			}
		}
	}
	return nil
}

func (r *memRepo) ListBoards(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for b := range r.boards {
		out = append(out, b)
	}
	slices.Sort(out)
	return out, nil
}

// memCache is an in-memory CacheService.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, errors.New("miss")
	}
	return v, nil
}

func (c *memCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func domainTransportTypes() []string {
	out := make([]string, len(domain.TransportTypes))
	for i, t := range domain.TransportTypes {
		out[i] = string(t)
	}
	return out
}
