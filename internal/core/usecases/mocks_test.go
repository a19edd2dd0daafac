package usecases_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/samirrijal/oebbdash/internal/core/domain"
)

// --- Mock JourneyFetcher ---

type mockFetcher struct {
	journeysFn func(ctx context.Context, from, to string, departure time.Time, results int) ([]domain.RawJourney, error)
	mu         sync.Mutex
	calls      int
}

func (m *mockFetcher) Journeys(ctx context.Context, from, to string, departure time.Time, results int) ([]domain.RawJourney, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.journeysFn != nil {
		return m.journeysFn(ctx, from, to, departure, results)
	}
	return nil, nil
}

// --- Mock StationLocator ---

type mockLocator struct {
	locationsFn func(ctx context.Context, query string, results int) ([]domain.RawLocation, error)
	calls       int
}

func (m *mockLocator) Locations(ctx context.Context, query string, results int) ([]domain.RawLocation, error) {
	m.calls++
	if m.locationsFn != nil {
		return m.locationsFn(ctx, query, results)
	}
	return nil, nil
}

// --- Mock AlertFeed ---

type mockFeed struct {
	alertsFn func(ctx context.Context) ([]domain.TrafficAlert, error)
	calls    int
}

func (m *mockFeed) Alerts(ctx context.Context) ([]domain.TrafficAlert, error) {
	m.calls++
	if m.alertsFn != nil {
		return m.alertsFn(ctx)
	}
	return nil, nil
}

// --- Mock CacheService ---

type mockCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]int
}

func newMockCache() *mockCache {
	return &mockCache{data: map[string][]byte{}, ttls: map[string]int{}}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, errors.New("miss")
	}
	return v, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.ttls[key] = ttlSeconds
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// --- Mock ConnectionRepository (in memory) ---

type mockConnRepo struct {
	mu     sync.Mutex
	boards map[string][]domain.SavedConnection
	listFn func(ctx context.Context, boardID string) ([]domain.SavedConnection, error)
}

func newMockConnRepo(conns ...domain.SavedConnection) *mockConnRepo {
	r := &mockConnRepo{boards: map[string][]domain.SavedConnection{}}
	for _, c := range conns {
		r.boards[c.BoardID] = append(r.boards[c.BoardID], c)
	}
	return r
}

func (m *mockConnRepo) List(ctx context.Context, boardID string) ([]domain.SavedConnection, error) {
	if m.listFn != nil {
		return m.listFn(ctx, boardID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]domain.SavedConnection(nil), m.boards[boardID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m *mockConnRepo) Create(ctx context.Context, conn *domain.SavedConnection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.boards[conn.BoardID] = append(m.boards[conn.BoardID], *conn)
	return nil
}

func (m *mockConnRepo) Delete(ctx context.Context, boardID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.boards[boardID]
	for i, c := range list {
		if c.ID == id {
			m.boards[boardID] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockConnRepo) Reorder(ctx context.Context, boardID string, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	list := m.boards[boardID]
	for i := range list {
		list[i].Position = pos[list[i].ID]
	}
	return nil
}

func (m *mockConnRepo) ListBoards(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for b := range m.boards {
		out = append(out, b)
	}
	sort.Strings(out)
	return out, nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	mu        sync.Mutex
	snapshots []*domain.BoardSnapshot
	failures  []string
}

func (m *mockPublisher) PublishBoardSnapshot(ctx context.Context, snap *domain.BoardSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots = append(m.snapshots, snap)
	return nil
}

func (m *mockPublisher) PublishFetchFailure(ctx context.Context, conn domain.SavedConnection, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, conn.ID)
	return nil
}
