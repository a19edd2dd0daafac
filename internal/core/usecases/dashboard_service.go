package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samirrijal/oebbdash/internal/core/domain"
	"github.com/samirrijal/oebbdash/internal/core/ports"
	"github.com/samirrijal/oebbdash/internal/pkg/metrics"
	"github.com/samirrijal/oebbdash/internal/pkg/telemetry"
	"golang.org/x/sync/errgroup"
)

// Planner answers one connection query. ItineraryService implements it.
type Planner interface {
	PlanConnections(ctx context.Context, from, to string, when time.Time) ([]domain.Itinerary, error)
	FallbackURL(from, to string, when time.Time) string
}

// DashboardService refreshes every saved pair of a board.
type DashboardService struct {
	connections ports.ConnectionRepository
	planner     Planner
	publisher   ports.EventPublisher
	concurrency int
	now         func() time.Time

	snapshots   ports.CacheService
	snapshotTTL time.Duration
}

// NewDashboardService creates a new DashboardService. publisher may be nil.
func NewDashboardService(
	connections ports.ConnectionRepository,
	planner Planner,
	publisher ports.EventPublisher,
	concurrency int,
) *DashboardService {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &DashboardService{
		connections: connections,
		planner:     planner,
		publisher:   publisher,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// WithSnapshotStore keeps the latest snapshot of every board in cache for ttl.
func (s *DashboardService) WithSnapshotStore(cache ports.CacheService, ttl time.Duration) *DashboardService {
	s.snapshots = cache
	s.snapshotTTL = ttl
	return s
}

func snapshotKey(board string) string { return "board:" + board + ":snapshot" }

// StoreSnapshot records snap as the latest result of its board. It is the
// handler of the snapshot subscription.
func (s *DashboardService) StoreSnapshot(ctx context.Context, snap *domain.BoardSnapshot) error {
	if s.snapshots == nil {
		return nil
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return s.snapshots.Set(ctx, snapshotKey(snap.BoardID), data, int(s.snapshotTTL.Seconds()))
}

// Latest returns the most recently stored snapshot of the board.
func (s *DashboardService) Latest(ctx context.Context, board string) (*domain.BoardSnapshot, error) {
	if err := validBoard(board); err != nil {
		return nil, err
	}
	if s.snapshots == nil {
		return nil, fmt.Errorf("snapshot of %s: %w", board, domain.ErrNotFound)
	}
	data, err := s.snapshots.Get(ctx, snapshotKey(board))
	if err != nil {
		return nil, fmt.Errorf("snapshot of %s: %w", board, domain.ErrNotFound)
	}
	var snap domain.BoardSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// RefreshBoard plans every saved pair of the board. A failing pair carries its
// error and a fallback link; it never fails the other pairs or the board.
func (s *DashboardService) RefreshBoard(ctx context.Context, board string) (*domain.BoardSnapshot, error) {
	if err := validBoard(board); err != nil {
		return nil, err
	}
	start := time.Now()

	ctx, span := telemetry.Start(ctx, "dashboard.refresh", telemetry.AttrBoard.String(board))
	defer span.End()

	conns, err := s.connections.List(ctx, board)
	if err != nil {
		metrics.BoardRefreshes.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("list connections: %w", err)
	}
	span.SetAttributes(telemetry.AttrPairs.Int(len(conns)))

	now := s.now()
	snap := &domain.BoardSnapshot{
		BoardID:     board,
		RefreshedAt: now.UTC(),
		Pairs:       make([]domain.PairResult, len(conns)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, conn := range conns {
		g.Go(func() error {
			snap.Pairs[i] = s.refreshPair(gctx, conn, now)
			return nil
		})
	}
	_ = g.Wait()

	outcome := "ok"
	if failed := snap.Failed(); failed == len(conns) && failed > 0 {
		outcome = "failed"
	} else if failed > 0 {
		outcome = "partial"
	}
	metrics.BoardRefreshes.WithLabelValues(outcome).Inc()
	metrics.BoardRefreshDuration.Observe(time.Since(start).Seconds())

	if s.publisher != nil {
		if err := s.publisher.PublishBoardSnapshot(ctx, snap); err != nil {
			slog.WarnContext(ctx, "publish board snapshot", "board", board, "error", err)
		}
	}

	return snap, nil
}

func (s *DashboardService) refreshPair(ctx context.Context, conn domain.SavedConnection, when time.Time) domain.PairResult {
	res := domain.PairResult{Connection: conn}
	its, err := s.planner.PlanConnections(ctx, conn.FromStation, conn.ToStation, when)
	if err == nil {
		res.Itineraries = its
		return res
	}

	res.Error = err.Error()
	var up *UpstreamError
	if errors.As(err, &up) {
		res.FallbackURL = up.FallbackURL
	} else {
		res.FallbackURL = s.planner.FallbackURL(conn.FromStation, conn.ToStation, when)
	}
	if s.publisher != nil {
		if perr := s.publisher.PublishFetchFailure(ctx, conn, res.Error); perr != nil {
			slog.WarnContext(ctx, "publish fetch failure", "connection", conn.ID, "error", perr)
		}
	}
	return res
}

// RefreshAll refreshes every known board in turn and returns how many
// refreshed. Failures of single boards are logged and skipped.
func (s *DashboardService) RefreshAll(ctx context.Context) (int, error) {
	boards, err := s.connections.ListBoards(ctx)
	if err != nil {
		return 0, fmt.Errorf("list boards: %w", err)
	}
	done := 0
	for _, board := range boards {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		if _, err := s.RefreshBoard(ctx, board); err != nil {
			slog.WarnContext(ctx, "board refresh failed", "board", board, "error", err)
			continue
		}
		done++
	}
	return done, nil
}
