package workflows

import (
	"context"
	"fmt"

	"github.com/samirrijal/oebbdash/internal/core/ports"
	"github.com/samirrijal/oebbdash/internal/core/usecases"
)

// Activity names registered on the worker.
const (
	ListBoardsActivity   = "ListBoards"
	RefreshBoardActivity = "RefreshBoard"
)

// RefreshSummary is the activity result of one board refresh.
type RefreshSummary struct {
	BoardID string
	Pairs   int
	Failed  int
}

// RefreshActivities holds the activity implementations for the board refresh
// workflow.
type RefreshActivities struct {
	Connections ports.ConnectionRepository
	Dashboard   *usecases.DashboardService
}

// ListBoards returns every board with saved connections.
func (a *RefreshActivities) ListBoards(ctx context.Context) ([]string, error) {
	boards, err := a.Connections.ListBoards(ctx)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	return boards, nil
}

// RefreshBoard refreshes one board. Per-pair provider failures are part of
// the snapshot, not activity errors.
func (a *RefreshActivities) RefreshBoard(ctx context.Context, board string) (RefreshSummary, error) {
	snap, err := a.Dashboard.RefreshBoard(ctx, board)
	if err != nil {
		return RefreshSummary{}, fmt.Errorf("refresh board %s: %w", board, err)
	}
	return RefreshSummary{BoardID: board, Pairs: len(snap.Pairs), Failed: snap.Failed()}, nil
}
