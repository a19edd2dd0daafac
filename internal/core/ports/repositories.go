package ports

import (
	"context"

	"github.com/samirrijal/oebbdash/internal/core/domain"
)

// ConnectionRepository persists saved station pairs per board.
type ConnectionRepository interface {
	// List returns the board's connections ordered by position.
	List(ctx context.Context, boardID string) ([]domain.SavedConnection, error)
	Create(ctx context.Context, conn *domain.SavedConnection) error
	// Delete returns domain.ErrNotFound when the connection is not on the board.
	Delete(ctx context.Context, boardID, id string) error
	// Reorder rewrites positions so that ids[i] gets position i.
	Reorder(ctx context.Context, boardID string, ids []string) error
	ListBoards(ctx context.Context) ([]string, error)
}
