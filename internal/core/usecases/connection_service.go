package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samirrijal/oebbdash/internal/core/domain"
	"github.com/samirrijal/oebbdash/internal/core/ports"
)

const maxBoardIDLen = 64

// NewConnection is the input of ConnectionService.Add.
type NewConnection struct {
	FromStation string `json:"fromStation"`
	FromName    string `json:"fromName"`
	ToStation   string `json:"toStation"`
	ToName      string `json:"toName"`
}

// ConnectionService manages the ordered station pairs of a board.
type ConnectionService struct {
	repo ports.ConnectionRepository
}

// NewConnectionService creates a new ConnectionService.
func NewConnectionService(repo ports.ConnectionRepository) *ConnectionService {
	return &ConnectionService{repo: repo}
}

func validBoard(board string) error {
	if board == "" || len(board) > maxBoardIDLen {
		return fmt.Errorf("%w: board id must be 1-%d characters", domain.ErrInvalidQuery, maxBoardIDLen)
	}
	return nil
}

// List returns the board's connections in display order.
func (s *ConnectionService) List(ctx context.Context, board string) ([]domain.SavedConnection, error) {
	if err := validBoard(board); err != nil {
		return nil, err
	}
	conns, err := s.repo.List(ctx, board)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	return conns, nil
}

// Add appends a station pair to the end of the board.
func (s *ConnectionService) Add(ctx context.Context, board string, in NewConnection) (*domain.SavedConnection, error) {
	if err := validBoard(board); err != nil {
		return nil, err
	}
	in.FromStation = strings.TrimSpace(in.FromStation)
	in.ToStation = strings.TrimSpace(in.ToStation)
	if in.FromStation == "" || in.ToStation == "" {
		return nil, fmt.Errorf("%w: both stations are required", domain.ErrInvalidQuery)
	}
	if in.FromStation == in.ToStation {
		return nil, fmt.Errorf("%w: origin and destination must differ", domain.ErrInvalidQuery)
	}

	existing, err := s.repo.List(ctx, board)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}

	conn := &domain.SavedConnection{
		ID:          uuid.NewString(),
		BoardID:     board,
		FromStation: in.FromStation,
		FromName:    orDefault(in.FromName, in.FromStation),
		ToStation:   in.ToStation,
		ToName:      orDefault(in.ToName, in.ToStation),
		Position:    len(existing),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, conn); err != nil {
		return nil, fmt.Errorf("create connection: %w", err)
	}
	return conn, nil
}

// Remove deletes a connection and closes the gap in positions.
func (s *ConnectionService) Remove(ctx context.Context, board, id string) error {
	if err := validBoard(board); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, board, id); err != nil {
		return fmt.Errorf("delete connection: %w", err)
	}
	conns, err := s.repo.List(ctx, board)
	if err != nil {
		return fmt.Errorf("list connections: %w", err)
	}
	if err := s.repo.Reorder(ctx, board, ids(conns)); err != nil {
		return fmt.Errorf("reorder connections: %w", err)
	}
	return nil
}

// Move takes the connection out of its slot and inserts it at index, shifting
// the others. It returns the board in its new order.
func (s *ConnectionService) Move(ctx context.Context, board, id string, index int) ([]domain.SavedConnection, error) {
	if err := validBoard(board); err != nil {
		return nil, err
	}
	conns, err := s.repo.List(ctx, board)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	if index < 0 || index >= len(conns) {
		return nil, fmt.Errorf("%w: position %d out of range", domain.ErrInvalidQuery, index)
	}

	from := -1
	for i, c := range conns {
		if c.ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return nil, fmt.Errorf("connection %s: %w", id, domain.ErrNotFound)
	}
	if from == index {
		return conns, nil
	}

	moved := Splice(conns, from, index)
	if err := s.repo.Reorder(ctx, board, ids(moved)); err != nil {
		return nil, fmt.Errorf("reorder connections: %w", err)
	}
	return moved, nil
}

// Splice returns a copy of list with the element at from moved to to, and
// positions renumbered from zero.
func Splice(list []domain.SavedConnection, from, to int) []domain.SavedConnection {
	out := make([]domain.SavedConnection, 0, len(list))
	item := list[from]
	out = append(out, list[:from]...)
	out = append(out, list[from+1:]...)
	out = append(out[:to], append([]domain.SavedConnection{item}, out[to:]...)...)
	for i := range out {
		out[i].Position = i
	}
	return out
}

func ids(conns []domain.SavedConnection) []string {
	out := make([]string, len(conns))
	for i, c := range conns {
		out[i] = c.ID
	}
	return out
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
