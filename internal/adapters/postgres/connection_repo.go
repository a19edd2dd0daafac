package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/oebbdash/internal/core/domain"
)

// ConnectionRepo implements ports.ConnectionRepository with pgx.
type ConnectionRepo struct {
	db *DB
}

// NewConnectionRepo creates a new ConnectionRepo.
func NewConnectionRepo(db *DB) *ConnectionRepo {
	return &ConnectionRepo{db: db}
}

// List returns a board's connections ordered by position.
func (r *ConnectionRepo) List(ctx context.Context, boardID string) ([]domain.SavedConnection, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, board_id, from_station, from_name, to_station, to_name, position, created_at
		FROM saved_connections
		WHERE board_id = $1
		ORDER BY position, created_at
	`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conns := []domain.SavedConnection{}
	for rows.Next() {
		var c domain.SavedConnection
		if err := rows.Scan(&c.ID, &c.BoardID, &c.FromStation, &c.FromName,
			&c.ToStation, &c.ToName, &c.Position, &c.CreatedAt); err != nil {
			return nil, err
		}
		conns = append(conns, c)
	}
	return conns, rows.Err()
}

// Create inserts a connection.
func (r *ConnectionRepo) Create(ctx context.Context, c *domain.SavedConnection) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO saved_connections (id, board_id, from_station, from_name, to_station, to_name, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, c.ID, c.BoardID, c.FromStation, c.FromName, c.ToStation, c.ToName, c.Position, c.CreatedAt)
	return err
}

// Delete removes a connection from a board. Ids that are not UUIDs cannot
// exist and report ErrNotFound.
func (r *ConnectionRepo) Delete(ctx context.Context, boardID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("connection %s: %w", id, domain.ErrNotFound)
	}
	tag, err := r.db.Pool.Exec(ctx, `
		DELETE FROM saved_connections WHERE board_id = $1 AND id = $2
	`, boardID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("connection %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Reorder assigns position i to ids[i] in one transaction.
func (r *ConnectionRepo) Reorder(ctx context.Context, boardID string, ids []string) error {
	return pgx.BeginFunc(ctx, r.db.Pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for i, id := range ids {
			batch.Queue(`
				UPDATE saved_connections SET position = $1
				WHERE board_id = $2 AND id = $3
			`, i, boardID, id)
		}
		br := tx.SendBatch(ctx, batch)
		defer br.Close()
		for range ids {
			if _, err := br.Exec(); err != nil {
				return fmt.Errorf("batch exec: %w", err)
			}
		}
		return nil
	})
}

// ListBoards returns every board with at least one connection.
func (r *ConnectionRepo) ListBoards(ctx context.Context) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT DISTINCT board_id FROM saved_connections ORDER BY board_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boards []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}
