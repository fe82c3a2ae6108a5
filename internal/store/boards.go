// ABOUTME: Board entity store methods
// ABOUTME: CRUD plus owner-scoped listing in creation order

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CreateBoard inserts a new board and returns the stored row with its
// store-assigned id and creation timestamp.
func (s *SQLiteStore) CreateBoard(ctx context.Context, ownerID int64, title, description string) (*Board, error) {
	query := `
		INSERT INTO boards (owner_id, title, description, created_at)
		VALUES (?, ?, ?, ?)
	`

	result, err := s.conn.ExecContext(ctx, query, ownerID, title, nullString(description), formatTime(now()))
	if err != nil {
		if isForeignKeyError(err) {
			return nil, ErrReferenceMissing
		}
		return nil, fmt.Errorf("inserting board: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting board id: %w", err)
	}

	s.logger.Debug("created board", "id", id, "owner_id", ownerID)
	return s.GetBoard(ctx, id)
}

// GetBoard retrieves a board by id.
// Returns ErrNotFound if the board doesn't exist.
func (s *SQLiteStore) GetBoard(ctx context.Context, id int64) (*Board, error) {
	query := `
		SELECT id, owner_id, title, description, created_at
		FROM boards
		WHERE id = ?
	`
	return s.scanBoard(s.conn.QueryRowContext(ctx, query, id))
}

// ListBoardsByOwner returns boards owned by the given user in creation order.
// Shared boards are not included.
func (s *SQLiteStore) ListBoardsByOwner(ctx context.Context, ownerID int64, skip, limit int) ([]*Board, error) {
	skip, limit = clampPage(skip, limit)

	query := `
		SELECT id, owner_id, title, description, created_at
		FROM boards
		WHERE owner_id = ?
		ORDER BY id ASC
		LIMIT ? OFFSET ?
	`

	rows, err := s.conn.QueryContext(ctx, query, ownerID, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("querying boards: %w", err)
	}
	defer rows.Close()

	var boards []*Board
	for rows.Next() {
		var board Board
		var description sql.NullString
		var createdAtStr string

		if err := rows.Scan(&board.ID, &board.OwnerID, &board.Title, &description, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning board row: %w", err)
		}

		board.Description = description.String
		board.CreatedAt, err = parseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		boards = append(boards, &board)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating board rows: %w", err)
	}
	return boards, nil
}

// UpdateBoard writes the board's title and description.
// Returns ErrNotFound if the board doesn't exist.
func (s *SQLiteStore) UpdateBoard(ctx context.Context, board *Board) error {
	query := `
		UPDATE boards
		SET title = ?, description = ?
		WHERE id = ?
	`

	result, err := s.conn.ExecContext(ctx, query, board.Title, nullString(board.Description), board.ID)
	if err != nil {
		return fmt.Errorf("updating board: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("updated board", "id", board.ID)
	return nil
}

// DeleteBoard removes a board. Child rows (statuses, tasks, grants, and
// everything beneath them) go with it via foreign key cascades.
// Returns ErrNotFound if no row matched.
func (s *SQLiteStore) DeleteBoard(ctx context.Context, id int64) error {
	result, err := s.conn.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting board: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted board", "id", id)
	return nil
}

func (s *SQLiteStore) scanBoard(row *sql.Row) (*Board, error) {
	var board Board
	var description sql.NullString
	var createdAtStr string

	err := row.Scan(&board.ID, &board.OwnerID, &board.Title, &description, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning board: %w", err)
	}

	board.Description = description.String
	board.CreatedAt, err = parseTime(createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &board, nil
}
