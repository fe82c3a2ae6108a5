// ABOUTME: Status entity store methods
// ABOUTME: Board-scoped CRUD for user-defined task labels

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CreateStatus inserts a new status on a board and returns the stored row.
func (s *SQLiteStore) CreateStatus(ctx context.Context, boardID int64, name string) (*Status, error) {
	query := `
		INSERT INTO statuses (board_id, name, created_at)
		VALUES (?, ?, ?)
	`

	result, err := s.conn.ExecContext(ctx, query, boardID, name, formatTime(now()))
	if err != nil {
		if isForeignKeyError(err) {
			return nil, ErrReferenceMissing
		}
		return nil, fmt.Errorf("inserting status: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting status id: %w", err)
	}

	s.logger.Debug("created status", "id", id, "board_id", boardID)
	return s.GetStatus(ctx, boardID, id)
}

// GetStatus retrieves a status by id, scoped to the given board.
// Returns ErrNotFound if no such status exists on that board.
func (s *SQLiteStore) GetStatus(ctx context.Context, boardID, statusID int64) (*Status, error) {
	query := `
		SELECT id, board_id, name, created_at
		FROM statuses
		WHERE id = ? AND board_id = ?
	`

	var status Status
	var createdAtStr string

	err := s.conn.QueryRowContext(ctx, query, statusID, boardID).Scan(
		&status.ID, &status.BoardID, &status.Name, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying status: %w", err)
	}

	status.CreatedAt, err = parseTime(createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &status, nil
}

// ListStatuses returns a board's statuses in creation order.
func (s *SQLiteStore) ListStatuses(ctx context.Context, boardID int64, skip, limit int) ([]*Status, error) {
	skip, limit = clampPage(skip, limit)

	query := `
		SELECT id, board_id, name, created_at
		FROM statuses
		WHERE board_id = ?
		ORDER BY id ASC
		LIMIT ? OFFSET ?
	`

	rows, err := s.conn.QueryContext(ctx, query, boardID, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("querying statuses: %w", err)
	}
	defer rows.Close()

	var statuses []*Status
	for rows.Next() {
		var status Status
		var createdAtStr string

		if err := rows.Scan(&status.ID, &status.BoardID, &status.Name, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning status row: %w", err)
		}

		status.CreatedAt, err = parseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		statuses = append(statuses, &status)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating status rows: %w", err)
	}
	return statuses, nil
}

// UpdateStatus writes the status name. The board_id is immutable and part of
// the match, so a status can never move between boards.
// Returns ErrNotFound if the status doesn't exist on its board.
func (s *SQLiteStore) UpdateStatus(ctx context.Context, status *Status) error {
	query := `
		UPDATE statuses
		SET name = ?
		WHERE id = ? AND board_id = ?
	`

	result, err := s.conn.ExecContext(ctx, query, status.Name, status.ID, status.BoardID)
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("updated status", "id", status.ID)
	return nil
}

// DeleteStatus removes a status. Tasks pointing at it have their status link
// cleared by the schema, not deleted.
// Returns ErrNotFound if no row matched.
func (s *SQLiteStore) DeleteStatus(ctx context.Context, boardID, statusID int64) error {
	result, err := s.conn.ExecContext(ctx,
		`DELETE FROM statuses WHERE id = ? AND board_id = ?`, statusID, boardID)
	if err != nil {
		return fmt.Errorf("deleting status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted status", "id", statusID, "board_id", boardID)
	return nil
}
