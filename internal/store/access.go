// ABOUTME: BoardAccess share-grant store methods
// ABOUTME: Grant creation, per-user lookup for the access predicate, listing, revocation

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CreateGrant inserts a share grant and returns the stored row. The store
// does not enforce one-grant-per-user; that check belongs to the service.
func (s *SQLiteStore) CreateGrant(ctx context.Context, boardID, userID int64, fullAccess bool) (*BoardAccess, error) {
	query := `
		INSERT INTO board_access (board_id, user_id, full_access, granted_at)
		VALUES (?, ?, ?, ?)
	`

	result, err := s.conn.ExecContext(ctx, query, boardID, userID, fullAccess, formatTime(now()))
	if err != nil {
		if isForeignKeyError(err) {
			return nil, ErrReferenceMissing
		}
		return nil, fmt.Errorf("inserting grant: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting grant id: %w", err)
	}

	s.logger.Info("created grant", "id", id, "board_id", boardID, "user_id", userID)
	return s.GetGrant(ctx, boardID, id)
}

// GetGrant retrieves a grant by id, scoped to the given board.
// Returns ErrNotFound if no such grant exists on that board.
func (s *SQLiteStore) GetGrant(ctx context.Context, boardID, accessID int64) (*BoardAccess, error) {
	query := `
		SELECT id, board_id, user_id, full_access, granted_at
		FROM board_access
		WHERE id = ? AND board_id = ?
	`
	return s.scanGrant(s.conn.QueryRowContext(ctx, query, accessID, boardID))
}

// GetGrantForUser retrieves the grant a user holds on a board, if any.
// This is the lookup behind the access predicate.
// Returns ErrNotFound if the user holds no grant.
func (s *SQLiteStore) GetGrantForUser(ctx context.Context, boardID, userID int64) (*BoardAccess, error) {
	query := `
		SELECT id, board_id, user_id, full_access, granted_at
		FROM board_access
		WHERE board_id = ? AND user_id = ?
		ORDER BY id ASC
		LIMIT 1
	`
	return s.scanGrant(s.conn.QueryRowContext(ctx, query, boardID, userID))
}

// ListGrants returns a board's grants in grant order.
func (s *SQLiteStore) ListGrants(ctx context.Context, boardID int64, skip, limit int) ([]*BoardAccess, error) {
	skip, limit = clampPage(skip, limit)

	query := `
		SELECT id, board_id, user_id, full_access, granted_at
		FROM board_access
		WHERE board_id = ?
		ORDER BY id ASC
		LIMIT ? OFFSET ?
	`

	rows, err := s.conn.QueryContext(ctx, query, boardID, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("querying grants: %w", err)
	}
	defer rows.Close()

	var grants []*BoardAccess
	for rows.Next() {
		var grant BoardAccess
		var grantedAtStr string

		if err := rows.Scan(&grant.ID, &grant.BoardID, &grant.UserID, &grant.FullAccess, &grantedAtStr); err != nil {
			return nil, fmt.Errorf("scanning grant row: %w", err)
		}

		grant.GrantedAt, err = parseTime(grantedAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing granted_at: %w", err)
		}
		grants = append(grants, &grant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating grant rows: %w", err)
	}
	return grants, nil
}

// DeleteGrant removes a grant.
// Returns ErrNotFound if no row matched; the service treats that as a no-op.
func (s *SQLiteStore) DeleteGrant(ctx context.Context, boardID, accessID int64) error {
	result, err := s.conn.ExecContext(ctx,
		`DELETE FROM board_access WHERE id = ? AND board_id = ?`, accessID, boardID)
	if err != nil {
		return fmt.Errorf("deleting grant: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Info("deleted grant", "id", accessID, "board_id", boardID)
	return nil
}

func (s *SQLiteStore) scanGrant(row *sql.Row) (*BoardAccess, error) {
	var grant BoardAccess
	var grantedAtStr string

	err := row.Scan(&grant.ID, &grant.BoardID, &grant.UserID, &grant.FullAccess, &grantedAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning grant: %w", err)
	}

	grant.GrantedAt, err = parseTime(grantedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing granted_at: %w", err)
	}

	return &grant, nil
}
