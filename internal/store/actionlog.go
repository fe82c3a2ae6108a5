// ABOUTME: Append-only action log store methods
// ABOUTME: Records user-visible mutations for audit purposes

package store

import (
	"context"
	"fmt"
)

// Action log target types.
const (
	TargetBoard      = "board"
	TargetStatus     = "status"
	TargetTask       = "task"
	TargetComment    = "comment"
	TargetAttachment = "attachment"
	TargetTag        = "tag"
	TargetGrant      = "grant"
	TargetUser       = "user"
)

// AppendAction records a mutation performed by a user.
func (s *SQLiteStore) AppendAction(ctx context.Context, userID int64, action, targetType string, targetID int64) error {
	query := `
		INSERT INTO action_log (user_id, action, target_type, target_id, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.conn.ExecContext(ctx, query, userID, action, targetType, targetID, formatTime(now()))
	if err != nil {
		return fmt.Errorf("inserting action entry: %w", err)
	}

	s.logger.Debug("appended action", "user_id", userID, "action", action, "target_type", targetType, "target_id", targetID)
	return nil
}

// ListActions returns a user's most recent actions, newest first.
// If limit is 0 or negative, a default of 100 is used.
func (s *SQLiteStore) ListActions(ctx context.Context, userID int64, limit int) ([]*ActionEntry, error) {
	_, limit = clampPage(0, limit)

	query := `
		SELECT id, user_id, action, target_type, target_id, created_at
		FROM action_log
		WHERE user_id = ?
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := s.conn.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying action log: %w", err)
	}
	defer rows.Close()

	var entries []*ActionEntry
	for rows.Next() {
		var entry ActionEntry
		var createdAtStr string

		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Action, &entry.TargetType, &entry.TargetID, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning action entry: %w", err)
		}

		entry.CreatedAt, err = parseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating action entries: %w", err)
	}
	return entries, nil
}
