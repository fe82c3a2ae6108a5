// ABOUTME: Tag entity store methods
// ABOUTME: Task-scoped create, read, list, delete for task labels

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CreateTag inserts a new tag on a task and returns the stored row.
func (s *SQLiteStore) CreateTag(ctx context.Context, taskID int64, label string) (*Tag, error) {
	query := `
		INSERT INTO tags (task_id, label, created_at)
		VALUES (?, ?, ?)
	`

	result, err := s.conn.ExecContext(ctx, query, taskID, label, formatTime(now()))
	if err != nil {
		if isForeignKeyError(err) {
			return nil, ErrReferenceMissing
		}
		return nil, fmt.Errorf("inserting tag: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting tag id: %w", err)
	}

	s.logger.Debug("created tag", "id", id, "task_id", taskID)
	return s.GetTag(ctx, taskID, id)
}

// GetTag retrieves a tag by id, scoped to the given task.
// Returns ErrNotFound if no such tag exists on that task.
func (s *SQLiteStore) GetTag(ctx context.Context, taskID, tagID int64) (*Tag, error) {
	query := `
		SELECT id, task_id, label, created_at
		FROM tags
		WHERE id = ? AND task_id = ?
	`

	var tag Tag
	var createdAtStr string

	err := s.conn.QueryRowContext(ctx, query, tagID, taskID).Scan(
		&tag.ID, &tag.TaskID, &tag.Label, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying tag: %w", err)
	}

	tag.CreatedAt, err = parseTime(createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &tag, nil
}

// ListTags returns a task's tags in creation order.
func (s *SQLiteStore) ListTags(ctx context.Context, taskID int64, skip, limit int) ([]*Tag, error) {
	skip, limit = clampPage(skip, limit)

	query := `
		SELECT id, task_id, label, created_at
		FROM tags
		WHERE task_id = ?
		ORDER BY id ASC
		LIMIT ? OFFSET ?
	`

	rows, err := s.conn.QueryContext(ctx, query, taskID, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	var tags []*Tag
	for rows.Next() {
		var tag Tag
		var createdAtStr string

		if err := rows.Scan(&tag.ID, &tag.TaskID, &tag.Label, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning tag row: %w", err)
		}

		tag.CreatedAt, err = parseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		tags = append(tags, &tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tag rows: %w", err)
	}
	return tags, nil
}

// DeleteTag removes a tag.
// Returns ErrNotFound if no row matched.
func (s *SQLiteStore) DeleteTag(ctx context.Context, taskID, tagID int64) error {
	result, err := s.conn.ExecContext(ctx,
		`DELETE FROM tags WHERE id = ? AND task_id = ?`, tagID, taskID)
	if err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted tag", "id", tagID, "task_id", taskID)
	return nil
}
