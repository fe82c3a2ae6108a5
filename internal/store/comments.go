// ABOUTME: Comment entity store methods
// ABOUTME: Task-scoped CRUD recording the authoring user

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CreateComment inserts a new comment on a task and returns the stored row.
func (s *SQLiteStore) CreateComment(ctx context.Context, taskID, authorID int64, content string) (*Comment, error) {
	query := `
		INSERT INTO comments (task_id, author_id, content, created_at)
		VALUES (?, ?, ?, ?)
	`

	result, err := s.conn.ExecContext(ctx, query, taskID, authorID, content, formatTime(now()))
	if err != nil {
		if isForeignKeyError(err) {
			return nil, ErrReferenceMissing
		}
		return nil, fmt.Errorf("inserting comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting comment id: %w", err)
	}

	s.logger.Debug("created comment", "id", id, "task_id", taskID, "author_id", authorID)
	return s.GetComment(ctx, taskID, id)
}

// GetComment retrieves a comment by id, scoped to the given task.
// Returns ErrNotFound if no such comment exists on that task.
func (s *SQLiteStore) GetComment(ctx context.Context, taskID, commentID int64) (*Comment, error) {
	query := `
		SELECT id, task_id, author_id, content, created_at
		FROM comments
		WHERE id = ? AND task_id = ?
	`

	var comment Comment
	var createdAtStr string

	err := s.conn.QueryRowContext(ctx, query, commentID, taskID).Scan(
		&comment.ID, &comment.TaskID, &comment.AuthorID, &comment.Content, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying comment: %w", err)
	}

	comment.CreatedAt, err = parseTime(createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &comment, nil
}

// ListComments returns a task's comments in creation order.
func (s *SQLiteStore) ListComments(ctx context.Context, taskID int64, skip, limit int) ([]*Comment, error) {
	skip, limit = clampPage(skip, limit)

	query := `
		SELECT id, task_id, author_id, content, created_at
		FROM comments
		WHERE task_id = ?
		ORDER BY id ASC
		LIMIT ? OFFSET ?
	`

	rows, err := s.conn.QueryContext(ctx, query, taskID, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("querying comments: %w", err)
	}
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		var comment Comment
		var createdAtStr string

		if err := rows.Scan(&comment.ID, &comment.TaskID, &comment.AuthorID, &comment.Content, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning comment row: %w", err)
		}

		comment.CreatedAt, err = parseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comment rows: %w", err)
	}
	return comments, nil
}

// UpdateComment writes the comment content. Author and task are immutable.
// Returns ErrNotFound if the comment doesn't exist on its task.
func (s *SQLiteStore) UpdateComment(ctx context.Context, comment *Comment) error {
	query := `
		UPDATE comments
		SET content = ?
		WHERE id = ? AND task_id = ?
	`

	result, err := s.conn.ExecContext(ctx, query, comment.Content, comment.ID, comment.TaskID)
	if err != nil {
		return fmt.Errorf("updating comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("updated comment", "id", comment.ID)
	return nil
}

// DeleteComment removes a comment and, via cascade, its attachments.
// Returns ErrNotFound if no row matched.
func (s *SQLiteStore) DeleteComment(ctx context.Context, taskID, commentID int64) error {
	result, err := s.conn.ExecContext(ctx,
		`DELETE FROM comments WHERE id = ? AND task_id = ?`, commentID, taskID)
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted comment", "id", commentID, "task_id", taskID)
	return nil
}
