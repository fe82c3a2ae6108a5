// ABOUTME: Attachment entity store methods
// ABOUTME: Comment-scoped create, read, list, delete (no update)

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CreateAttachment inserts a new attachment on a comment and returns the
// stored row.
func (s *SQLiteStore) CreateAttachment(ctx context.Context, commentID int64, filePath string) (*Attachment, error) {
	query := `
		INSERT INTO attachments (comment_id, file_path, created_at)
		VALUES (?, ?, ?)
	`

	result, err := s.conn.ExecContext(ctx, query, commentID, filePath, formatTime(now()))
	if err != nil {
		if isForeignKeyError(err) {
			return nil, ErrReferenceMissing
		}
		return nil, fmt.Errorf("inserting attachment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting attachment id: %w", err)
	}

	s.logger.Debug("created attachment", "id", id, "comment_id", commentID)
	return s.GetAttachment(ctx, commentID, id)
}

// GetAttachment retrieves an attachment by id, scoped to the given comment.
// Returns ErrNotFound if no such attachment exists on that comment.
func (s *SQLiteStore) GetAttachment(ctx context.Context, commentID, attachmentID int64) (*Attachment, error) {
	query := `
		SELECT id, comment_id, file_path, created_at
		FROM attachments
		WHERE id = ? AND comment_id = ?
	`

	var att Attachment
	var createdAtStr string

	err := s.conn.QueryRowContext(ctx, query, attachmentID, commentID).Scan(
		&att.ID, &att.CommentID, &att.FilePath, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying attachment: %w", err)
	}

	att.CreatedAt, err = parseTime(createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &att, nil
}

// ListAttachments returns a comment's attachments in creation order.
func (s *SQLiteStore) ListAttachments(ctx context.Context, commentID int64, skip, limit int) ([]*Attachment, error) {
	skip, limit = clampPage(skip, limit)

	query := `
		SELECT id, comment_id, file_path, created_at
		FROM attachments
		WHERE comment_id = ?
		ORDER BY id ASC
		LIMIT ? OFFSET ?
	`

	rows, err := s.conn.QueryContext(ctx, query, commentID, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("querying attachments: %w", err)
	}
	defer rows.Close()

	var attachments []*Attachment
	for rows.Next() {
		var att Attachment
		var createdAtStr string

		if err := rows.Scan(&att.ID, &att.CommentID, &att.FilePath, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning attachment row: %w", err)
		}

		att.CreatedAt, err = parseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		attachments = append(attachments, &att)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating attachment rows: %w", err)
	}
	return attachments, nil
}

// DeleteAttachment removes an attachment record. The file itself is the
// caller's concern.
// Returns ErrNotFound if no row matched.
func (s *SQLiteStore) DeleteAttachment(ctx context.Context, commentID, attachmentID int64) error {
	result, err := s.conn.ExecContext(ctx,
		`DELETE FROM attachments WHERE id = ? AND comment_id = ?`, attachmentID, commentID)
	if err != nil {
		return fmt.Errorf("deleting attachment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted attachment", "id", attachmentID, "comment_id", commentID)
	return nil
}
