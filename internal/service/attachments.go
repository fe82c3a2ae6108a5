// ABOUTME: Attachment operations reached through board, task, and comment scoping
// ABOUTME: Attachments are immutable file references; create, read, and delete only

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/trelliswork/trellis/internal/store"
)

type attachmentStore interface {
	store.AttachmentStore
	store.CommentStore
	store.TaskStore
}

// AttachmentService handles comment attachments for one caller.
type AttachmentService struct {
	store  attachmentStore
	guard  *Guard
	caller *store.User
	audit  *auditor
}

// resolveComment gates on the board and walks task and comment containment.
func (s *AttachmentService) resolveComment(ctx context.Context, boardID, taskID, commentID int64) (*store.Comment, error) {
	if _, err := s.guard.Board(ctx, s.caller, boardID); err != nil {
		return nil, err
	}

	if _, err := s.store.GetTask(ctx, boardID, taskID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: task %d on board %d", ErrNotFound, taskID, boardID)
		}
		return nil, fmt.Errorf("getting task: %w", err)
	}

	comment, err := s.store.GetComment(ctx, taskID, commentID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: comment %d on task %d", ErrNotFound, commentID, taskID)
	}
	if err != nil {
		return nil, fmt.Errorf("getting comment: %w", err)
	}
	return comment, nil
}

// Create records a file reference on a comment.
func (s *AttachmentService) Create(ctx context.Context, boardID, taskID, commentID int64, filePath string) (*store.Attachment, error) {
	if _, err := s.resolveComment(ctx, boardID, taskID, commentID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(filePath) == "" {
		return nil, fmt.Errorf("%w: attachment file path is required", ErrBadRequest)
	}

	attachment, err := s.store.CreateAttachment(ctx, commentID, filePath)
	if err != nil {
		return nil, fmt.Errorf("creating attachment: %w", err)
	}

	s.audit.record(ctx, s.caller.ID, "create", store.TargetAttachment, attachment.ID)
	return attachment, nil
}

// Get returns one attachment of a comment on an accessible board.
func (s *AttachmentService) Get(ctx context.Context, boardID, taskID, commentID, attachmentID int64) (*store.Attachment, error) {
	if _, err := s.resolveComment(ctx, boardID, taskID, commentID); err != nil {
		return nil, err
	}

	attachment, err := s.store.GetAttachment(ctx, commentID, attachmentID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: attachment %d on comment %d", ErrNotFound, attachmentID, commentID)
	}
	if err != nil {
		return nil, fmt.Errorf("getting attachment: %w", err)
	}
	return attachment, nil
}

// List returns the comment's attachments in creation order.
func (s *AttachmentService) List(ctx context.Context, boardID, taskID, commentID int64, skip, limit int) ([]*store.Attachment, error) {
	if _, err := s.resolveComment(ctx, boardID, taskID, commentID); err != nil {
		return nil, err
	}

	attachments, err := s.store.ListAttachments(ctx, commentID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("listing attachments: %w", err)
	}
	return attachments, nil
}

// Delete removes an attachment record. The file itself is outside our remit.
func (s *AttachmentService) Delete(ctx context.Context, boardID, taskID, commentID, attachmentID int64) error {
	if _, err := s.resolveComment(ctx, boardID, taskID, commentID); err != nil {
		return err
	}

	err := s.store.DeleteAttachment(ctx, commentID, attachmentID)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: attachment %d on comment %d", ErrNotFound, attachmentID, commentID)
	}
	if err != nil {
		return fmt.Errorf("deleting attachment: %w", err)
	}

	s.audit.record(ctx, s.caller.ID, "delete", store.TargetAttachment, attachmentID)
	return nil
}
