// ABOUTME: Comment operations reached through board and task scoping
// ABOUTME: The caller becomes the author; content is required non-empty

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/trelliswork/trellis/internal/store"
)

// CommentUpdate carries a partial comment update. Nil fields are left untouched.
type CommentUpdate struct {
	Content *string
}

type commentStore interface {
	store.CommentStore
	store.TaskStore
}

// CommentService handles task comments for one caller.
type CommentService struct {
	store  commentStore
	guard  *Guard
	caller *store.User
	audit  *auditor
}

// resolveTask gates on the board and confirms the task lives on it.
func (s *CommentService) resolveTask(ctx context.Context, boardID, taskID int64) (*store.Task, error) {
	if _, err := s.guard.Board(ctx, s.caller, boardID); err != nil {
		return nil, err
	}

	task, err := s.store.GetTask(ctx, boardID, taskID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: task %d on board %d", ErrNotFound, taskID, boardID)
	}
	if err != nil {
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return task, nil
}

// Create adds a comment to a task, authored by the caller.
func (s *CommentService) Create(ctx context.Context, boardID, taskID int64, content string) (*store.Comment, error) {
	if _, err := s.resolveTask(ctx, boardID, taskID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: comment content is required", ErrBadRequest)
	}

	comment, err := s.store.CreateComment(ctx, taskID, s.caller.ID, content)
	if err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	s.audit.record(ctx, s.caller.ID, "create", store.TargetComment, comment.ID)
	return comment, nil
}

// Get returns one comment of a task on an accessible board.
func (s *CommentService) Get(ctx context.Context, boardID, taskID, commentID int64) (*store.Comment, error) {
	if _, err := s.resolveTask(ctx, boardID, taskID); err != nil {
		return nil, err
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

// List returns the task's comments in creation order.
func (s *CommentService) List(ctx context.Context, boardID, taskID int64, skip, limit int) ([]*store.Comment, error) {
	if _, err := s.resolveTask(ctx, boardID, taskID); err != nil {
		return nil, err
	}

	comments, err := s.store.ListComments(ctx, taskID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return comments, nil
}

// Update applies a partial update to a comment. Authorship never changes;
// anyone with board access may edit, matching the board-wide write model.
func (s *CommentService) Update(ctx context.Context, boardID, taskID, commentID int64, update CommentUpdate) (*store.Comment, error) {
	comment, err := s.Get(ctx, boardID, taskID, commentID)
	if err != nil {
		return nil, err
	}

	if update.Content != nil {
		if strings.TrimSpace(*update.Content) == "" {
			return nil, fmt.Errorf("%w: comment content cannot be empty", ErrBadRequest)
		}
		comment.Content = *update.Content
	}

	if err := s.store.UpdateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("updating comment: %w", err)
	}

	s.audit.record(ctx, s.caller.ID, "update", store.TargetComment, comment.ID)
	return comment, nil
}

// Delete removes a comment along with its attachments.
func (s *CommentService) Delete(ctx context.Context, boardID, taskID, commentID int64) error {
	if _, err := s.resolveTask(ctx, boardID, taskID); err != nil {
		return err
	}

	err := s.store.DeleteComment(ctx, taskID, commentID)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: comment %d on task %d", ErrNotFound, commentID, taskID)
	}
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}

	s.audit.record(ctx, s.caller.ID, "delete", store.TargetComment, commentID)
	return nil
}
