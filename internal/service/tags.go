// ABOUTME: Tag operations reached through board and task scoping
// ABOUTME: Tags are immutable labels; create, read, and delete only

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/trelliswork/trellis/internal/store"
)

type tagStore interface {
	store.TagStore
	store.TaskStore
}

// TagService handles task tags for one caller.
type TagService struct {
	store  tagStore
	guard  *Guard
	caller *store.User
	audit  *auditor
}

func (s *TagService) resolveTask(ctx context.Context, boardID, taskID int64) error {
	if _, err := s.guard.Board(ctx, s.caller, boardID); err != nil {
		return err
	}

	_, err := s.store.GetTask(ctx, boardID, taskID)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: task %d on board %d", ErrNotFound, taskID, boardID)
	}
	if err != nil {
		return fmt.Errorf("getting task: %w", err)
	}
	return nil
}

// Create labels a task.
func (s *TagService) Create(ctx context.Context, boardID, taskID int64, label string) (*store.Tag, error) {
	if err := s.resolveTask(ctx, boardID, taskID); err != nil {
		return nil, err
	}

	label = strings.TrimSpace(label)
	if label == "" {
		return nil, fmt.Errorf("%w: tag label is required", ErrBadRequest)
	}

	tag, err := s.store.CreateTag(ctx, taskID, label)
	if err != nil {
		return nil, fmt.Errorf("creating tag: %w", err)
	}

	s.audit.record(ctx, s.caller.ID, "create", store.TargetTag, tag.ID)
	return tag, nil
}

// Get returns one tag of a task on an accessible board.
func (s *TagService) Get(ctx context.Context, boardID, taskID, tagID int64) (*store.Tag, error) {
	if err := s.resolveTask(ctx, boardID, taskID); err != nil {
		return nil, err
	}

	tag, err := s.store.GetTag(ctx, taskID, tagID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: tag %d on task %d", ErrNotFound, tagID, taskID)
	}
	if err != nil {
		return nil, fmt.Errorf("getting tag: %w", err)
	}
	return tag, nil
}

// List returns the task's tags in creation order.
func (s *TagService) List(ctx context.Context, boardID, taskID int64, skip, limit int) ([]*store.Tag, error) {
	if err := s.resolveTask(ctx, boardID, taskID); err != nil {
		return nil, err
	}

	tags, err := s.store.ListTags(ctx, taskID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return tags, nil
}

// Delete removes a tag from a task.
func (s *TagService) Delete(ctx context.Context, boardID, taskID, tagID int64) error {
	if err := s.resolveTask(ctx, boardID, taskID); err != nil {
		return err
	}

	err := s.store.DeleteTag(ctx, taskID, tagID)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: tag %d on task %d", ErrNotFound, tagID, taskID)
	}
	if err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}

	s.audit.record(ctx, s.caller.ID, "delete", store.TargetTag, tagID)
	return nil
}
