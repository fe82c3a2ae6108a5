// ABOUTME: Task operations scoped to an accessible board
// ABOUTME: Status links are validated against the task's own board at write time

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/trelliswork/trellis/internal/store"
)

// TaskUpdate carries a partial task update. Nil fields are left untouched.
// A StatusID of 0 clears the status link; any other value must name a status
// on the task's board.
type TaskUpdate struct {
	Title       *string
	Description *string
	StatusID    *int64
}

type taskStore interface {
	store.TaskStore
	store.StatusStore
}

// TaskService handles tasks for one caller.
type TaskService struct {
	store  taskStore
	guard  *Guard
	caller *store.User
	audit  *auditor
}

// checkStatus verifies the status exists on the given board. Pointing a task
// at another board's status is rejected as bad input, not a missing resource.
func (s *TaskService) checkStatus(ctx context.Context, boardID, statusID int64) error {
	_, err := s.store.GetStatus(ctx, boardID, statusID)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: status %d does not belong to board %d", ErrBadRequest, statusID, boardID)
	}
	if err != nil {
		return fmt.Errorf("checking status: %w", err)
	}
	return nil
}

// Create adds a task to a board the caller can access.
func (s *TaskService) Create(ctx context.Context, boardID int64, title, description string, statusID *int64) (*store.Task, error) {
	if _, err := s.guard.Board(ctx, s.caller, boardID); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: task title is required", ErrBadRequest)
	}
	if statusID != nil {
		if err := s.checkStatus(ctx, boardID, *statusID); err != nil {
			return nil, err
		}
	}

	task, err := s.store.CreateTask(ctx, boardID, title, description, statusID)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	s.audit.record(ctx, s.caller.ID, "create", store.TargetTask, task.ID)
	return task, nil
}

// Get returns one task of an accessible board.
func (s *TaskService) Get(ctx context.Context, boardID, taskID int64) (*store.Task, error) {
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

// List returns the board's tasks in creation order.
func (s *TaskService) List(ctx context.Context, boardID int64, skip, limit int) ([]*store.Task, error) {
	if _, err := s.guard.Board(ctx, s.caller, boardID); err != nil {
		return nil, err
	}

	tasks, err := s.store.ListTasks(ctx, boardID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

// Update applies a partial update to a task. A task never moves between
// boards.
func (s *TaskService) Update(ctx context.Context, boardID, taskID int64, update TaskUpdate) (*store.Task, error) {
	task, err := s.Get(ctx, boardID, taskID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: task title cannot be empty", ErrBadRequest)
		}
		task.Title = title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.StatusID != nil {
		switch *update.StatusID {
		case 0:
			task.StatusID = nil
		default:
			if err := s.checkStatus(ctx, boardID, *update.StatusID); err != nil {
				return nil, err
			}
			task.StatusID = update.StatusID
		}
	}

	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}

	s.audit.record(ctx, s.caller.ID, "update", store.TargetTask, task.ID)
	return task, nil
}

// Delete removes a task along with its comments and tags.
func (s *TaskService) Delete(ctx context.Context, boardID, taskID int64) error {
	if _, err := s.guard.Board(ctx, s.caller, boardID); err != nil {
		return err
	}

	err := s.store.DeleteTask(ctx, boardID, taskID)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: task %d on board %d", ErrNotFound, taskID, boardID)
	}
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	s.audit.record(ctx, s.caller.ID, "delete", store.TargetTask, taskID)
	return nil
}
