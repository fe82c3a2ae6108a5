// ABOUTME: Status operations scoped to an accessible board
// ABOUTME: Deleting a status detaches its tasks rather than deleting them

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/trelliswork/trellis/internal/store"
)

// StatusUpdate carries a partial status update. Nil fields are left untouched.
type StatusUpdate struct {
	Name *string
}

// StatusService handles per-board status columns for one caller.
type StatusService struct {
	store  store.StatusStore
	guard  *Guard
	caller *store.User
	audit  *auditor
}

// Create adds a status to a board the caller can access.
func (s *StatusService) Create(ctx context.Context, boardID int64, name string) (*store.Status, error) {
	if _, err := s.guard.Board(ctx, s.caller, boardID); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: status name is required", ErrBadRequest)
	}

	status, err := s.store.CreateStatus(ctx, boardID, name)
	if err != nil {
		return nil, fmt.Errorf("creating status: %w", err)
	}

	s.audit.record(ctx, s.caller.ID, "create", store.TargetStatus, status.ID)
	return status, nil
}

// Get returns one status of an accessible board.
func (s *StatusService) Get(ctx context.Context, boardID, statusID int64) (*store.Status, error) {
	if _, err := s.guard.Board(ctx, s.caller, boardID); err != nil {
		return nil, err
	}

	status, err := s.store.GetStatus(ctx, boardID, statusID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: status %d on board %d", ErrNotFound, statusID, boardID)
	}
	if err != nil {
		return nil, fmt.Errorf("getting status: %w", err)
	}
	return status, nil
}

// List returns the board's statuses in creation order.
func (s *StatusService) List(ctx context.Context, boardID int64, skip, limit int) ([]*store.Status, error) {
	if _, err := s.guard.Board(ctx, s.caller, boardID); err != nil {
		return nil, err
	}

	statuses, err := s.store.ListStatuses(ctx, boardID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("listing statuses: %w", err)
	}
	return statuses, nil
}

// Update applies a partial update to a status. A status never moves between
// boards.
func (s *StatusService) Update(ctx context.Context, boardID, statusID int64, update StatusUpdate) (*store.Status, error) {
	status, err := s.Get(ctx, boardID, statusID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: status name cannot be empty", ErrBadRequest)
		}
		status.Name = name
	}

	if err := s.store.UpdateStatus(ctx, status); err != nil {
		return nil, fmt.Errorf("updating status: %w", err)
	}

	s.audit.record(ctx, s.caller.ID, "update", store.TargetStatus, status.ID)
	return status, nil
}

// Delete removes a status. Tasks pointing at it keep existing with their
// status link cleared.
func (s *StatusService) Delete(ctx context.Context, boardID, statusID int64) error {
	if _, err := s.guard.Board(ctx, s.caller, boardID); err != nil {
		return err
	}

	err := s.store.DeleteStatus(ctx, boardID, statusID)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: status %d on board %d", ErrNotFound, statusID, boardID)
	}
	if err != nil {
		return fmt.Errorf("deleting status: %w", err)
	}

	s.audit.record(ctx, s.caller.ID, "delete", store.TargetStatus, statusID)
	return nil
}
