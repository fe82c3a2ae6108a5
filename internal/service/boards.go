// ABOUTME: Board operations: CRUD plus listing, with owner-only deletion
// ABOUTME: Reads are open to grant holders; update mutates only provided fields

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/trelliswork/trellis/internal/store"
)

// BoardUpdate carries a partial board update. Nil fields are left untouched.
type BoardUpdate struct {
	Title       *string
	Description *string
}

// BoardService handles board lifecycle for one caller.
type BoardService struct {
	store  store.BoardStore
	guard  *Guard
	caller *store.User
	audit  *auditor
}

// Create makes a new board owned by the caller.
func (s *BoardService) Create(ctx context.Context, title, description string) (*store.Board, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: board title is required", ErrBadRequest)
	}

	board, err := s.store.CreateBoard(ctx, s.caller.ID, title, description)
	if err != nil {
		return nil, fmt.Errorf("creating board: %w", err)
	}

	s.audit.record(ctx, s.caller.ID, "create", store.TargetBoard, board.ID)
	return board, nil
}

// Get returns a board the caller owns or holds a grant on.
func (s *BoardService) Get(ctx context.Context, boardID int64) (*store.Board, error) {
	return s.guard.Board(ctx, s.caller, boardID)
}

// List returns the caller's own boards in creation order. Shared boards are
// reachable by id but do not appear here.
func (s *BoardService) List(ctx context.Context, skip, limit int) ([]*store.Board, error) {
	boards, err := s.store.ListBoardsByOwner(ctx, s.caller.ID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("listing boards: %w", err)
	}
	return boards, nil
}

// Update applies a partial update to a board the caller can access.
// Ownership and creation time never change.
func (s *BoardService) Update(ctx context.Context, boardID int64, update BoardUpdate) (*store.Board, error) {
	board, err := s.guard.Board(ctx, s.caller, boardID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: board title cannot be empty", ErrBadRequest)
		}
		board.Title = title
	}
	if update.Description != nil {
		board.Description = *update.Description
	}

	if err := s.store.UpdateBoard(ctx, board); err != nil {
		return nil, fmt.Errorf("updating board: %w", err)
	}

	s.audit.record(ctx, s.caller.ID, "update", store.TargetBoard, board.ID)
	return board, nil
}

// Delete removes a board and everything it contains. Owner-only; grant
// holders get ErrForbidden.
func (s *BoardService) Delete(ctx context.Context, boardID int64) error {
	board, err := s.guard.OwnedBoard(ctx, s.caller, boardID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteBoard(ctx, board.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: board %d vanished mid-delete", ErrBadRequest, boardID)
		}
		return fmt.Errorf("deleting board: %w", err)
	}

	s.audit.record(ctx, s.caller.ID, "delete", store.TargetBoard, board.ID)
	return nil
}
