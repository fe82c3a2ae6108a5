// ABOUTME: Share-grant operations: granting, listing, and revoking board access
// ABOUTME: Any accessor may manage grants; revoking a missing grant is a no-op

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/trelliswork/trellis/internal/store"
)

type accessStore interface {
	store.AccessStore
}

// AccessService handles board share grants for one caller.
type AccessService struct {
	store  accessStore
	guard  *Guard
	caller *store.User
	audit  *auditor
}

// Grant gives a user access to a board. Returns ErrConflict when the user
// already holds a grant or owns the board, and ErrBadRequest when the
// grantee does not exist.
func (s *AccessService) Grant(ctx context.Context, boardID, userID int64, fullAccess bool) (*store.BoardAccess, error) {
	board, err := s.guard.Board(ctx, s.caller, boardID)
	if err != nil {
		return nil, err
	}

	if userID == board.OwnerID {
		return nil, fmt.Errorf("%w: user %d already owns board %d", ErrConflict, userID, boardID)
	}

	if _, err := s.store.GetGrantForUser(ctx, boardID, userID); err == nil {
		return nil, fmt.Errorf("%w: user %d already has access to board %d", ErrConflict, userID, boardID)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking existing grant: %w", err)
	}

	grant, err := s.store.CreateGrant(ctx, boardID, userID, fullAccess)
	if errors.Is(err, store.ErrReferenceMissing) {
		return nil, fmt.Errorf("%w: user %d does not exist", ErrBadRequest, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("creating grant: %w", err)
	}

	s.audit.record(ctx, s.caller.ID, "grant", store.TargetGrant, grant.ID)
	return grant, nil
}

// Get returns one grant on an accessible board.
func (s *AccessService) Get(ctx context.Context, boardID, accessID int64) (*store.BoardAccess, error) {
	if _, err := s.guard.Board(ctx, s.caller, boardID); err != nil {
		return nil, err
	}

	grant, err := s.store.GetGrant(ctx, boardID, accessID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: grant %d on board %d", ErrNotFound, accessID, boardID)
	}
	if err != nil {
		return nil, fmt.Errorf("getting grant: %w", err)
	}
	return grant, nil
}

// List returns the board's grants in creation order.
func (s *AccessService) List(ctx context.Context, boardID int64, skip, limit int) ([]*store.BoardAccess, error) {
	if _, err := s.guard.Board(ctx, s.caller, boardID); err != nil {
		return nil, err
	}

	grants, err := s.store.ListGrants(ctx, boardID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("listing grants: %w", err)
	}
	return grants, nil
}

// Revoke removes a grant. Revoking a grant that is already gone succeeds:
// the caller asked for an end state, not a row.
func (s *AccessService) Revoke(ctx context.Context, boardID, accessID int64) error {
	if _, err := s.guard.Board(ctx, s.caller, boardID); err != nil {
		return err
	}

	err := s.store.DeleteGrant(ctx, boardID, accessID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("revoking grant: %w", err)
	}

	s.audit.record(ctx, s.caller.ID, "revoke", store.TargetGrant, accessID)
	return nil
}
