// ABOUTME: Centralized board access gate used by every board-scoped operation
// ABOUTME: Owner OR grant-holder may act; board deletion and similar are owner-only

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/trelliswork/trellis/internal/store"
)

// GuardStore is the minimal store surface the access gate needs.
type GuardStore interface {
	GetBoard(ctx context.Context, id int64) (*store.Board, error)
	GetGrantForUser(ctx context.Context, boardID, userID int64) (*store.BoardAccess, error)
}

// Guard decides whether a user may act on a board. Every service routes its
// board-scoped reads and writes through one of the two methods here, so no
// endpoint can forget the check. The predicate is evaluated fresh on each
// call and has no side effects.
type Guard struct {
	store GuardStore
}

// NewGuard creates an access gate over the given store.
func NewGuard(s GuardStore) *Guard {
	return &Guard{store: s}
}

// Board resolves the board and requires the caller to be its owner or hold a
// share grant on it. Returns ErrNotFound when the board does not exist and
// ErrForbidden when it exists but the caller has no rights to it.
//
// A grant of any kind confers the same rights as ownership for everything
// except the owner-only operations; full_access is stored but not yet
// consulted here.
func (g *Guard) Board(ctx context.Context, caller *store.User, boardID int64) (*store.Board, error) {
	board, err := g.store.GetBoard(ctx, boardID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: board %d", ErrNotFound, boardID)
	}
	if err != nil {
		return nil, fmt.Errorf("resolving board: %w", err)
	}

	if board.OwnerID == caller.ID {
		return board, nil
	}

	_, err = g.store.GetGrantForUser(ctx, boardID, caller.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: board %d", ErrForbidden, boardID)
	}
	if err != nil {
		return nil, fmt.Errorf("resolving grant: %w", err)
	}

	return board, nil
}

// OwnedBoard resolves the board and requires the caller to be its owner.
// Grant holders get ErrForbidden; delete and similar destructive operations
// are strictly owner-only.
func (g *Guard) OwnedBoard(ctx context.Context, caller *store.User, boardID int64) (*store.Board, error) {
	board, err := g.store.GetBoard(ctx, boardID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: board %d", ErrNotFound, boardID)
	}
	if err != nil {
		return nil, fmt.Errorf("resolving board: %w", err)
	}

	if board.OwnerID != caller.ID {
		return nil, fmt.Errorf("%w: board %d is not owned by caller", ErrForbidden, boardID)
	}

	return board, nil
}
