// ABOUTME: User registration and lookup, the only unauthenticated service
// ABOUTME: Validates usernames, hashes passwords, maps duplicates to ErrConflict

package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/trelliswork/trellis/internal/auth"
	"github.com/trelliswork/trellis/internal/store"
)

// usernamePattern matches 3-32 characters, starting with a letter.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]{2,31}$`)

const minPasswordLength = 8

// UserService handles account creation and lookup. Unlike the board-scoped
// services it has no caller: registration runs before any identity exists.
type UserService struct {
	store store.UserStore
	audit *auditor
}

// NewUsers creates the user service.
func NewUsers(st Store) *UserService {
	return &UserService{store: st, audit: newAuditor(st)}
}

// Register creates a new account with a bcrypt-hashed password.
// Returns ErrBadRequest for invalid input and ErrConflict when the
// username is taken.
func (s *UserService) Register(ctx context.Context, username, password string) (*store.User, error) {
	if !usernamePattern.MatchString(username) {
		return nil, fmt.Errorf("%w: username must be 3-32 characters, start with a letter, and use only letters, digits, - or _", ErrBadRequest)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrBadRequest, minPasswordLength)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, username, hash)
	if errors.Is(err, store.ErrUsernameExists) {
		return nil, fmt.Errorf("%w: username %q is taken", ErrConflict, username)
	}
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.audit.record(ctx, user.ID, "register", store.TargetUser, user.ID)
	return user, nil
}

// Get looks up a user by id, mapping a miss to ErrNotFound.
func (s *UserService) Get(ctx context.Context, id int64) (*store.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}
