// ABOUTME: Credential checking and token resolution against the user store
// ABOUTME: Login issues a JWT; ResolveToken turns a bearer token back into a user

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/trelliswork/trellis/internal/store"
)

// ErrInvalidCredentials is returned for a bad username or password. The two
// cases are deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserLookup is the store surface the authenticator needs.
type UserLookup interface {
	GetUserByUsername(ctx context.Context, username string) (*store.User, error)
}

// Authenticator checks credentials and resolves bearer tokens to users.
type Authenticator struct {
	users    UserLookup
	verifier *JWTVerifier
	tokenTTL time.Duration
}

// NewAuthenticator creates an authenticator over the given user store.
func NewAuthenticator(users UserLookup, secret []byte, tokenTTL time.Duration) *Authenticator {
	return &Authenticator{
		users:    users,
		verifier: NewJWTVerifier(secret),
		tokenTTL: tokenTTL,
	}
}

// Login checks the credentials and returns a signed token on success.
func (a *Authenticator) Login(ctx context.Context, username, password string) (string, error) {
	user, err := a.users.GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		burnCompare(password)
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("looking up user: %w", err)
	}

	if !CheckPassword(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	token, err := a.verifier.Generate(user.Username, a.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return token, nil
}

// ResolveToken verifies the token and loads the user it names. A valid
// token for a since-deleted user resolves to ErrInvalidToken.
func (a *Authenticator) ResolveToken(ctx context.Context, tokenString string) (*store.User, error) {
	username, err := a.verifier.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := a.users.GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	return user, nil
}
