// ABOUTME: Shared test setup plus guard and registration coverage
// ABOUTME: Uses a real SQLite store in a temp dir, one scenario per test

package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trelliswork/trellis/internal/store"
)

func setupTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, st.Close())
	})
	return st
}

// createTestUser inserts a user directly; Register's bcrypt work is covered
// separately and too slow to repeat in every test.
func createTestUser(t *testing.T, st *store.SQLiteStore, username string) *store.User {
	t.Helper()
	user, err := st.CreateUser(context.Background(), username, "fake-hash")
	require.NoError(t, err)
	return user
}

func TestRegister(t *testing.T) {
	st := setupTestStore(t)
	users := NewUsers(st)

	user, err := users.Register(context.Background(), "alice", "longenough")
	require.NoError(t, err)
	assert.Positive(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "longenough", user.PasswordHash)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	st := setupTestStore(t)
	users := NewUsers(st)
	ctx := context.Background()

	_, err := users.Register(ctx, "alice", "longenough")
	require.NoError(t, err)

	_, err = users.Register(ctx, "alice", "alsolongenough")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegister_InvalidInput(t *testing.T) {
	st := setupTestStore(t)
	users := NewUsers(st)
	ctx := context.Background()

	_, err := users.Register(ctx, "ab", "longenough")
	assert.ErrorIs(t, err, ErrBadRequest, "too-short username")

	_, err = users.Register(ctx, "1leading-digit", "longenough")
	assert.ErrorIs(t, err, ErrBadRequest, "username must start with a letter")

	_, err = users.Register(ctx, "alice", "short")
	assert.ErrorIs(t, err, ErrBadRequest, "too-short password")
}

func TestGuard_OwnerMayAct(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, st, "alice")
	board, err := st.CreateBoard(ctx, alice.ID, "plans", "")
	require.NoError(t, err)

	guard := NewGuard(st)
	got, err := guard.Board(ctx, alice, board.ID)
	require.NoError(t, err)
	assert.Equal(t, board.ID, got.ID)
}

func TestGuard_StrangerForbidden(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, st, "alice")
	bob := createTestUser(t, st, "bob")
	board, err := st.CreateBoard(ctx, alice.ID, "plans", "")
	require.NoError(t, err)

	guard := NewGuard(st)
	_, err = guard.Board(ctx, bob, board.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGuard_GrantHolderMayAct(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, st, "alice")
	bob := createTestUser(t, st, "bob")
	board, err := st.CreateBoard(ctx, alice.ID, "plans", "")
	require.NoError(t, err)
	_, err = st.CreateGrant(ctx, board.ID, bob.ID, true)
	require.NoError(t, err)

	guard := NewGuard(st)
	got, err := guard.Board(ctx, bob, board.ID)
	require.NoError(t, err)
	assert.Equal(t, board.ID, got.ID)
}

func TestGuard_MissingBoardIsNotFound(t *testing.T) {
	st := setupTestStore(t)
	alice := createTestUser(t, st, "alice")

	guard := NewGuard(st)
	_, err := guard.Board(context.Background(), alice, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGuard_OwnedBoard_GrantHolderForbidden(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, st, "alice")
	bob := createTestUser(t, st, "bob")
	board, err := st.CreateBoard(ctx, alice.ID, "plans", "")
	require.NoError(t, err)
	_, err = st.CreateGrant(ctx, board.ID, bob.ID, true)
	require.NoError(t, err)

	guard := NewGuard(st)
	_, err = guard.OwnedBoard(ctx, bob, board.ID)
	assert.ErrorIs(t, err, ErrForbidden, "a grant never confers ownership")
}
