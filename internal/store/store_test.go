// ABOUTME: Shared test helpers and user store tests
// ABOUTME: Uses a temp-dir SQLite database per test

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

func createTestUser(t *testing.T, s *SQLiteStore, username string) *User {
	t.Helper()
	user, err := s.CreateUser(context.Background(), username, "$2a$10$fakehashfakehashfakehash")
	require.NoError(t, err)
	return user
}

func createTestBoard(t *testing.T, s *SQLiteStore, ownerID int64, title string) *Board {
	t.Helper()
	board, err := s.CreateBoard(context.Background(), ownerID, title, "")
	require.NoError(t, err)
	return board
}

func createTestTask(t *testing.T, s *SQLiteStore, boardID int64, title string) *Task {
	t.Helper()
	task, err := s.CreateTask(context.Background(), boardID, title, "", nil)
	require.NoError(t, err)
	return task
}

func TestUserStore_Create(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "alice", "hash-a")
	require.NoError(t, err)

	assert.Positive(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "hash-a", user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero(), "store should assign created_at")
}

func TestUserStore_Create_DuplicateUsername(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.CreateUser(ctx, "alice", "hash-a")
	require.NoError(t, err)

	_, err = store.CreateUser(ctx, "alice", "hash-b")
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestUserStore_Get(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	created := createTestUser(t, store, "alice")

	user, err := store.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, "alice", user.Username)
}

func TestUserStore_Get_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetUser(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserStore_GetByUsername(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	created := createTestUser(t, store, "bob")

	user, err := store.GetUserByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = store.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserStore_MonotonicIDs(t *testing.T) {
	store := setupTestStore(t)

	a := createTestUser(t, store, "a")
	b := createTestUser(t, store, "b")
	c := createTestUser(t, store, "c")

	assert.Less(t, a.ID, b.ID)
	assert.Less(t, b.ID, c.ID)
}

func TestStore_Tx_CommitOnSuccess(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	var userID int64
	err := store.Tx(ctx, func(tx *SQLiteStore) error {
		user, err := tx.CreateUser(ctx, "alice", "hash")
		if err != nil {
			return err
		}
		userID = user.ID
		return nil
	})
	require.NoError(t, err)

	// Visible outside the transaction
	user, err := store.GetUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestStore_Tx_RollbackOnError(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	boom := assert.AnError
	err := store.Tx(ctx, func(tx *SQLiteStore) error {
		if _, err := tx.CreateUser(ctx, "alice", "hash"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// The insert must have been rolled back
	_, err = store.GetUserByUsername(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Tx_Nested(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	err := store.Tx(ctx, func(tx *SQLiteStore) error {
		// A nested Tx reuses the open transaction instead of deadlocking
		return tx.Tx(ctx, func(inner *SQLiteStore) error {
			_, err := inner.CreateUser(ctx, "alice", "hash")
			return err
		})
	})
	require.NoError(t, err)

	_, err = store.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
}
