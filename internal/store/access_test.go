// ABOUTME: Tests for share-grant and action-log store operations
// ABOUTME: Covers per-user grant lookup, listing, and revocation

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessStore_CreateAndGetForUser(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, store, "alice")
	bob := createTestUser(t, store, "bob")
	board := createTestBoard(t, store, alice.ID, "b")

	grant, err := store.CreateGrant(ctx, board.ID, bob.ID, true)
	require.NoError(t, err)
	assert.Positive(t, grant.ID)
	assert.True(t, grant.FullAccess)
	assert.False(t, grant.GrantedAt.IsZero())

	got, err := store.GetGrantForUser(ctx, board.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, grant.ID, got.ID)
}

func TestAccessStore_GetForUser_NoGrant(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, store, "alice")
	bob := createTestUser(t, store, "bob")
	board := createTestBoard(t, store, alice.ID, "b")

	_, err := store.GetGrantForUser(ctx, board.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccessStore_Create_MissingGrantee(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, store, "alice")
	board := createTestBoard(t, store, alice.ID, "b")

	_, err := store.CreateGrant(ctx, board.ID, 9999, true)
	assert.ErrorIs(t, err, ErrReferenceMissing)
}

func TestAccessStore_List(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, store, "alice")
	bob := createTestUser(t, store, "bob")
	carol := createTestUser(t, store, "carol")
	board := createTestBoard(t, store, alice.ID, "b")

	_, err := store.CreateGrant(ctx, board.ID, bob.ID, true)
	require.NoError(t, err)
	_, err = store.CreateGrant(ctx, board.ID, carol.ID, true)
	require.NoError(t, err)

	grants, err := store.ListGrants(ctx, board.ID, 0, 100)
	require.NoError(t, err)
	require.Len(t, grants, 2)
	assert.Equal(t, bob.ID, grants[0].UserID)
	assert.Equal(t, carol.ID, grants[1].UserID)
}

func TestAccessStore_Delete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, store, "alice")
	bob := createTestUser(t, store, "bob")
	board := createTestBoard(t, store, alice.ID, "b")

	grant, err := store.CreateGrant(ctx, board.ID, bob.ID, true)
	require.NoError(t, err)

	require.NoError(t, store.DeleteGrant(ctx, board.ID, grant.ID))

	_, err = store.GetGrantForUser(ctx, board.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Second delete reports ErrNotFound; the service layer decides
	// whether that is an error
	err = store.DeleteGrant(ctx, board.ID, grant.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActionStore_AppendAndList(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, store, "alice")

	require.NoError(t, store.AppendAction(ctx, alice.ID, "create", TargetBoard, 10))
	require.NoError(t, store.AppendAction(ctx, alice.ID, "delete", TargetBoard, 10))

	entries, err := store.ListActions(ctx, alice.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first
	assert.Equal(t, "delete", entries[0].Action)
	assert.Equal(t, "create", entries[1].Action)
	assert.Equal(t, TargetBoard, entries[0].TargetType)
	assert.Equal(t, int64(10), entries[0].TargetID)
}
