// ABOUTME: Tests for task and status services, including status link rules
// ABOUTME: Cross-board status assignment is bad input, not a missing resource

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trelliswork/trellis/internal/store"
)

func setupBoard(t *testing.T, st *store.SQLiteStore) (*Services, *store.Board) {
	t.Helper()
	alice := createTestUser(t, st, "alice")
	svc := New(st, alice)
	board, err := svc.Boards.Create(context.Background(), "work", "")
	require.NoError(t, err)
	return svc, board
}

func TestStatuses_CreateGetUpdateDelete(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()
	svc, board := setupBoard(t, st)

	status, err := svc.Statuses.Create(ctx, board.ID, "Todo")
	require.NoError(t, err)

	name := "In Progress"
	updated, err := svc.Statuses.Update(ctx, board.ID, status.ID, StatusUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "In Progress", updated.Name)

	require.NoError(t, svc.Statuses.Delete(ctx, board.ID, status.ID))

	_, err = svc.Statuses.Get(ctx, board.ID, status.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatuses_DeleteDetachesTasks(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()
	svc, board := setupBoard(t, st)

	status, err := svc.Statuses.Create(ctx, board.ID, "Todo")
	require.NoError(t, err)
	task, err := svc.Tasks.Create(ctx, board.ID, "write docs", "", &status.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Statuses.Delete(ctx, board.ID, status.ID))

	got, err := svc.Tasks.Get(ctx, board.ID, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.StatusID, "task survives with its status link cleared")
}

func TestTasks_Create_CrossBoardStatusRejected(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()
	svc, board := setupBoard(t, st)

	other, err := svc.Boards.Create(ctx, "other", "")
	require.NoError(t, err)
	foreign, err := svc.Statuses.Create(ctx, other.ID, "Elsewhere")
	require.NoError(t, err)

	_, err = svc.Tasks.Create(ctx, board.ID, "task", "", &foreign.ID)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestTasks_Update_CrossBoardStatusRejected(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()
	svc, board := setupBoard(t, st)

	other, err := svc.Boards.Create(ctx, "other", "")
	require.NoError(t, err)
	foreign, err := svc.Statuses.Create(ctx, other.ID, "Elsewhere")
	require.NoError(t, err)
	task, err := svc.Tasks.Create(ctx, board.ID, "task", "", nil)
	require.NoError(t, err)

	_, err = svc.Tasks.Update(ctx, board.ID, task.ID, TaskUpdate{StatusID: &foreign.ID})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestTasks_Update_SetAndClearStatus(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()
	svc, board := setupBoard(t, st)

	status, err := svc.Statuses.Create(ctx, board.ID, "Todo")
	require.NoError(t, err)
	task, err := svc.Tasks.Create(ctx, board.ID, "task", "", nil)
	require.NoError(t, err)

	updated, err := svc.Tasks.Update(ctx, board.ID, task.ID, TaskUpdate{StatusID: &status.ID})
	require.NoError(t, err)
	require.NotNil(t, updated.StatusID)
	assert.Equal(t, status.ID, *updated.StatusID)

	var clear int64 // zero clears the link
	updated, err = svc.Tasks.Update(ctx, board.ID, task.ID, TaskUpdate{StatusID: &clear})
	require.NoError(t, err)
	assert.Nil(t, updated.StatusID)
}

func TestTasks_Update_Partial(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()
	svc, board := setupBoard(t, st)

	task, err := svc.Tasks.Create(ctx, board.ID, "original", "details", nil)
	require.NoError(t, err)

	desc := "new details"
	updated, err := svc.Tasks.Update(ctx, board.ID, task.ID, TaskUpdate{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "original", updated.Title, "omitted field untouched")
	assert.Equal(t, "new details", updated.Description)
}

func TestTasks_Get_WrongBoardIsNotFound(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()
	svc, board := setupBoard(t, st)

	other, err := svc.Boards.Create(ctx, "other", "")
	require.NoError(t, err)
	task, err := svc.Tasks.Create(ctx, board.ID, "task", "", nil)
	require.NoError(t, err)

	_, err = svc.Tasks.Get(ctx, other.ID, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTasks_ForbiddenForStranger(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()
	svc, board := setupBoard(t, st)
	task, err := svc.Tasks.Create(ctx, board.ID, "task", "", nil)
	require.NoError(t, err)

	mallory := createTestUser(t, st, "mallory")
	mallorySvc := New(st, mallory)

	_, err = mallorySvc.Tasks.Get(ctx, board.ID, task.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = mallorySvc.Tasks.List(ctx, board.ID, 0, 100)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestTags_CreateListDelete(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()
	svc, board := setupBoard(t, st)
	task, err := svc.Tasks.Create(ctx, board.ID, "task", "", nil)
	require.NoError(t, err)

	tag, err := svc.Tags.Create(ctx, board.ID, task.ID, "urgent")
	require.NoError(t, err)
	assert.Equal(t, "urgent", tag.Label)

	tags, err := svc.Tags.List(ctx, board.ID, task.ID, 0, 100)
	require.NoError(t, err)
	assert.Len(t, tags, 1)

	require.NoError(t, svc.Tags.Delete(ctx, board.ID, task.ID, tag.ID))

	_, err = svc.Tags.Get(ctx, board.ID, task.ID, tag.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
