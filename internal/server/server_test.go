// ABOUTME: HTTP API tests covering auth flow, status codes, and routing
// ABOUTME: Runs the full handler stack against a real SQLite store

package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trelliswork/trellis/internal/auth"
	"github.com/trelliswork/trellis/internal/store"
)

type testAPI struct {
	t       *testing.T
	handler http.Handler
}

func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()
	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, st.Close())
	})

	authenticator := auth.NewAuthenticator(st, []byte("test-secret-test-secret-test-sec"), time.Hour)
	srv := New(st, authenticator)
	return &testAPI{t: t, handler: srv.Handler()}
}

// do sends a request with an optional JSON body and bearer token.
func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

// signup registers a user and returns a bearer token for them.
func (a *testAPI) signup(username string) string {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/register", "", map[string]string{
		"username": username,
		"password": "longenough",
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do(http.MethodPost, "/token", "", map[string]string{
		"username": username,
		"password": "longenough",
	})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[tokenResponse](a.t, rec).AccessToken
}

func (a *testAPI) createBoard(token, title string) boardResponse {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/boards", token, map[string]string{"title": title})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[boardResponse](a.t, rec)
}

func TestAPI_Health(t *testing.T) {
	api := setupTestAPI(t)

	rec := api.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[healthResponse](t, rec).Status)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestAPI_RegisterAndLogin(t *testing.T) {
	api := setupTestAPI(t)

	rec := api.do(http.MethodPost, "/register", "", map[string]string{
		"username": "alice",
		"password": "longenough",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	user := decode[userResponse](t, rec)
	assert.Equal(t, "alice", user.Username)
	assert.Positive(t, user.ID)

	// Duplicate username
	rec = api.do(http.MethodPost, "/register", "", map[string]string{
		"username": "alice",
		"password": "longenough",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Wrong password
	rec = api.do(http.MethodPost, "/token", "", map[string]string{
		"username": "alice",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPI_Me(t *testing.T) {
	api := setupTestAPI(t)
	token := api.signup("alice")

	rec := api.do(http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", decode[userResponse](t, rec).Username)
}

func TestAPI_Unauthenticated(t *testing.T) {
	api := setupTestAPI(t)

	rec := api.do(http.MethodGet, "/boards", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodGet, "/users/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPI_BoardLifecycle(t *testing.T) {
	api := setupTestAPI(t)
	token := api.signup("alice")

	board := api.createBoard(token, "roadmap")

	rec := api.do(http.MethodGet, fmt.Sprintf("/boards/%d", board.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "roadmap", decode[boardResponse](t, rec).Title)

	rec = api.do(http.MethodPatch, fmt.Sprintf("/boards/%d", board.ID), token, map[string]string{"title": "renamed"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "renamed", decode[boardResponse](t, rec).Title)

	rec = api.do(http.MethodDelete, fmt.Sprintf("/boards/%d", board.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodGet, fmt.Sprintf("/boards/%d", board.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_BoardStatusCodes(t *testing.T) {
	api := setupTestAPI(t)
	aliceToken := api.signup("alice")
	bobToken := api.signup("bob")
	board := api.createBoard(aliceToken, "private")

	// Stranger is forbidden, missing board is 404, junk id is 400
	rec := api.do(http.MethodGet, fmt.Sprintf("/boards/%d", board.ID), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodGet, "/boards/99999", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodGet, "/boards/not-a-number", aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, "/boards", aliceToken, map[string]string{"title": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_NestedFlow(t *testing.T) {
	api := setupTestAPI(t)
	token := api.signup("alice")
	board := api.createBoard(token, "work")

	rec := api.do(http.MethodPost, fmt.Sprintf("/boards/%d/statuses", board.ID), token, map[string]string{"name": "Todo"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	status := decode[statusResponse](t, rec)

	rec = api.do(http.MethodPost, fmt.Sprintf("/boards/%d/tasks", board.ID), token, map[string]any{
		"title":     "write docs",
		"status_id": status.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	task := decode[taskResponse](t, rec)
	require.NotNil(t, task.StatusID)
	assert.Equal(t, status.ID, *task.StatusID)

	rec = api.do(http.MethodPost, fmt.Sprintf("/boards/%d/tasks/%d/comments", board.ID, task.ID), token, map[string]string{"content": "started"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	comment := decode[commentResponse](t, rec)

	rec = api.do(http.MethodPost, fmt.Sprintf("/boards/%d/tasks/%d/comments/%d/attachments", board.ID, task.ID, comment.ID), token, map[string]string{"file_path": "/files/notes.md"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = api.do(http.MethodPost, fmt.Sprintf("/boards/%d/tasks/%d/tags", board.ID, task.ID), token, map[string]string{"label": "docs"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Clearing the status link via PATCH with status_id 0
	rec = api.do(http.MethodPatch, fmt.Sprintf("/boards/%d/tasks/%d", board.ID, task.ID), token, map[string]any{"status_id": 0})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Nil(t, decode[taskResponse](t, rec).StatusID)

	rec = api.do(http.MethodGet, fmt.Sprintf("/boards/%d/tasks/%d/comments", board.ID, task.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]commentResponse](t, rec), 1)
}

func TestAPI_Sharing(t *testing.T) {
	api := setupTestAPI(t)
	aliceToken := api.signup("alice")
	bobToken := api.signup("bob")
	board := api.createBoard(aliceToken, "shared")

	rec := api.do(http.MethodGet, "/users/me", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	bob := decode[userResponse](t, rec)

	rec = api.do(http.MethodPost, fmt.Sprintf("/boards/%d/accesses", board.ID), aliceToken, map[string]any{"user_id": bob.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	grant := decode[accessResponse](t, rec)
	assert.True(t, grant.FullAccess)

	// Duplicate grant conflicts
	rec = api.do(http.MethodPost, fmt.Sprintf("/boards/%d/accesses", board.ID), aliceToken, map[string]any{"user_id": bob.ID})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Bob can now read the board but not delete it
	rec = api.do(http.MethodGet, fmt.Sprintf("/boards/%d", board.ID), bobToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodDelete, fmt.Sprintf("/boards/%d", board.ID), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Revocation is idempotent and cuts bob off
	rec = api.do(http.MethodDelete, fmt.Sprintf("/boards/%d/accesses/%d", board.ID, grant.ID), aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = api.do(http.MethodDelete, fmt.Sprintf("/boards/%d/accesses/%d", board.ID, grant.ID), aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodGet, fmt.Sprintf("/boards/%d", board.ID), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAPI_ActionLog(t *testing.T) {
	api := setupTestAPI(t)
	token := api.signup("alice")
	board := api.createBoard(token, "audited")

	rec := api.do(http.MethodDelete, fmt.Sprintf("/boards/%d", board.ID), token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodGet, "/users/me/actions", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	actions := decode[[]actionResponse](t, rec)
	require.NotEmpty(t, actions)
	assert.Equal(t, "delete", actions[0].Action)
}

func TestAPI_Pagination(t *testing.T) {
	api := setupTestAPI(t)
	token := api.signup("alice")
	for i := 0; i < 5; i++ {
		api.createBoard(token, fmt.Sprintf("board-%d", i))
	}

	rec := api.do(http.MethodGet, "/boards?skip=2&limit=2", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	boards := decode[[]boardResponse](t, rec)
	require.Len(t, boards, 2)
	assert.Equal(t, "board-2", boards[0].Title)
	assert.Equal(t, "board-3", boards[1].Title)

	rec = api.do(http.MethodGet, "/boards?skip=bogus", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_InvalidJSONBody(t *testing.T) {
	api := setupTestAPI(t)
	token := api.signup("alice")

	req := httptest.NewRequest(http.MethodPost, "/boards", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
