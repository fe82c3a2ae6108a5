// ABOUTME: HTTP API server wiring routes, auth middleware, and transactions
// ABOUTME: Every mutation runs inside a request-scoped store transaction

package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/trelliswork/trellis/internal/auth"
	"github.com/trelliswork/trellis/internal/service"
	"github.com/trelliswork/trellis/internal/store"
)

// Server handles the trellis HTTP API.
type Server struct {
	store         *store.SQLiteStore
	authenticator *auth.Authenticator
	logger        *slog.Logger
	started       time.Time
}

// New creates a new API server over the given store and authenticator.
func New(st *store.SQLiteStore, authenticator *auth.Authenticator) *Server {
	return &Server{
		store:         st,
		authenticator: authenticator,
		logger:        slog.Default().With("component", "server"),
		started:       time.Now(),
	}
}

// Handler builds the full route table with middleware applied.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /users/me", s.handleMe)
	api.HandleFunc("GET /users/me/actions", s.handleMyActions)

	api.HandleFunc("POST /boards", s.handleBoardCreate)
	api.HandleFunc("GET /boards", s.handleBoardList)
	api.HandleFunc("GET /boards/{boardID}", s.handleBoardGet)
	api.HandleFunc("PATCH /boards/{boardID}", s.handleBoardUpdate)
	api.HandleFunc("DELETE /boards/{boardID}", s.handleBoardDelete)

	api.HandleFunc("POST /boards/{boardID}/statuses", s.handleStatusCreate)
	api.HandleFunc("GET /boards/{boardID}/statuses", s.handleStatusList)
	api.HandleFunc("GET /boards/{boardID}/statuses/{statusID}", s.handleStatusGet)
	api.HandleFunc("PATCH /boards/{boardID}/statuses/{statusID}", s.handleStatusUpdate)
	api.HandleFunc("DELETE /boards/{boardID}/statuses/{statusID}", s.handleStatusDelete)

	api.HandleFunc("POST /boards/{boardID}/tasks", s.handleTaskCreate)
	api.HandleFunc("GET /boards/{boardID}/tasks", s.handleTaskList)
	api.HandleFunc("GET /boards/{boardID}/tasks/{taskID}", s.handleTaskGet)
	api.HandleFunc("PATCH /boards/{boardID}/tasks/{taskID}", s.handleTaskUpdate)
	api.HandleFunc("DELETE /boards/{boardID}/tasks/{taskID}", s.handleTaskDelete)

	api.HandleFunc("POST /boards/{boardID}/tasks/{taskID}/comments", s.handleCommentCreate)
	api.HandleFunc("GET /boards/{boardID}/tasks/{taskID}/comments", s.handleCommentList)
	api.HandleFunc("GET /boards/{boardID}/tasks/{taskID}/comments/{commentID}", s.handleCommentGet)
	api.HandleFunc("PATCH /boards/{boardID}/tasks/{taskID}/comments/{commentID}", s.handleCommentUpdate)
	api.HandleFunc("DELETE /boards/{boardID}/tasks/{taskID}/comments/{commentID}", s.handleCommentDelete)

	api.HandleFunc("POST /boards/{boardID}/tasks/{taskID}/comments/{commentID}/attachments", s.handleAttachmentCreate)
	api.HandleFunc("GET /boards/{boardID}/tasks/{taskID}/comments/{commentID}/attachments", s.handleAttachmentList)
	api.HandleFunc("GET /boards/{boardID}/tasks/{taskID}/comments/{commentID}/attachments/{attachmentID}", s.handleAttachmentGet)
	api.HandleFunc("DELETE /boards/{boardID}/tasks/{taskID}/comments/{commentID}/attachments/{attachmentID}", s.handleAttachmentDelete)

	api.HandleFunc("POST /boards/{boardID}/tasks/{taskID}/tags", s.handleTagCreate)
	api.HandleFunc("GET /boards/{boardID}/tasks/{taskID}/tags", s.handleTagList)
	api.HandleFunc("GET /boards/{boardID}/tasks/{taskID}/tags/{tagID}", s.handleTagGet)
	api.HandleFunc("DELETE /boards/{boardID}/tasks/{taskID}/tags/{tagID}", s.handleTagDelete)

	api.HandleFunc("POST /boards/{boardID}/accesses", s.handleAccessGrant)
	api.HandleFunc("GET /boards/{boardID}/accesses", s.handleAccessList)
	api.HandleFunc("GET /boards/{boardID}/accesses/{accessID}", s.handleAccessGet)
	api.HandleFunc("DELETE /boards/{boardID}/accesses/{accessID}", s.handleAccessRevoke)

	root := http.NewServeMux()
	root.HandleFunc("GET /health", s.handleHealth)
	root.HandleFunc("POST /register", s.handleRegister)
	root.HandleFunc("POST /token", s.handleToken)

	protected := auth.RequireUser(s.authenticator)(api)
	root.Handle("/users/", protected)
	root.Handle("/boards", protected)
	root.Handle("/boards/", protected)

	return requestID(logRequests(s.logger)(root))
}

// withServices runs fn against a per-request service set inside a store
// transaction. The caller must already be authenticated; every statement in
// the request commits or rolls back as one unit.
func (s *Server) withServices(r *http.Request, fn func(svc *service.Services) error) error {
	caller := auth.MustFromContext(r.Context())
	return s.store.Tx(r.Context(), func(tx *store.SQLiteStore) error {
		return fn(service.New(tx, caller))
	})
}
