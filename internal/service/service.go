// ABOUTME: Services facade composing per-entity services for one caller
// ABOUTME: Built per request so every operation runs with the caller's identity

package service

import (
	"context"
	"log/slog"

	"github.com/trelliswork/trellis/internal/store"
)

// Store is the full persistence surface the facade composes over. A
// *store.SQLiteStore satisfies it, whether backed by the pool or by an
// open transaction.
type Store interface {
	store.UserStore
	store.BoardStore
	store.StatusStore
	store.TaskStore
	store.CommentStore
	store.AttachmentStore
	store.TagStore
	store.AccessStore
	store.ActionStore
}

// Services bundles the entity services for a single authenticated caller.
// Construct one per request; the zero value is not usable.
type Services struct {
	Boards      *BoardService
	Statuses    *StatusService
	Tasks       *TaskService
	Comments    *CommentService
	Attachments *AttachmentService
	Tags        *TagService
	Access      *AccessService
}

// New builds the service set for the given caller. The caller must be a
// resolved, existing user; unauthenticated flows (registration, login) go
// through UserService instead.
func New(st Store, caller *store.User) *Services {
	guard := NewGuard(st)
	audit := newAuditor(st)

	return &Services{
		Boards:      &BoardService{store: st, guard: guard, caller: caller, audit: audit},
		Statuses:    &StatusService{store: st, guard: guard, caller: caller, audit: audit},
		Tasks:       &TaskService{store: st, guard: guard, caller: caller, audit: audit},
		Comments:    &CommentService{store: st, guard: guard, caller: caller, audit: audit},
		Attachments: &AttachmentService{store: st, guard: guard, caller: caller, audit: audit},
		Tags:        &TagService{store: st, guard: guard, caller: caller, audit: audit},
		Access:      &AccessService{store: st, guard: guard, caller: caller, audit: audit},
	}
}

// auditor records user-visible mutations in the append-only action log.
// Log writes are best effort: a failure is logged and swallowed so an audit
// hiccup never fails the mutation it describes.
type auditor struct {
	actions store.ActionStore
	logger  *slog.Logger
}

func newAuditor(actions store.ActionStore) *auditor {
	return &auditor{
		actions: actions,
		logger:  slog.Default().With("component", "service"),
	}
}

func (a *auditor) record(ctx context.Context, userID int64, action, targetType string, targetID int64) {
	if err := a.actions.AppendAction(ctx, userID, action, targetType, targetID); err != nil {
		a.logger.Warn("Failed to record action",
			"user_id", userID,
			"action", action,
			"target_type", targetType,
			"error", err)
	}
}
