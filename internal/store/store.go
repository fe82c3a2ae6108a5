// ABOUTME: Entity structs and store interfaces for trellis persistence
// ABOUTME: Defines the task-board schema types and per-concern store contracts

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned when creating a user with a taken username.
var ErrUsernameExists = errors.New("username already exists")

// ErrReferenceMissing is returned when an insert or update points at a row
// that does not exist (foreign key violation).
var ErrReferenceMissing = errors.New("referenced row does not exist")

// User is an account that owns boards, authors comments, and holds grants.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
}

// Board is the top-level container, owned by exactly one user.
type Board struct {
	ID          int64
	OwnerID     int64
	Title       string
	Description string
	CreatedAt   time.Time
}

// Status is a user-defined label categorizing tasks within one board.
// It is not a lifecycle state; boards define their own set.
type Status struct {
	ID        int64
	BoardID   int64
	Name      string
	CreatedAt time.Time
}

// Task belongs to one board and is optionally linked to one of that
// board's statuses.
type Task struct {
	ID          int64
	BoardID     int64
	Title       string
	Description string
	StatusID    *int64
	CreatedAt   time.Time
}

// Comment belongs to one task and records its author.
type Comment struct {
	ID        int64
	TaskID    int64
	AuthorID  int64
	Content   string
	CreatedAt time.Time
}

// Attachment is a file reference hanging off a comment.
type Attachment struct {
	ID        int64
	CommentID int64
	FilePath  string
	CreatedAt time.Time
}

// Tag is a label attached to a task.
type Tag struct {
	ID        int64
	TaskID    int64
	Label     string
	CreatedAt time.Time
}

// BoardAccess is a share grant giving a non-owner user rights to a board.
// Grants are additive and never transfer ownership.
type BoardAccess struct {
	ID         int64
	BoardID    int64
	UserID     int64
	FullAccess bool
	GrantedAt  time.Time
}

// ActionEntry is an append-only record of a user-visible mutation.
type ActionEntry struct {
	ID         int64
	UserID     int64
	Action     string
	TargetType string
	TargetID   int64
	CreatedAt  time.Time
}

// UserStore defines user persistence operations.
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*User, error)
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}

// BoardStore defines board persistence operations.
type BoardStore interface {
	CreateBoard(ctx context.Context, ownerID int64, title, description string) (*Board, error)
	GetBoard(ctx context.Context, id int64) (*Board, error)
	ListBoardsByOwner(ctx context.Context, ownerID int64, skip, limit int) ([]*Board, error)
	UpdateBoard(ctx context.Context, board *Board) error
	DeleteBoard(ctx context.Context, id int64) error
}

// StatusStore defines status persistence operations, scoped to a board.
type StatusStore interface {
	CreateStatus(ctx context.Context, boardID int64, name string) (*Status, error)
	GetStatus(ctx context.Context, boardID, statusID int64) (*Status, error)
	ListStatuses(ctx context.Context, boardID int64, skip, limit int) ([]*Status, error)
	UpdateStatus(ctx context.Context, status *Status) error
	DeleteStatus(ctx context.Context, boardID, statusID int64) error
}

// TaskStore defines task persistence operations, scoped to a board.
type TaskStore interface {
	CreateTask(ctx context.Context, boardID int64, title, description string, statusID *int64) (*Task, error)
	GetTask(ctx context.Context, boardID, taskID int64) (*Task, error)
	ListTasks(ctx context.Context, boardID int64, skip, limit int) ([]*Task, error)
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, boardID, taskID int64) error
}

// CommentStore defines comment persistence operations, scoped to a task.
type CommentStore interface {
	CreateComment(ctx context.Context, taskID, authorID int64, content string) (*Comment, error)
	GetComment(ctx context.Context, taskID, commentID int64) (*Comment, error)
	ListComments(ctx context.Context, taskID int64, skip, limit int) ([]*Comment, error)
	UpdateComment(ctx context.Context, comment *Comment) error
	DeleteComment(ctx context.Context, taskID, commentID int64) error
}

// AttachmentStore defines attachment persistence operations, scoped to a comment.
type AttachmentStore interface {
	CreateAttachment(ctx context.Context, commentID int64, filePath string) (*Attachment, error)
	GetAttachment(ctx context.Context, commentID, attachmentID int64) (*Attachment, error)
	ListAttachments(ctx context.Context, commentID int64, skip, limit int) ([]*Attachment, error)
	DeleteAttachment(ctx context.Context, commentID, attachmentID int64) error
}

// TagStore defines tag persistence operations, scoped to a task.
type TagStore interface {
	CreateTag(ctx context.Context, taskID int64, label string) (*Tag, error)
	GetTag(ctx context.Context, taskID, tagID int64) (*Tag, error)
	ListTags(ctx context.Context, taskID int64, skip, limit int) ([]*Tag, error)
	DeleteTag(ctx context.Context, taskID, tagID int64) error
}

// AccessStore defines share-grant persistence operations.
type AccessStore interface {
	CreateGrant(ctx context.Context, boardID, userID int64, fullAccess bool) (*BoardAccess, error)
	GetGrant(ctx context.Context, boardID, accessID int64) (*BoardAccess, error)
	GetGrantForUser(ctx context.Context, boardID, userID int64) (*BoardAccess, error)
	ListGrants(ctx context.Context, boardID int64, skip, limit int) ([]*BoardAccess, error)
	DeleteGrant(ctx context.Context, boardID, accessID int64) error
}

// ActionStore defines the append-only action log.
type ActionStore interface {
	AppendAction(ctx context.Context, userID int64, action, targetType string, targetID int64) error
	ListActions(ctx context.Context, userID int64, limit int) ([]*ActionEntry, error)
}
