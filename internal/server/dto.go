// ABOUTME: JSON wire types for API responses
// ABOUTME: Store entities never serialize directly; password hashes stay internal

package server

import (
	"time"

	"github.com/trelliswork/trellis/internal/store"
)

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *store.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type boardResponse struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func toBoardResponse(b *store.Board) boardResponse {
	return boardResponse{
		ID:          b.ID,
		OwnerID:     b.OwnerID,
		Title:       b.Title,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
	}
}

func toBoardResponses(boards []*store.Board) []boardResponse {
	out := make([]boardResponse, len(boards))
	for i, b := range boards {
		out[i] = toBoardResponse(b)
	}
	return out
}

type statusResponse struct {
	ID        int64     `json:"id"`
	BoardID   int64     `json:"board_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toStatusResponse(st *store.Status) statusResponse {
	return statusResponse{ID: st.ID, BoardID: st.BoardID, Name: st.Name, CreatedAt: st.CreatedAt}
}

func toStatusResponses(statuses []*store.Status) []statusResponse {
	out := make([]statusResponse, len(statuses))
	for i, st := range statuses {
		out[i] = toStatusResponse(st)
	}
	return out
}

type taskResponse struct {
	ID          int64     `json:"id"`
	BoardID     int64     `json:"board_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StatusID    *int64    `json:"status_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func toTaskResponse(t *store.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		BoardID:     t.BoardID,
		Title:       t.Title,
		Description: t.Description,
		StatusID:    t.StatusID,
		CreatedAt:   t.CreatedAt,
	}
}

func toTaskResponses(tasks []*store.Task) []taskResponse {
	out := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskResponse(t)
	}
	return out
}

type commentResponse struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"task_id"`
	AuthorID  int64     `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func toCommentResponse(c *store.Comment) commentResponse {
	return commentResponse{ID: c.ID, TaskID: c.TaskID, AuthorID: c.AuthorID, Content: c.Content, CreatedAt: c.CreatedAt}
}

func toCommentResponses(comments []*store.Comment) []commentResponse {
	out := make([]commentResponse, len(comments))
	for i, c := range comments {
		out[i] = toCommentResponse(c)
	}
	return out
}

type attachmentResponse struct {
	ID        int64     `json:"id"`
	CommentID int64     `json:"comment_id"`
	FilePath  string    `json:"file_path"`
	CreatedAt time.Time `json:"created_at"`
}

func toAttachmentResponse(a *store.Attachment) attachmentResponse {
	return attachmentResponse{ID: a.ID, CommentID: a.CommentID, FilePath: a.FilePath, CreatedAt: a.CreatedAt}
}

func toAttachmentResponses(attachments []*store.Attachment) []attachmentResponse {
	out := make([]attachmentResponse, len(attachments))
	for i, a := range attachments {
		out[i] = toAttachmentResponse(a)
	}
	return out
}

type tagResponse struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"task_id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

func toTagResponse(t *store.Tag) tagResponse {
	return tagResponse{ID: t.ID, TaskID: t.TaskID, Label: t.Label, CreatedAt: t.CreatedAt}
}

func toTagResponses(tags []*store.Tag) []tagResponse {
	out := make([]tagResponse, len(tags))
	for i, t := range tags {
		out[i] = toTagResponse(t)
	}
	return out
}

type accessResponse struct {
	ID         int64     `json:"id"`
	BoardID    int64     `json:"board_id"`
	UserID     int64     `json:"user_id"`
	FullAccess bool      `json:"full_access"`
	GrantedAt  time.Time `json:"granted_at"`
}

func toAccessResponse(g *store.BoardAccess) accessResponse {
	return accessResponse{ID: g.ID, BoardID: g.BoardID, UserID: g.UserID, FullAccess: g.FullAccess, GrantedAt: g.GrantedAt}
}

func toAccessResponses(grants []*store.BoardAccess) []accessResponse {
	out := make([]accessResponse, len(grants))
	for i, g := range grants {
		out[i] = toAccessResponse(g)
	}
	return out
}

type actionResponse struct {
	ID         int64     `json:"id"`
	Action     string    `json:"action"`
	TargetType string    `json:"target_type"`
	TargetID   int64     `json:"target_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func toActionResponses(entries []*store.ActionEntry) []actionResponse {
	out := make([]actionResponse, len(entries))
	for i, e := range entries {
		out[i] = actionResponse{
			ID:         e.ID,
			Action:     e.Action,
			TargetType: e.TargetType,
			TargetID:   e.TargetID,
			CreatedAt:  e.CreatedAt,
		}
	}
	return out
}
