// ABOUTME: Handlers for comments and attachments nested under a task
// ABOUTME: The path walks the containment chain board/task/comment/attachment

package server

import (
	"net/http"

	"github.com/trelliswork/trellis/internal/service"
	"github.com/trelliswork/trellis/internal/store"
)

type commentCreateRequest struct {
	Content string `json:"content"`
}

type commentUpdateRequest struct {
	Content *string `json:"content"`
}

// commentPath extracts the board/task ids shared by all comment routes.
func commentPath(r *http.Request) (boardID, taskID int64, err error) {
	boardID, err = pathID(r, "boardID")
	if err != nil {
		return 0, 0, err
	}
	taskID, err = pathID(r, "taskID")
	if err != nil {
		return 0, 0, err
	}
	return boardID, taskID, nil
}

func (s *Server) handleCommentCreate(w http.ResponseWriter, r *http.Request) {
	boardID, taskID, err := commentPath(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req commentCreateRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var comment *store.Comment
	err = s.withServices(r, func(svc *service.Services) error {
		comment, err = svc.Comments.Create(r.Context(), boardID, taskID, req.Content)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toCommentResponse(comment))
}

func (s *Server) handleCommentList(w http.ResponseWriter, r *http.Request) {
	boardID, taskID, err := commentPath(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	skip, limit, err := pageParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var comments []*store.Comment
	err = s.withServices(r, func(svc *service.Services) error {
		comments, err = svc.Comments.List(r.Context(), boardID, taskID, skip, limit)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toCommentResponses(comments))
}

func (s *Server) handleCommentGet(w http.ResponseWriter, r *http.Request) {
	boardID, taskID, err := commentPath(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	commentID, err := pathID(r, "commentID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var comment *store.Comment
	err = s.withServices(r, func(svc *service.Services) error {
		comment, err = svc.Comments.Get(r.Context(), boardID, taskID, commentID)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toCommentResponse(comment))
}

func (s *Server) handleCommentUpdate(w http.ResponseWriter, r *http.Request) {
	boardID, taskID, err := commentPath(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	commentID, err := pathID(r, "commentID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req commentUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var comment *store.Comment
	err = s.withServices(r, func(svc *service.Services) error {
		comment, err = svc.Comments.Update(r.Context(), boardID, taskID, commentID, service.CommentUpdate{Content: req.Content})
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toCommentResponse(comment))
}

func (s *Server) handleCommentDelete(w http.ResponseWriter, r *http.Request) {
	boardID, taskID, err := commentPath(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	commentID, err := pathID(r, "commentID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	err = s.withServices(r, func(svc *service.Services) error {
		return svc.Comments.Delete(r.Context(), boardID, taskID, commentID)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type attachmentCreateRequest struct {
	FilePath string `json:"file_path"`
}

// attachmentPath extracts the board/task/comment ids shared by all
// attachment routes.
func attachmentPath(r *http.Request) (boardID, taskID, commentID int64, err error) {
	boardID, taskID, err = commentPath(r)
	if err != nil {
		return 0, 0, 0, err
	}
	commentID, err = pathID(r, "commentID")
	if err != nil {
		return 0, 0, 0, err
	}
	return boardID, taskID, commentID, nil
}

func (s *Server) handleAttachmentCreate(w http.ResponseWriter, r *http.Request) {
	boardID, taskID, commentID, err := attachmentPath(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req attachmentCreateRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var attachment *store.Attachment
	err = s.withServices(r, func(svc *service.Services) error {
		attachment, err = svc.Attachments.Create(r.Context(), boardID, taskID, commentID, req.FilePath)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toAttachmentResponse(attachment))
}

func (s *Server) handleAttachmentList(w http.ResponseWriter, r *http.Request) {
	boardID, taskID, commentID, err := attachmentPath(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	skip, limit, err := pageParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var attachments []*store.Attachment
	err = s.withServices(r, func(svc *service.Services) error {
		attachments, err = svc.Attachments.List(r.Context(), boardID, taskID, commentID, skip, limit)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toAttachmentResponses(attachments))
}

func (s *Server) handleAttachmentGet(w http.ResponseWriter, r *http.Request) {
	boardID, taskID, commentID, err := attachmentPath(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	attachmentID, err := pathID(r, "attachmentID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var attachment *store.Attachment
	err = s.withServices(r, func(svc *service.Services) error {
		attachment, err = svc.Attachments.Get(r.Context(), boardID, taskID, commentID, attachmentID)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toAttachmentResponse(attachment))
}

func (s *Server) handleAttachmentDelete(w http.ResponseWriter, r *http.Request) {
	boardID, taskID, commentID, err := attachmentPath(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	attachmentID, err := pathID(r, "attachmentID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	err = s.withServices(r, func(svc *service.Services) error {
		return svc.Attachments.Delete(r.Context(), boardID, taskID, commentID, attachmentID)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
