// ABOUTME: Handlers for tasks and tags nested under a board
// ABOUTME: status_id 0 in a PATCH clears the task's status link

package server

import (
	"net/http"

	"github.com/trelliswork/trellis/internal/service"
	"github.com/trelliswork/trellis/internal/store"
)

type taskCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StatusID    *int64 `json:"status_id"`
}

type taskUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	StatusID    *int64  `json:"status_id"`
}

func (s *Server) handleTaskCreate(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req taskCreateRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var task *store.Task
	err = s.withServices(r, func(svc *service.Services) error {
		task, err = svc.Tasks.Create(r.Context(), boardID, req.Title, req.Description, req.StatusID)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toTaskResponse(task))
}

func (s *Server) handleTaskList(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	skip, limit, err := pageParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var tasks []*store.Task
	err = s.withServices(r, func(svc *service.Services) error {
		tasks, err = svc.Tasks.List(r.Context(), boardID, skip, limit)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toTaskResponses(tasks))
}

func (s *Server) handleTaskGet(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	taskID, err := pathID(r, "taskID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var task *store.Task
	err = s.withServices(r, func(svc *service.Services) error {
		task, err = svc.Tasks.Get(r.Context(), boardID, taskID)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toTaskResponse(task))
}

func (s *Server) handleTaskUpdate(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	taskID, err := pathID(r, "taskID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req taskUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var task *store.Task
	err = s.withServices(r, func(svc *service.Services) error {
		task, err = svc.Tasks.Update(r.Context(), boardID, taskID, service.TaskUpdate{
			Title:       req.Title,
			Description: req.Description,
			StatusID:    req.StatusID,
		})
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toTaskResponse(task))
}

func (s *Server) handleTaskDelete(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	taskID, err := pathID(r, "taskID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	err = s.withServices(r, func(svc *service.Services) error {
		return svc.Tasks.Delete(r.Context(), boardID, taskID)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type tagCreateRequest struct {
	Label string `json:"label"`
}

func (s *Server) handleTagCreate(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	taskID, err := pathID(r, "taskID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req tagCreateRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var tag *store.Tag
	err = s.withServices(r, func(svc *service.Services) error {
		tag, err = svc.Tags.Create(r.Context(), boardID, taskID, req.Label)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toTagResponse(tag))
}

func (s *Server) handleTagList(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	taskID, err := pathID(r, "taskID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	skip, limit, err := pageParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var tags []*store.Tag
	err = s.withServices(r, func(svc *service.Services) error {
		tags, err = svc.Tags.List(r.Context(), boardID, taskID, skip, limit)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toTagResponses(tags))
}

func (s *Server) handleTagGet(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	taskID, err := pathID(r, "taskID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	tagID, err := pathID(r, "tagID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var tag *store.Tag
	err = s.withServices(r, func(svc *service.Services) error {
		tag, err = svc.Tags.Get(r.Context(), boardID, taskID, tagID)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toTagResponse(tag))
}

func (s *Server) handleTagDelete(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	taskID, err := pathID(r, "taskID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	tagID, err := pathID(r, "tagID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	err = s.withServices(r, func(svc *service.Services) error {
		return svc.Tags.Delete(r.Context(), boardID, taskID, tagID)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
