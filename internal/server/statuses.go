// ABOUTME: Handlers for status columns nested under a board
// ABOUTME: Deleting a status detaches tasks instead of deleting them

package server

import (
	"net/http"

	"github.com/trelliswork/trellis/internal/service"
	"github.com/trelliswork/trellis/internal/store"
)

type statusCreateRequest struct {
	Name string `json:"name"`
}

type statusUpdateRequest struct {
	Name *string `json:"name"`
}

func (s *Server) handleStatusCreate(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req statusCreateRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var status *store.Status
	err = s.withServices(r, func(svc *service.Services) error {
		status, err = svc.Statuses.Create(r.Context(), boardID, req.Name)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toStatusResponse(status))
}

func (s *Server) handleStatusList(w http.ResponseWriter, r *http.Request) {
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

	var statuses []*store.Status
	err = s.withServices(r, func(svc *service.Services) error {
		statuses, err = svc.Statuses.List(r.Context(), boardID, skip, limit)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toStatusResponses(statuses))
}

func (s *Server) handleStatusGet(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	statusID, err := pathID(r, "statusID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var status *store.Status
	err = s.withServices(r, func(svc *service.Services) error {
		status, err = svc.Statuses.Get(r.Context(), boardID, statusID)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toStatusResponse(status))
}

func (s *Server) handleStatusUpdate(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	statusID, err := pathID(r, "statusID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req statusUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var status *store.Status
	err = s.withServices(r, func(svc *service.Services) error {
		status, err = svc.Statuses.Update(r.Context(), boardID, statusID, service.StatusUpdate{Name: req.Name})
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toStatusResponse(status))
}

func (s *Server) handleStatusDelete(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	statusID, err := pathID(r, "statusID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	err = s.withServices(r, func(svc *service.Services) error {
		return svc.Statuses.Delete(r.Context(), boardID, statusID)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
