// ABOUTME: Handlers for board share grants
// ABOUTME: DELETE on a missing grant still returns 204; revocation is idempotent

package server

import (
	"net/http"

	"github.com/trelliswork/trellis/internal/service"
	"github.com/trelliswork/trellis/internal/store"
)

type accessGrantRequest struct {
	UserID     int64 `json:"user_id"`
	FullAccess *bool `json:"full_access"`
}

func (s *Server) handleAccessGrant(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req accessGrantRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	fullAccess := true
	if req.FullAccess != nil {
		fullAccess = *req.FullAccess
	}

	var grant *store.BoardAccess
	err = s.withServices(r, func(svc *service.Services) error {
		grant, err = svc.Access.Grant(r.Context(), boardID, req.UserID, fullAccess)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toAccessResponse(grant))
}

func (s *Server) handleAccessList(w http.ResponseWriter, r *http.Request) {
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

	var grants []*store.BoardAccess
	err = s.withServices(r, func(svc *service.Services) error {
		grants, err = svc.Access.List(r.Context(), boardID, skip, limit)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toAccessResponses(grants))
}

func (s *Server) handleAccessGet(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	accessID, err := pathID(r, "accessID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var grant *store.BoardAccess
	err = s.withServices(r, func(svc *service.Services) error {
		grant, err = svc.Access.Get(r.Context(), boardID, accessID)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toAccessResponse(grant))
}

func (s *Server) handleAccessRevoke(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	accessID, err := pathID(r, "accessID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	err = s.withServices(r, func(svc *service.Services) error {
		return svc.Access.Revoke(r.Context(), boardID, accessID)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
