// ABOUTME: Handlers for board CRUD and listing
// ABOUTME: PATCH bodies use pointers so omitted fields stay untouched

package server

import (
	"net/http"

	"github.com/trelliswork/trellis/internal/service"
	"github.com/trelliswork/trellis/internal/store"
)

type boardCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type boardUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (s *Server) handleBoardCreate(w http.ResponseWriter, r *http.Request) {
	var req boardCreateRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var board *store.Board
	err := s.withServices(r, func(svc *service.Services) error {
		var err error
		board, err = svc.Boards.Create(r.Context(), req.Title, req.Description)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toBoardResponse(board))
}

func (s *Server) handleBoardList(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pageParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var boards []*store.Board
	err = s.withServices(r, func(svc *service.Services) error {
		boards, err = svc.Boards.List(r.Context(), skip, limit)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toBoardResponses(boards))
}

func (s *Server) handleBoardGet(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var board *store.Board
	err = s.withServices(r, func(svc *service.Services) error {
		board, err = svc.Boards.Get(r.Context(), boardID)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toBoardResponse(board))
}

func (s *Server) handleBoardUpdate(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req boardUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var board *store.Board
	err = s.withServices(r, func(svc *service.Services) error {
		board, err = svc.Boards.Update(r.Context(), boardID, service.BoardUpdate{
			Title:       req.Title,
			Description: req.Description,
		})
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toBoardResponse(board))
}

func (s *Server) handleBoardDelete(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	err = s.withServices(r, func(svc *service.Services) error {
		return svc.Boards.Delete(r.Context(), boardID)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
