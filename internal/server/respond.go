// ABOUTME: JSON response helpers, error-to-status mapping, and request parsing
// ABOUTME: Service errors translate to 404/403/409/400; everything else is a 500

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/trelliswork/trellis/internal/auth"
	"github.com/trelliswork/trellis/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps the service error taxonomy onto HTTP status codes.
// Unrecognized errors are logged with their detail and reported as a plain
// 500 so internals never leak to clients.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, service.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	default:
		s.logger.Error("Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// decodeBody parses the request body as JSON into v.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body", service.ErrBadRequest)
	}
	return nil
}

// pathID parses a numeric path segment.
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", service.ErrBadRequest, name, raw)
	}
	return id, nil
}

// pageParams reads skip/limit query parameters, leaving clamping to the
// store. Absent parameters default to 0, which the store treats as "first
// page, default size".
func pageParams(r *http.Request) (skip, limit int, err error) {
	q := r.URL.Query()
	if raw := q.Get("skip"); raw != "" {
		skip, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: invalid skip %q", service.ErrBadRequest, raw)
		}
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: invalid limit %q", service.ErrBadRequest, raw)
		}
	}
	return skip, limit, nil
}
