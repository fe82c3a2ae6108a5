// ABOUTME: Typed failure taxonomy shared by all entity services
// ABOUTME: Callers match with errors.Is; the HTTP layer maps these to status codes

package service

import "errors"

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller lacks ownership or a share grant.
// It is deliberately distinct from ErrNotFound so callers can tell a missing
// board from an inaccessible one.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when creating something that already exists, such
// as a second grant for the same (board, user) pair.
var ErrConflict = errors.New("conflict")

// ErrBadRequest is returned for malformed input: empty required fields, a
// cross-board status assignment, or a delete that matched no rows.
var ErrBadRequest = errors.New("bad request")
