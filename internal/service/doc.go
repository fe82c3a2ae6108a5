// Package service implements the application rules on top of the store:
// access control, input validation, partial updates, and the typed error
// taxonomy (ErrNotFound, ErrForbidden, ErrConflict, ErrBadRequest).
//
// A Services value is built per request via New with the authenticated
// caller; every board-scoped operation then runs through the Guard, which
// answers "may this user touch this board" as owner-or-grant. Containment
// is re-walked on every call (board, then task, then comment) so an id
// from the wrong parent reads as missing, never as someone else's data.
//
// Registration and login have no caller yet and live in UserService and
// the auth package respectively.
package service
