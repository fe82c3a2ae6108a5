// Package server exposes the trellis HTTP API.
//
// Routes follow the containment chain: boards own statuses and tasks,
// tasks own comments and tags, comments own attachments, and share grants
// hang off boards as /boards/{id}/accesses. All routes except /register,
// /token, and /health require a bearer token.
//
// Each request builds its own service set and runs inside one store
// transaction, so a handler either commits all of its writes or none.
// Service errors map onto status codes: not found 404, forbidden 403,
// conflict 409, bad request 400.
package server
