// Package auth handles credentials and request identity: bcrypt password
// hashing, HS256 JWT issuance and verification, the RequireUser HTTP
// middleware, and the context plumbing that carries the resolved user to
// handlers.
//
// Tokens carry the username in the "sub" claim and are stateless; revoking
// a user invalidates their outstanding tokens because ResolveToken re-reads
// the user on every request.
package auth
