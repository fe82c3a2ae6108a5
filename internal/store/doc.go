// Package store provides persistent storage for trellis using SQLite.
//
// # Architecture
//
// The store package uses an interface-driven architecture with one narrow
// interface per entity kind:
//
//   - UserStore: accounts
//   - BoardStore: boards
//   - StatusStore, TaskStore: board children
//   - CommentStore, TagStore: task children
//   - AttachmentStore: comment children
//   - AccessStore: board share grants
//   - ActionStore: append-only action log
//
// SQLiteStore implements all interfaces in a single struct, allowing easy
// composition while maintaining clear interface boundaries. Services depend
// on the interfaces, never on SQLiteStore directly.
//
// # Identity and timestamps
//
// Every table uses INTEGER PRIMARY KEY AUTOINCREMENT ids, so identifiers are
// opaque, store-assigned, and monotonically increasing. The created_at column
// is set by the store at insert time and never accepted from callers; Create
// methods insert and then re-read the row so the returned struct carries the
// store-generated fields.
//
// # Transactions
//
// Tx runs a function against a transaction-bound view of the store. The
// server wraps each mutating request in one Tx call: commit on success,
// rollback on failure, release on every path. Reads outside Tx run on the
// connection pool with statement-level atomicity.
//
// # SQLite configuration
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA foreign_keys=ON;
//
// Deleting a board cascades to its statuses, tasks, and grants, and through
// tasks to comments, tags, and attachments. Deleting a status clears the
// status link on its tasks rather than deleting them.
package store
