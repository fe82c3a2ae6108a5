// ABOUTME: SQLite implementation of the store interfaces using modernc.org/sqlite
// ABOUTME: Provides schema creation, transaction scoping, and shared scan helpers

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// dbConn is the subset of *sql.DB and *sql.Tx the store methods use, so the
// same methods run on the pool or inside a transaction.
type dbConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteStore implements the store interfaces using SQLite.
type SQLiteStore struct {
	db     *sql.DB // nil for transaction-bound views
	conn   dbConn
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys; cascade deletes depend on this
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		conn:   db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);

		CREATE TABLE IF NOT EXISTS boards (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			owner_id    INTEGER NOT NULL REFERENCES users(id),
			title       TEXT NOT NULL,
			description TEXT,
			created_at  TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_boards_owner ON boards(owner_id);

		CREATE TABLE IF NOT EXISTS statuses (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			board_id   INTEGER NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
			name       TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_statuses_board ON statuses(board_id);

		CREATE TABLE IF NOT EXISTS tasks (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			board_id    INTEGER NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
			title       TEXT NOT NULL,
			description TEXT,
			status_id   INTEGER REFERENCES statuses(id) ON DELETE SET NULL,
			created_at  TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_board ON tasks(board_id);
		CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status_id);

		CREATE TABLE IF NOT EXISTS comments (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			task_id    INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
			author_id  INTEGER NOT NULL REFERENCES users(id),
			content    TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_comments_task ON comments(task_id);

		CREATE TABLE IF NOT EXISTS attachments (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			comment_id INTEGER NOT NULL REFERENCES comments(id) ON DELETE CASCADE,
			file_path  TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_attachments_comment ON attachments(comment_id);

		CREATE TABLE IF NOT EXISTS tags (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			task_id    INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
			label      TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tags_task ON tags(task_id);

		-- No unique index on (board_id, user_id): the duplicate-grant check
		-- is an entity-service responsibility.
		CREATE TABLE IF NOT EXISTS board_access (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			board_id    INTEGER NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
			user_id     INTEGER NOT NULL REFERENCES users(id),
			full_access INTEGER NOT NULL DEFAULT 1,
			granted_at  TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_board_access_board ON board_access(board_id);
		CREATE INDEX IF NOT EXISTS idx_board_access_user ON board_access(user_id);

		CREATE TABLE IF NOT EXISTS action_log (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id     INTEGER NOT NULL REFERENCES users(id),
			action      TEXT NOT NULL,
			target_type TEXT NOT NULL,
			target_id   INTEGER NOT NULL,
			created_at  TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_action_log_user ON action_log(user_id);
	`

	_, err := s.conn.ExecContext(context.Background(), schema)
	return err
}

// Tx runs fn against a transaction-bound view of the store. The transaction
// commits when fn returns nil and rolls back otherwise; the connection is
// released on every path. Calling Tx on a view that is already
// transaction-bound reuses the open transaction.
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *SQLiteStore) error) error {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	view := &SQLiteStore{conn: tx, logger: s.logger}
	if err := fn(view); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Error("rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	s.logger.Info("closing SQLite store")
	return s.db.Close()
}

// now returns the current UTC time truncated to second precision, matching
// what survives the RFC3339 round trip through the database.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// formatTime renders a timestamp the way the schema stores it.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseTime parses a stored RFC3339 timestamp.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// nullString returns nil for empty strings, otherwise the string itself.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullInt64 returns nil for a nil pointer, otherwise the pointed-to value.
func nullInt64(n *int64) any {
	if n == nil {
		return nil
	}
	return *n
}

// clampPage normalizes skip/limit: negative skip becomes 0, non-positive
// limit becomes the default page size of 100, and limit is capped at 1000.
func clampPage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}
	return skip, limit
}

// isUniqueConstraintError checks if an error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") || strings.Contains(err.Error(), "unique constraint"))
}

// isForeignKeyError checks if an error is a foreign key violation.
func isForeignKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// Compile-time interface checks.
var (
	_ UserStore       = (*SQLiteStore)(nil)
	_ BoardStore      = (*SQLiteStore)(nil)
	_ StatusStore     = (*SQLiteStore)(nil)
	_ TaskStore       = (*SQLiteStore)(nil)
	_ CommentStore    = (*SQLiteStore)(nil)
	_ AttachmentStore = (*SQLiteStore)(nil)
	_ TagStore        = (*SQLiteStore)(nil)
	_ AccessStore     = (*SQLiteStore)(nil)
	_ ActionStore     = (*SQLiteStore)(nil)
)
