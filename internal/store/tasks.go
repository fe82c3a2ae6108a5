// ABOUTME: Task entity store methods
// ABOUTME: Board-scoped CRUD with an optional status link

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CreateTask inserts a new task on a board and returns the stored row.
// statusID may be nil for an unlinked task.
func (s *SQLiteStore) CreateTask(ctx context.Context, boardID int64, title, description string, statusID *int64) (*Task, error) {
	query := `
		INSERT INTO tasks (board_id, title, description, status_id, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := s.conn.ExecContext(ctx, query,
		boardID, title, nullString(description), nullInt64(statusID), formatTime(now()))
	if err != nil {
		if isForeignKeyError(err) {
			return nil, ErrReferenceMissing
		}
		return nil, fmt.Errorf("inserting task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting task id: %w", err)
	}

	s.logger.Debug("created task", "id", id, "board_id", boardID)
	return s.GetTask(ctx, boardID, id)
}

// GetTask retrieves a task by id, scoped to the given board.
// Returns ErrNotFound if no such task exists on that board.
func (s *SQLiteStore) GetTask(ctx context.Context, boardID, taskID int64) (*Task, error) {
	query := `
		SELECT id, board_id, title, description, status_id, created_at
		FROM tasks
		WHERE id = ? AND board_id = ?
	`
	return scanTask(s.conn.QueryRowContext(ctx, query, taskID, boardID))
}

// ListTasks returns a board's tasks in creation order.
func (s *SQLiteStore) ListTasks(ctx context.Context, boardID int64, skip, limit int) ([]*Task, error) {
	skip, limit = clampPage(skip, limit)

	query := `
		SELECT id, board_id, title, description, status_id, created_at
		FROM tasks
		WHERE board_id = ?
		ORDER BY id ASC
		LIMIT ? OFFSET ?
	`

	rows, err := s.conn.QueryContext(ctx, query, boardID, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		task, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task rows: %w", err)
	}
	return tasks, nil
}

// UpdateTask writes the task's title, description, and status link. The
// board_id is immutable and part of the match.
// Returns ErrNotFound if the task doesn't exist on its board.
func (s *SQLiteStore) UpdateTask(ctx context.Context, task *Task) error {
	query := `
		UPDATE tasks
		SET title = ?, description = ?, status_id = ?
		WHERE id = ? AND board_id = ?
	`

	result, err := s.conn.ExecContext(ctx, query,
		task.Title, nullString(task.Description), nullInt64(task.StatusID), task.ID, task.BoardID)
	if err != nil {
		if isForeignKeyError(err) {
			return ErrReferenceMissing
		}
		return fmt.Errorf("updating task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("updated task", "id", task.ID)
	return nil
}

// DeleteTask removes a task and, via cascades, its comments and tags.
// Returns ErrNotFound if no row matched.
func (s *SQLiteStore) DeleteTask(ctx context.Context, boardID, taskID int64) error {
	result, err := s.conn.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = ? AND board_id = ?`, taskID, boardID)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted task", "id", taskID, "board_id", boardID)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row *sql.Row) (*Task, error) {
	task, err := scanTaskFrom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return task, err
}

func scanTaskRow(rows *sql.Rows) (*Task, error) {
	return scanTaskFrom(rows)
}

func scanTaskFrom(r rowScanner) (*Task, error) {
	var task Task
	var description sql.NullString
	var statusID sql.NullInt64
	var createdAtStr string

	err := r.Scan(&task.ID, &task.BoardID, &task.Title, &description, &statusID, &createdAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	task.Description = description.String
	if statusID.Valid {
		task.StatusID = &statusID.Int64
	}

	task.CreatedAt, err = parseTime(createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &task, nil
}
