// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/example/worklog/internal/apperr"
	"github.com/example/worklog/internal/ports/secondary"
)

// TaskRepository implements secondary.TaskRepository with SQLite.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new SQLite task repository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskSelectCols = "id, user_id, title, description, status, priority, due_date, completed_at, sort_order, created_at, updated_at"

const (
	orderGeneral = " ORDER BY CASE WHEN status = 'done' THEN 1 ELSE 0 END, sort_order, created_at, id"
	orderToday   = " ORDER BY CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 WHEN 'low' THEN 2 ELSE 3 END, sort_order, created_at, id"
)

// scanTask scans a task row into a TaskRecord.
func scanTask(row scanner) (*secondary.TaskRecord, error) {
	var (
		desc        sql.NullString
		dueDate     sql.NullString
		completedAt sql.NullString
		createdAt   string
		updatedAt   string
	)

	record := &secondary.TaskRecord{}
	err := row.Scan(
		&record.ID, &record.UserID, &record.Title, &desc, &record.Status, &record.Priority,
		&dueDate, &completedAt, &record.Order, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Description = stringPtr(desc)
	if record.DueDate, err = parseNullTime(dueDate); err != nil {
		return nil, err
	}
	if record.CompletedAt, err = parseNullTime(completedAt); err != nil {
		return nil, err
	}
	if record.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if record.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return record, nil
}

// taskWhere builds the WHERE clause shared by List and Count.
func taskWhere(f secondary.TaskFilters) (string, []any) {
	var b strings.Builder
	b.WriteString(" WHERE user_id = ?")
	args := []any{f.OwnerID}

	if f.Status != "" {
		b.WriteString(" AND status = ?")
		args = append(args, f.Status)
	}
	if f.Priority != "" {
		b.WriteString(" AND priority = ?")
		args = append(args, f.Priority)
	}
	if f.ExcludeDone {
		b.WriteString(" AND status != 'done'")
	}
	if f.DueBefore != nil {
		b.WriteString(" AND (due_date IS NULL OR due_date < ?)")
		args = append(args, formatTime(*f.DueBefore))
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(f.Search)) + "%"
		b.WriteString(` AND (worklog_lower(title) LIKE ? ESCAPE '\' OR worklog_lower(COALESCE(description, '')) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}

	return b.String(), args
}

// Create persists a new task.
func (r *TaskRepository) Create(ctx context.Context, task *secondary.TaskRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, user_id, title, description, status, priority, due_date, completed_at, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.UserID, task.Title, nullString(task.Description), task.Status, task.Priority,
		nullTime(task.DueDate), nullTime(task.CompletedAt), task.Order,
		formatTime(task.CreatedAt), formatTime(task.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return apperr.Conflict("task %s already exists", task.ID)
	}
	if isForeignKeyViolation(err) {
		return apperr.NotFound("user", task.UserID)
	}
	if err != nil {
		return storageErr("create task", err)
	}
	return nil
}

// GetByID retrieves a task by owner and ID.
func (r *TaskRepository) GetByID(ctx context.Context, ownerID, id string) (*secondary.TaskRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+taskSelectCols+" FROM tasks WHERE id = ? AND user_id = ?",
		id, ownerID,
	)

	record, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("task", id)
	}
	if err != nil {
		return nil, storageErr("get task", err)
	}
	return record, nil
}

// Update replaces the mutable fields of an existing task.
func (r *TaskRepository) Update(ctx context.Context, task *secondary.TaskRecord) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, status = ?, priority = ?, due_date = ?,
		completed_at = ?, sort_order = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		task.Title, nullString(task.Description), task.Status, task.Priority, nullTime(task.DueDate),
		nullTime(task.CompletedAt), task.Order, formatTime(task.UpdatedAt),
		task.ID, task.UserID,
	)
	if err != nil {
		return storageErr("update task", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storageErr("get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperr.NotFound("task", task.ID)
	}
	return nil
}

// Delete removes a task.
func (r *TaskRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ? AND user_id = ?", id, ownerID)
	if err != nil {
		return storageErr("delete task", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storageErr("get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperr.NotFound("task", id)
	}
	return nil
}

// List retrieves one ordered window of tasks matching the query.
func (r *TaskRepository) List(ctx context.Context, q secondary.TaskQuery) ([]*secondary.TaskRecord, error) {
	where, args := taskWhere(q.Filters)
	query := "SELECT " + taskSelectCols + " FROM tasks" + where

	switch q.Order {
	case secondary.OrderToday:
		query += orderToday
	default:
		query += orderGeneral
	}

	switch {
	case q.Limit > 0:
		query += " LIMIT ? OFFSET ?"
		args = append(args, q.Limit, q.Skip)
	case q.Skip > 0:
		query += " LIMIT -1 OFFSET ?"
		args = append(args, q.Skip)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list tasks", err)
	}
	defer rows.Close()

	tasks := []*secondary.TaskRecord{}
	for rows.Next() {
		record, err := scanTask(rows)
		if err != nil {
			return nil, storageErr("scan task", err)
		}
		tasks = append(tasks, record)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list tasks", err)
	}

	return tasks, nil
}

// Count returns the number of tasks matching the filters.
func (r *TaskRepository) Count(ctx context.Context, f secondary.TaskFilters) (int, error) {
	where, args := taskWhere(f)

	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks"+where, args...).Scan(&count); err != nil {
		return 0, storageErr("count tasks", err)
	}
	return count, nil
}

// Ensure TaskRepository implements the interface
var _ secondary.TaskRepository = (*TaskRepository)(nil)
