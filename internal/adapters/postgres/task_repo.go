package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/worklog/internal/apperr"
	"github.com/example/worklog/internal/ports/secondary"
)

// TaskRepository implements secondary.TaskRepository with PostgreSQL.
type TaskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository creates a new PostgreSQL task repository.
func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

const taskSelectCols = "id, user_id, title, description, status, priority, due_date, completed_at, sort_order, created_at, updated_at"

const (
	orderGeneral = " ORDER BY (status = 'done'), sort_order, created_at, id"
	orderToday   = " ORDER BY CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 WHEN 'low' THEN 2 ELSE 3 END, sort_order, created_at, id"
)

func scanTask(row pgx.Row) (*secondary.TaskRecord, error) {
	r := &secondary.TaskRecord{}
	err := row.Scan(&r.ID, &r.UserID, &r.Title, &r.Description, &r.Status, &r.Priority,
		&r.DueDate, &r.CompletedAt, &r.Order, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.CreatedAt = r.CreatedAt.UTC()
	r.UpdatedAt = r.UpdatedAt.UTC()
	r.DueDate = utcPtr(r.DueDate)
	r.CompletedAt = utcPtr(r.CompletedAt)
	return r, nil
}

func taskWhere(f secondary.TaskFilters, a *argList) string {
	var b strings.Builder
	b.WriteString(" WHERE user_id = " + a.add(f.OwnerID))

	if f.Status != "" {
		b.WriteString(" AND status = " + a.add(f.Status))
	}
	if f.Priority != "" {
		b.WriteString(" AND priority = " + a.add(f.Priority))
	}
	if f.ExcludeDone {
		b.WriteString(" AND status <> 'done'")
	}
	if f.DueBefore != nil {
		b.WriteString(" AND (due_date IS NULL OR due_date < " + a.add(*f.DueBefore) + ")")
	}
	if f.Search != "" {
		p := a.add("%" + escapeLike(f.Search) + "%")
		b.WriteString(" AND (title ILIKE " + p + " OR description ILIKE " + p + ")")
	}
	return b.String()
}

// Create persists a new task.
func (r *TaskRepository) Create(ctx context.Context, t *secondary.TaskRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tasks (`+taskSelectCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		t.ID, t.UserID, t.Title, t.Description, t.Status, t.Priority,
		t.DueDate, t.CompletedAt, t.Order, t.CreatedAt, t.UpdatedAt)
	if isUniqueViolation(err) {
		return apperr.Conflict("task %s already exists", t.ID)
	}
	if isForeignKeyViolation(err) {
		return apperr.NotFound("user", t.UserID)
	}
	if err != nil {
		return storageErr("create task", err)
	}
	return nil
}

// GetByID retrieves a task by owner and ID.
func (r *TaskRepository) GetByID(ctx context.Context, ownerID, id string) (*secondary.TaskRecord, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+taskSelectCols+" FROM tasks WHERE id = $1 AND user_id = $2", id, ownerID)
	t, err := scanTask(row)
	if isNoRows(err) {
		return nil, apperr.NotFound("task", id)
	}
	if err != nil {
		return nil, storageErr("get task", err)
	}
	return t, nil
}

// Update replaces the mutable fields of an existing task.
func (r *TaskRepository) Update(ctx context.Context, t *secondary.TaskRecord) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tasks SET title = $1, description = $2, status = $3, priority = $4, due_date = $5,
			completed_at = $6, sort_order = $7, updated_at = $8
		WHERE id = $9 AND user_id = $10`,
		t.Title, t.Description, t.Status, t.Priority, t.DueDate,
		t.CompletedAt, t.Order, t.UpdatedAt, t.ID, t.UserID)
	if err != nil {
		return storageErr("update task", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("task", t.ID)
	}
	return nil
}

// Delete removes a task.
func (r *TaskRepository) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1 AND user_id = $2", id, ownerID)
	if err != nil {
		return storageErr("delete task", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("task", id)
	}
	return nil
}

// List retrieves one ordered window of tasks matching the query.
func (r *TaskRepository) List(ctx context.Context, q secondary.TaskQuery) ([]*secondary.TaskRecord, error) {
	a := &argList{}
	query := "SELECT " + taskSelectCols + " FROM tasks" + taskWhere(q.Filters, a)

	if q.Order == secondary.OrderToday {
		query += orderToday
	} else {
		query += orderGeneral
	}
	if q.Limit > 0 {
		query += " LIMIT " + a.add(q.Limit)
	}
	if q.Skip > 0 {
		query += " OFFSET " + a.add(q.Skip)
	}

	rows, err := r.pool.Query(ctx, query, a.args...)
	if err != nil {
		return nil, storageErr("list tasks", err)
	}
	defer rows.Close()

	tasks := []*secondary.TaskRecord{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, storageErr("scan task", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list tasks", err)
	}
	return tasks, nil
}

// Count returns the number of tasks matching the filters.
func (r *TaskRepository) Count(ctx context.Context, f secondary.TaskFilters) (int, error) {
	a := &argList{}
	var n int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM tasks"+taskWhere(f, a), a.args...).Scan(&n); err != nil {
		return 0, storageErr("count tasks", err)
	}
	return n, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

var _ secondary.TaskRepository = (*TaskRepository)(nil)
