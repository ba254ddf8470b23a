package primary

import (
	"context"
	"time"

	"github.com/example/worklog/internal/core/page"
	"github.com/example/worklog/internal/core/task"
)

// TaskService defines the primary port for task operations.
// Every operation is scoped to the owner carried in the request.
type TaskService interface {
	// CreateTask creates a new task.
	CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error)

	// GetTask retrieves a task owned by ownerID.
	GetTask(ctx context.Context, ownerID, taskID string) (*Task, error)

	// UpdateTask applies a partial update.
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (*Task, error)

	// SetTaskStatus changes only the status of a task.
	SetTaskStatus(ctx context.Context, ownerID, taskID string, status task.Status) (*Task, error)

	// CompleteTask marks a task done and stamps the completion time.
	CompleteTask(ctx context.Context, ownerID, taskID string) (*Task, error)

	// DeleteTask permanently removes a task.
	DeleteTask(ctx context.Context, ownerID, taskID string) error

	// ListTasks returns one page of the owner's tasks.
	ListTasks(ctx context.Context, req ListTasksRequest) (*page.Page[*Task], error)

	// TodayTasks returns the owner's open tasks that are due today, overdue or undated.
	TodayTasks(ctx context.Context, ownerID string) ([]*Task, error)

	// TaskStats returns aggregate counters for the owner.
	TaskStats(ctx context.Context, ownerID string) (*TaskStats, error)
}

// CreateTaskRequest contains parameters for creating a task.
type CreateTaskRequest struct {
	OwnerID     string
	Title       string
	Description *string
	Status      task.Status   // Optional, defaults to todo
	Priority    task.Priority // Optional, defaults to medium
	DueDate     *time.Time
	Order       int
}

// UpdateTaskRequest contains parameters for a partial task update.
type UpdateTaskRequest struct {
	OwnerID string
	TaskID  string
	Patch   task.Patch
}

// ListTasksRequest contains paging and filter parameters for listing tasks.
type ListTasksRequest struct {
	OwnerID  string
	Skip     int
	Limit    int
	Status   task.Status   // Optional
	Priority task.Priority // Optional
	Search   string        // Optional, matches title or description
}

// Task represents a task entity at the port boundary.
type Task struct {
	ID          string
	OwnerID     string
	Title       string
	Description *string
	Status      task.Status
	Priority    task.Priority
	DueDate     *time.Time
	CompletedAt *time.Time
	Order       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskStats holds the aggregate counters for one owner.
type TaskStats struct {
	Total          int
	Todo           int
	Doing          int
	Done           int
	TodayCount     int
	CompletionRate float64
}
