package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/example/worklog/internal/core/task"
	"github.com/example/worklog/internal/ports/primary"
)

// TaskAdapter translates CLI operations to TaskService calls and renders the results.
type TaskAdapter struct {
	service primary.TaskService
	out     io.Writer
	now     func() time.Time
}

// NewTaskAdapter creates a new TaskAdapter with the given service.
func NewTaskAdapter(service primary.TaskService, out io.Writer) *TaskAdapter {
	return &TaskAdapter{service: service, out: out, now: time.Now}
}

// Create creates a task and prints its ID.
func (a *TaskAdapter) Create(ctx context.Context, req primary.CreateTaskRequest) (*primary.Task, error) {
	t, err := a.service.CreateTask(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	fmt.Fprintf(a.out, "✓ Created task %s: %s\n", t.ID, t.Title)
	fmt.Fprintf(a.out, "  %s %s\n", statusBadge(t.Status), priorityBadge(t.Priority))
	return t, nil
}

// List prints one page of tasks followed by the page descriptor.
func (a *TaskAdapter) List(ctx context.Context, req primary.ListTasksRequest) error {
	p, err := a.service.ListTasks(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	if len(p.Items) == 0 {
		fmt.Fprintln(a.out, "No tasks found.")
		if p.Total == 0 && req.Skip == 0 {
			fmt.Fprintln(a.out)
			fmt.Fprintln(a.out, "Create your first task:")
			fmt.Fprintln(a.out, `  worklog task create "Write the weekly report" --priority high`)
		}
		return nil
	}

	a.renderTable(p.Items)
	fmt.Fprintf(a.out, "\nShowing %d-%d of %d", p.Skip+1, p.Skip+len(p.Items), p.Total)
	if p.HasMore {
		fmt.Fprintf(a.out, " (next: --skip %d)", p.Skip+len(p.Items))
	}
	fmt.Fprintln(a.out)
	return nil
}

// Today prints the open tasks due today, overdue or undated.
func (a *TaskAdapter) Today(ctx context.Context, ownerID string) error {
	tasks, err := a.service.TodayTasks(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to list today's tasks: %w", err)
	}

	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "Nothing due today.")
		return nil
	}
	a.renderTable(tasks)
	return nil
}

// Stats prints the owner's counters.
func (a *TaskAdapter) Stats(ctx context.Context, ownerID string) error {
	stats, err := a.service.TaskStats(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to get task stats: %w", err)
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Total:\t%d\n", stats.Total)
	fmt.Fprintf(w, "%s\t%d\n", statusBadge(task.StatusTodo), stats.Todo)
	fmt.Fprintf(w, "%s\t%d\n", statusBadge(task.StatusDoing), stats.Doing)
	fmt.Fprintf(w, "%s\t%d\n", statusBadge(task.StatusDone), stats.Done)
	fmt.Fprintf(w, "Today:\t%d\n", stats.TodayCount)
	fmt.Fprintf(w, "Completion:\t%.1f%%\n", stats.CompletionRate)
	return w.Flush()
}

// Show prints every field of one task.
func (a *TaskAdapter) Show(ctx context.Context, ownerID, taskID string) (*primary.Task, error) {
	t, err := a.service.GetTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	a.renderDetail(t)
	return t, nil
}

// Update applies a partial update and prints the result.
func (a *TaskAdapter) Update(ctx context.Context, req primary.UpdateTaskRequest) (*primary.Task, error) {
	t, err := a.service.UpdateTask(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Task %s updated\n", t.ID)
	a.renderDetail(t)
	return t, nil
}

// SetStatus changes the task status.
func (a *TaskAdapter) SetStatus(ctx context.Context, ownerID, taskID string, status task.Status) (*primary.Task, error) {
	t, err := a.service.SetTaskStatus(ctx, ownerID, taskID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to set task status: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Task %s is now %s\n", t.ID, statusBadge(t.Status))
	return t, nil
}

// Complete marks the task done.
func (a *TaskAdapter) Complete(ctx context.Context, ownerID, taskID string) (*primary.Task, error) {
	t, err := a.service.CompleteTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Completed task %s: %s\n", t.ID, t.Title)
	return t, nil
}

// Delete removes the task.
func (a *TaskAdapter) Delete(ctx context.Context, ownerID, taskID string) error {
	if err := a.service.DeleteTask(ctx, ownerID, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Deleted task %s\n", taskID)
	return nil
}

func (a *TaskAdapter) renderTable(tasks []*primary.Task) {
	now := a.now()
	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY\tDUE")
	fmt.Fprintln(w, "--\t-----\t------\t--------\t---")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			truncate(t.Title, 48),
			statusBadge(t.Status),
			priorityBadge(t.Priority),
			formatDue(t, now),
		)
	}
	w.Flush()
}

func (a *TaskAdapter) renderDetail(t *primary.Task) {
	fmt.Fprintf(a.out, "\nTask: %s\n", t.ID)
	fmt.Fprintf(a.out, "Title:       %s\n", t.Title)
	if desc := deref(t.Description); desc != "" {
		fmt.Fprintf(a.out, "Description: %s\n", desc)
	}
	fmt.Fprintf(a.out, "Status:      %s\n", statusBadge(t.Status))
	fmt.Fprintf(a.out, "Priority:    %s\n", priorityBadge(t.Priority))
	fmt.Fprintf(a.out, "Due:         %s\n", formatDue(t, a.now()))
	fmt.Fprintf(a.out, "Order:       %d\n", t.Order)
	fmt.Fprintf(a.out, "Completed:   %s\n", formatTime(t.CompletedAt))
	fmt.Fprintf(a.out, "Created:     %s\n", t.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(a.out, "Updated:     %s\n", t.UpdatedAt.Format(time.RFC3339))
	fmt.Fprintln(a.out)
}
