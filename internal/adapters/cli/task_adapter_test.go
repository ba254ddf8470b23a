package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/example/worklog/internal/apperr"
	"github.com/example/worklog/internal/core/page"
	"github.com/example/worklog/internal/core/task"
	"github.com/example/worklog/internal/ports/primary"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

var adapterNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// mockTaskService implements primary.TaskService for testing
type mockTaskService struct {
	createFn    func(ctx context.Context, req primary.CreateTaskRequest) (*primary.Task, error)
	getFn       func(ctx context.Context, ownerID, taskID string) (*primary.Task, error)
	updateFn    func(ctx context.Context, req primary.UpdateTaskRequest) (*primary.Task, error)
	setStatusFn func(ctx context.Context, ownerID, taskID string, status task.Status) (*primary.Task, error)
	completeFn  func(ctx context.Context, ownerID, taskID string) (*primary.Task, error)
	deleteFn    func(ctx context.Context, ownerID, taskID string) error
	listFn      func(ctx context.Context, req primary.ListTasksRequest) (*page.Page[*primary.Task], error)
	todayFn     func(ctx context.Context, ownerID string) ([]*primary.Task, error)
	statsFn     func(ctx context.Context, ownerID string) (*primary.TaskStats, error)
}

func (m *mockTaskService) CreateTask(ctx context.Context, req primary.CreateTaskRequest) (*primary.Task, error) {
	return m.createFn(ctx, req)
}

func (m *mockTaskService) GetTask(ctx context.Context, ownerID, taskID string) (*primary.Task, error) {
	return m.getFn(ctx, ownerID, taskID)
}

func (m *mockTaskService) UpdateTask(ctx context.Context, req primary.UpdateTaskRequest) (*primary.Task, error) {
	return m.updateFn(ctx, req)
}

func (m *mockTaskService) SetTaskStatus(ctx context.Context, ownerID, taskID string, status task.Status) (*primary.Task, error) {
	return m.setStatusFn(ctx, ownerID, taskID, status)
}

func (m *mockTaskService) CompleteTask(ctx context.Context, ownerID, taskID string) (*primary.Task, error) {
	return m.completeFn(ctx, ownerID, taskID)
}

func (m *mockTaskService) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	return m.deleteFn(ctx, ownerID, taskID)
}

func (m *mockTaskService) ListTasks(ctx context.Context, req primary.ListTasksRequest) (*page.Page[*primary.Task], error) {
	return m.listFn(ctx, req)
}

func (m *mockTaskService) TodayTasks(ctx context.Context, ownerID string) ([]*primary.Task, error) {
	return m.todayFn(ctx, ownerID)
}

func (m *mockTaskService) TaskStats(ctx context.Context, ownerID string) (*primary.TaskStats, error) {
	return m.statsFn(ctx, ownerID)
}

func newTestTaskAdapter(svc *mockTaskService) (*TaskAdapter, *bytes.Buffer) {
	var out bytes.Buffer
	a := NewTaskAdapter(svc, &out)
	a.now = func() time.Time { return adapterNow }
	return a, &out
}

func fixtureTask(id, title string) *primary.Task {
	return &primary.Task{
		ID:        id,
		OwnerID:   "user-1",
		Title:     title,
		Status:    task.StatusTodo,
		Priority:  task.PriorityMedium,
		CreatedAt: adapterNow,
		UpdatedAt: adapterNow,
	}
}

func TestTaskAdapter_List(t *testing.T) {
	overdue := fixtureTask("t-1", "File taxes")
	past := adapterNow.Add(-24 * time.Hour)
	overdue.DueDate = &past
	overdue.Priority = task.PriorityHigh

	svc := &mockTaskService{
		listFn: func(_ context.Context, req primary.ListTasksRequest) (*page.Page[*primary.Task], error) {
			p := page.New([]*primary.Task{overdue, fixtureTask("t-2", "Water plants")}, 5, req.Skip, req.Limit)
			return &p, nil
		},
	}
	a, out := newTestTaskAdapter(svc)

	if err := a.List(context.Background(), primary.ListTasksRequest{OwnerID: "user-1", Limit: 2}); err != nil {
		t.Fatalf("List failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"ID", "TITLE", "t-1", "File taxes", "HIGH", "(overdue)", "[todo]", "Showing 1-2 of 5", "next: --skip 2"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestTaskAdapter_ListEmpty(t *testing.T) {
	svc := &mockTaskService{
		listFn: func(_ context.Context, req primary.ListTasksRequest) (*page.Page[*primary.Task], error) {
			p := page.New[*primary.Task](nil, 0, 0, 20)
			return &p, nil
		},
	}
	a, out := newTestTaskAdapter(svc)

	if err := a.List(context.Background(), primary.ListTasksRequest{OwnerID: "user-1", Limit: 20}); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !strings.Contains(out.String(), "No tasks found.") {
		t.Errorf("expected empty message, got %q", out.String())
	}
	if !strings.Contains(out.String(), "worklog task create") {
		t.Errorf("expected create hint, got %q", out.String())
	}
}

func TestTaskAdapter_Stats(t *testing.T) {
	svc := &mockTaskService{
		statsFn: func(context.Context, string) (*primary.TaskStats, error) {
			return &primary.TaskStats{Total: 3, Todo: 1, Doing: 1, Done: 1, TodayCount: 2, CompletionRate: 33.3}, nil
		},
	}
	a, out := newTestTaskAdapter(svc)

	if err := a.Stats(context.Background(), "user-1"); err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Total:", "3", "[doing]", "Today:", "33.3%"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestTaskAdapter_ShowAndErrors(t *testing.T) {
	desc := "Quarterly numbers"
	shown := fixtureTask("t-1", "Report")
	shown.Description = &desc

	svc := &mockTaskService{
		getFn: func(_ context.Context, _, taskID string) (*primary.Task, error) {
			if taskID == "t-1" {
				return shown, nil
			}
			return nil, apperr.NotFound("task", taskID)
		},
	}
	a, out := newTestTaskAdapter(svc)

	if _, err := a.Show(context.Background(), "user-1", "t-1"); err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	if !strings.Contains(out.String(), "Quarterly numbers") {
		t.Errorf("expected description in output, got %q", out.String())
	}

	_, err := a.Show(context.Background(), "user-1", "t-9")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected wrapped not found, got %v", err)
	}
}

func TestTaskAdapter_Mutations(t *testing.T) {
	var deleted string
	svc := &mockTaskService{
		createFn: func(_ context.Context, req primary.CreateTaskRequest) (*primary.Task, error) {
			return fixtureTask("t-1", req.Title), nil
		},
		setStatusFn: func(_ context.Context, _, id string, status task.Status) (*primary.Task, error) {
			tk := fixtureTask(id, "x")
			tk.Status = status
			return tk, nil
		},
		completeFn: func(_ context.Context, _, id string) (*primary.Task, error) {
			tk := fixtureTask(id, "Report")
			tk.Status = task.StatusDone
			return tk, nil
		},
		deleteFn: func(_ context.Context, _, id string) error {
			deleted = id
			return nil
		},
	}
	a, out := newTestTaskAdapter(svc)
	ctx := context.Background()

	if _, err := a.Create(ctx, primary.CreateTaskRequest{OwnerID: "user-1", Title: "Report"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := a.SetStatus(ctx, "user-1", "t-1", task.StatusDoing); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if _, err := a.Complete(ctx, "user-1", "t-1"); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if err := a.Delete(ctx, "user-1", "t-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"✓ Created task t-1: Report", "is now [doing]", "✓ Completed task t-1", "✓ Deleted task t-1"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, got)
		}
	}
	if deleted != "t-1" {
		t.Errorf("expected delete of t-1, got %q", deleted)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("expected unchanged string, got %q", got)
	}
	if got := truncate("abcdefghij", 5); got != "abcd…" {
		t.Errorf("expected abcd…, got %q", got)
	}
}
