package http

import (
	"context"
	"errors"

	"github.com/example/worklog/internal/core/page"
	"github.com/example/worklog/internal/core/task"
	"github.com/example/worklog/internal/ports/primary"
)

var errNotImplemented = errors.New("not implemented")

type mockAuthService struct {
	signupFunc       func(ctx context.Context, req primary.SignupRequest) (*primary.User, error)
	loginFunc        func(ctx context.Context, req primary.LoginRequest) (*primary.AccessToken, error)
	authenticateFunc func(ctx context.Context, token string) (string, error)
	meFunc           func(ctx context.Context, userID string) (*primary.User, error)
}

func (m *mockAuthService) Signup(ctx context.Context, req primary.SignupRequest) (*primary.User, error) {
	if m.signupFunc != nil {
		return m.signupFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockAuthService) Login(ctx context.Context, req primary.LoginRequest) (*primary.AccessToken, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockAuthService) Authenticate(ctx context.Context, token string) (string, error) {
	if m.authenticateFunc != nil {
		return m.authenticateFunc(ctx, token)
	}
	return "", errNotImplemented
}

func (m *mockAuthService) Me(ctx context.Context, userID string) (*primary.User, error) {
	if m.meFunc != nil {
		return m.meFunc(ctx, userID)
	}
	return nil, errNotImplemented
}

type mockTaskService struct {
	createFunc    func(ctx context.Context, req primary.CreateTaskRequest) (*primary.Task, error)
	getFunc       func(ctx context.Context, ownerID, taskID string) (*primary.Task, error)
	updateFunc    func(ctx context.Context, req primary.UpdateTaskRequest) (*primary.Task, error)
	setStatusFunc func(ctx context.Context, ownerID, taskID string, status task.Status) (*primary.Task, error)
	completeFunc  func(ctx context.Context, ownerID, taskID string) (*primary.Task, error)
	deleteFunc    func(ctx context.Context, ownerID, taskID string) error
	listFunc      func(ctx context.Context, req primary.ListTasksRequest) (*page.Page[*primary.Task], error)
	todayFunc     func(ctx context.Context, ownerID string) ([]*primary.Task, error)
	statsFunc     func(ctx context.Context, ownerID string) (*primary.TaskStats, error)
}

func (m *mockTaskService) CreateTask(ctx context.Context, req primary.CreateTaskRequest) (*primary.Task, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockTaskService) GetTask(ctx context.Context, ownerID, taskID string) (*primary.Task, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, ownerID, taskID)
	}
	return nil, errNotImplemented
}

func (m *mockTaskService) UpdateTask(ctx context.Context, req primary.UpdateTaskRequest) (*primary.Task, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockTaskService) SetTaskStatus(ctx context.Context, ownerID, taskID string, status task.Status) (*primary.Task, error) {
	if m.setStatusFunc != nil {
		return m.setStatusFunc(ctx, ownerID, taskID, status)
	}
	return nil, errNotImplemented
}

func (m *mockTaskService) CompleteTask(ctx context.Context, ownerID, taskID string) (*primary.Task, error) {
	if m.completeFunc != nil {
		return m.completeFunc(ctx, ownerID, taskID)
	}
	return nil, errNotImplemented
}

func (m *mockTaskService) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, ownerID, taskID)
	}
	return errNotImplemented
}

func (m *mockTaskService) ListTasks(ctx context.Context, req primary.ListTasksRequest) (*page.Page[*primary.Task], error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockTaskService) TodayTasks(ctx context.Context, ownerID string) ([]*primary.Task, error) {
	if m.todayFunc != nil {
		return m.todayFunc(ctx, ownerID)
	}
	return nil, errNotImplemented
}

func (m *mockTaskService) TaskStats(ctx context.Context, ownerID string) (*primary.TaskStats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx, ownerID)
	}
	return nil, errNotImplemented
}

type mockNoteService struct {
	createFunc func(ctx context.Context, req primary.CreateNoteRequest) (*primary.Note, error)
	getFunc    func(ctx context.Context, ownerID, date string) (*primary.Note, error)
	updateFunc func(ctx context.Context, req primary.UpdateNoteRequest) (*primary.Note, error)
	deleteFunc func(ctx context.Context, ownerID, date string) error
	listFunc   func(ctx context.Context, ownerID, from, to string) ([]*primary.Note, error)
}

func (m *mockNoteService) CreateNote(ctx context.Context, req primary.CreateNoteRequest) (*primary.Note, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockNoteService) GetNote(ctx context.Context, ownerID, date string) (*primary.Note, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, ownerID, date)
	}
	return nil, errNotImplemented
}

func (m *mockNoteService) UpdateNote(ctx context.Context, req primary.UpdateNoteRequest) (*primary.Note, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockNoteService) DeleteNote(ctx context.Context, ownerID, date string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, ownerID, date)
	}
	return errNotImplemented
}

func (m *mockNoteService) ListNotes(ctx context.Context, ownerID, from, to string) ([]*primary.Note, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, ownerID, from, to)
	}
	return nil, errNotImplemented
}

type mockProjectService struct {
	createFunc func(ctx context.Context, req primary.CreateProjectRequest) (*primary.Project, error)
	getFunc    func(ctx context.Context, ownerID, projectID string) (*primary.Project, error)
	updateFunc func(ctx context.Context, req primary.UpdateProjectRequest) (*primary.Project, error)
	deleteFunc func(ctx context.Context, ownerID, projectID string) error
	listFunc   func(ctx context.Context, ownerID string, includeArchived bool) ([]*primary.Project, error)
}

func (m *mockProjectService) CreateProject(ctx context.Context, req primary.CreateProjectRequest) (*primary.Project, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockProjectService) GetProject(ctx context.Context, ownerID, projectID string) (*primary.Project, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, ownerID, projectID)
	}
	return nil, errNotImplemented
}

func (m *mockProjectService) UpdateProject(ctx context.Context, req primary.UpdateProjectRequest) (*primary.Project, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockProjectService) DeleteProject(ctx context.Context, ownerID, projectID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, ownerID, projectID)
	}
	return errNotImplemented
}

func (m *mockProjectService) ListProjects(ctx context.Context, ownerID string, includeArchived bool) ([]*primary.Project, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, ownerID, includeArchived)
	}
	return nil, errNotImplemented
}
