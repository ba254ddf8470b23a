package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/example/worklog/internal/core/patch"
	"github.com/example/worklog/internal/core/project"
	"github.com/example/worklog/internal/ports/primary"
)

type mockProjectService struct {
	projects []*primary.Project
	archived bool
}

func (m *mockProjectService) CreateProject(_ context.Context, req primary.CreateProjectRequest) (*primary.Project, error) {
	p := &primary.Project{ID: "p-1", OwnerID: req.OwnerID, Name: req.Name, Description: req.Description, Color: project.DefaultColor}
	m.projects = append(m.projects, p)
	return p, nil
}

func (m *mockProjectService) GetProject(_ context.Context, _, id string) (*primary.Project, error) {
	return &primary.Project{ID: id, Name: "Home", Color: "#ff0000"}, nil
}

func (m *mockProjectService) UpdateProject(_ context.Context, req primary.UpdateProjectRequest) (*primary.Project, error) {
	return &primary.Project{ID: req.ProjectID, Name: "Home", Color: project.DefaultColor, Archived: req.Patch.Archived.Value}, nil
}

func (m *mockProjectService) DeleteProject(context.Context, string, string) error {
	return nil
}

func (m *mockProjectService) ListProjects(_ context.Context, _ string, includeArchived bool) ([]*primary.Project, error) {
	m.archived = includeArchived
	return m.projects, nil
}

func TestProjectAdapter_CreateAndList(t *testing.T) {
	svc := &mockProjectService{}
	var out bytes.Buffer
	a := NewProjectAdapter(svc, &out)
	ctx := context.Background()

	if err := a.List(ctx, "user-1", false); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !strings.Contains(out.String(), "No projects found.") {
		t.Errorf("expected empty message, got %q", out.String())
	}

	if _, err := a.Create(ctx, primary.CreateProjectRequest{OwnerID: "user-1", Name: "Garden"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !strings.Contains(out.String(), "Created project p-1: Garden") {
		t.Errorf("unexpected create output %q", out.String())
	}

	out.Reset()
	if err := a.List(ctx, "user-1", true); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !svc.archived {
		t.Error("expected archived projects to be requested")
	}
	for _, want := range []string{"NAME", "Garden", "#6366f1"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out.String())
		}
	}
}

func TestProjectAdapter_ArchiveShowsDetail(t *testing.T) {
	var out bytes.Buffer
	a := NewProjectAdapter(&mockProjectService{}, &out)

	_, err := a.Update(context.Background(), primary.UpdateProjectRequest{
		OwnerID:   "user-1",
		ProjectID: "p-1",
		Patch:     project.Patch{Archived: patch.Provide(true)},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !strings.Contains(out.String(), "Archived:    true") {
		t.Errorf("expected archived detail, got %q", out.String())
	}
}

func TestColorSwatch(t *testing.T) {
	if got := colorSwatch("#ff8800"); !strings.HasSuffix(got, "#ff8800") {
		t.Errorf("colorSwatch = %q", got)
	}
	if got := colorSwatch("red"); got != "red" {
		t.Errorf("expected malformed color passed through, got %q", got)
	}
}
