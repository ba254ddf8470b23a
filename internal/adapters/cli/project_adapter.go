package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/example/worklog/internal/ports/primary"
)

// ProjectAdapter translates CLI operations to ProjectService calls.
type ProjectAdapter struct {
	service primary.ProjectService
	out     io.Writer
}

// NewProjectAdapter creates a new ProjectAdapter with the given service.
func NewProjectAdapter(service primary.ProjectService, out io.Writer) *ProjectAdapter {
	return &ProjectAdapter{service: service, out: out}
}

func (a *ProjectAdapter) Create(ctx context.Context, req primary.CreateProjectRequest) (*primary.Project, error) {
	p, err := a.service.CreateProject(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Created project %s: %s\n", p.ID, p.Name)
	return p, nil
}

func (a *ProjectAdapter) Show(ctx context.Context, ownerID, projectID string) (*primary.Project, error) {
	p, err := a.service.GetProject(ctx, ownerID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	a.renderDetail(p)
	return p, nil
}

func (a *ProjectAdapter) Update(ctx context.Context, req primary.UpdateProjectRequest) (*primary.Project, error) {
	p, err := a.service.UpdateProject(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Project %s updated\n", p.ID)
	a.renderDetail(p)
	return p, nil
}

func (a *ProjectAdapter) Delete(ctx context.Context, ownerID, projectID string) error {
	if err := a.service.DeleteProject(ctx, ownerID, projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Deleted project %s\n", projectID)
	return nil
}

// List prints the owner's projects by name.
func (a *ProjectAdapter) List(ctx context.Context, ownerID string, includeArchived bool) error {
	projects, err := a.service.ListProjects(ctx, ownerID, includeArchived)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}
	if len(projects) == 0 {
		fmt.Fprintln(a.out, "No projects found.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOLOR\tARCHIVED")
	fmt.Fprintln(w, "--\t----\t-----\t--------")
	for _, p := range projects {
		archived := ""
		if p.Archived {
			archived = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, truncate(p.Name, 40), colorSwatch(p.Color), archived)
	}
	return w.Flush()
}

func (a *ProjectAdapter) renderDetail(p *primary.Project) {
	fmt.Fprintf(a.out, "\nProject: %s\n", p.ID)
	fmt.Fprintf(a.out, "Name:        %s\n", p.Name)
	if desc := deref(p.Description); desc != "" {
		fmt.Fprintf(a.out, "Description: %s\n", desc)
	}
	fmt.Fprintf(a.out, "Color:       %s\n", colorSwatch(p.Color))
	fmt.Fprintf(a.out, "Archived:    %t\n", p.Archived)
	fmt.Fprintf(a.out, "Created:     %s\n", p.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(a.out, "Updated:     %s\n", p.UpdatedAt.Format(time.RFC3339))
	fmt.Fprintln(a.out)
}

// colorSwatch renders a #rrggbb color as a block in that color followed by its code.
func colorSwatch(hex string) string {
	if len(hex) != 7 || hex[0] != '#' {
		return hex
	}
	rgb, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return hex
	}
	block := color.RGB(int(rgb>>16&0xff), int(rgb>>8&0xff), int(rgb&0xff)).Sprint("■")
	return block + " " + hex
}
