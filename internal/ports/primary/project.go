package primary

import (
	"context"
	"time"

	"github.com/example/worklog/internal/core/project"
)

// ProjectService defines the primary port for project operations.
type ProjectService interface {
	// CreateProject creates a project for the owner.
	CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error)

	// GetProject retrieves one of the owner's projects.
	GetProject(ctx context.Context, ownerID, projectID string) (*Project, error)

	// UpdateProject applies a partial update.
	UpdateProject(ctx context.Context, req UpdateProjectRequest) (*Project, error)

	// DeleteProject removes a project.
	DeleteProject(ctx context.Context, ownerID, projectID string) error

	// ListProjects lists the owner's projects by name.
	ListProjects(ctx context.Context, ownerID string, includeArchived bool) ([]*Project, error)
}

// CreateProjectRequest contains parameters for creating a project.
type CreateProjectRequest struct {
	OwnerID     string
	Name        string
	Description *string
	Color       string // empty means the default color
}

// UpdateProjectRequest contains parameters for updating a project.
type UpdateProjectRequest struct {
	OwnerID   string
	ProjectID string
	Patch     project.Patch
}

// Project represents a project at the port boundary.
type Project struct {
	ID          string
	OwnerID     string
	Name        string
	Description *string
	Color       string
	Archived    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
