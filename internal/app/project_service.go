package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/worklog/internal/apperr"
	"github.com/example/worklog/internal/core/project"
	"github.com/example/worklog/internal/ports/primary"
	"github.com/example/worklog/internal/ports/secondary"
)

// ProjectServiceImpl implements the ProjectService interface.
type ProjectServiceImpl struct {
	projectRepo secondary.ProjectRepository
	logger      *slog.Logger
	now         func() time.Time
	newID       func() (string, error)
}

// NewProjectService creates a new ProjectService with injected dependencies.
func NewProjectService(projectRepo secondary.ProjectRepository, logger *slog.Logger) *ProjectServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectServiceImpl{
		projectRepo: projectRepo,
		logger:      logger,
		now:         systemNow,
		newID:       newID,
	}
}

// CreateProject creates a project for the owner.
func (s *ProjectServiceImpl) CreateProject(ctx context.Context, req primary.CreateProjectRequest) (*primary.Project, error) {
	name, err := project.CheckName(req.Name)
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}
	color, err := project.ParseColor(req.Color)
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate project ID: %w", err)
	}

	now := s.now()
	record := &secondary.ProjectRecord{
		ID:          id,
		UserID:      req.OwnerID,
		Name:        name,
		Description: req.Description,
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projectRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "project created", "project_id", id, "owner_id", req.OwnerID)
	return recordToProject(record), nil
}

// GetProject retrieves one of the owner's projects.
func (s *ProjectServiceImpl) GetProject(ctx context.Context, ownerID, projectID string) (*primary.Project, error) {
	record, err := s.projectRepo.GetByID(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	return recordToProject(record), nil
}

// UpdateProject applies a partial update. Only fields present in the patch change.
func (s *ProjectServiceImpl) UpdateProject(ctx context.Context, req primary.UpdateProjectRequest) (*primary.Project, error) {
	record, err := s.projectRepo.GetByID(ctx, req.OwnerID, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if req.Patch.IsEmpty() {
		return recordToProject(record), nil
	}

	next, err := project.ApplyPatch(project.State{
		Name:        record.Name,
		Description: record.Description,
		Color:       record.Color,
		Archived:    record.Archived,
	}, req.Patch)
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}

	updated := *record
	updated.Name = next.Name
	updated.Description = next.Description
	updated.Color = next.Color
	updated.Archived = next.Archived
	updated.UpdatedAt = s.now()

	if err := s.projectRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return recordToProject(&updated), nil
}

// DeleteProject removes a project.
func (s *ProjectServiceImpl) DeleteProject(ctx context.Context, ownerID, projectID string) error {
	if err := s.projectRepo.Delete(ctx, ownerID, projectID); err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "project deleted", "project_id", projectID, "owner_id", ownerID)
	return nil
}

// ListProjects lists the owner's projects by name.
func (s *ProjectServiceImpl) ListProjects(ctx context.Context, ownerID string, includeArchived bool) ([]*primary.Project, error) {
	records, err := s.projectRepo.List(ctx, ownerID, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	projects := make([]*primary.Project, len(records))
	for i, r := range records {
		projects[i] = recordToProject(r)
	}
	return projects, nil
}

func recordToProject(r *secondary.ProjectRecord) *primary.Project {
	return &primary.Project{
		ID:          r.ID,
		OwnerID:     r.UserID,
		Name:        r.Name,
		Description: r.Description,
		Color:       r.Color,
		Archived:    r.Archived,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// Ensure ProjectServiceImpl implements the interface
var _ primary.ProjectService = (*ProjectServiceImpl)(nil)
