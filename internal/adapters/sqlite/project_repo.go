package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/example/worklog/internal/apperr"
	"github.com/example/worklog/internal/ports/secondary"
)

// ProjectRepository implements secondary.ProjectRepository with SQLite.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new SQLite project repository.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectSelectCols = "id, user_id, name, description, color, archived, created_at, updated_at"

func scanProject(row scanner) (*secondary.ProjectRecord, error) {
	var (
		description sql.NullString
		archived    int
		createdAt   string
		updatedAt   string
	)
	record := &secondary.ProjectRecord{}
	err := row.Scan(&record.ID, &record.UserID, &record.Name, &description, &record.Color, &archived, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	record.Description = stringPtr(description)
	record.Archived = archived != 0
	if record.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if record.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return record, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Create persists a new project.
func (r *ProjectRepository) Create(ctx context.Context, project *secondary.ProjectRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO projects ("+projectSelectCols+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		project.ID, project.UserID, project.Name, nullString(project.Description), project.Color,
		boolToInt(project.Archived), formatTime(project.CreatedAt), formatTime(project.UpdatedAt),
	)
	if isForeignKeyViolation(err) {
		return apperr.NotFound("user", project.UserID)
	}
	if err != nil {
		return storageErr("create project", err)
	}
	return nil
}

// GetByID retrieves a project by owner and ID.
func (r *ProjectRepository) GetByID(ctx context.Context, ownerID, id string) (*secondary.ProjectRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+projectSelectCols+" FROM projects WHERE id = ? AND user_id = ?",
		id, ownerID,
	)
	record, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("project", id)
	}
	if err != nil {
		return nil, storageErr("get project", err)
	}
	return record, nil
}

// Update replaces the mutable fields of an existing project.
func (r *ProjectRepository) Update(ctx context.Context, project *secondary.ProjectRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE projects SET name = ?, description = ?, color = ?, archived = ?, updated_at = ? WHERE id = ? AND user_id = ?",
		project.Name, nullString(project.Description), project.Color, boolToInt(project.Archived),
		formatTime(project.UpdatedAt), project.ID, project.UserID,
	)
	if err != nil {
		return storageErr("update project", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storageErr("get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperr.NotFound("project", project.ID)
	}
	return nil
}

// Delete removes a project.
func (r *ProjectRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ? AND user_id = ?", id, ownerID)
	if err != nil {
		return storageErr("delete project", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storageErr("get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperr.NotFound("project", id)
	}
	return nil
}

// List retrieves the owner's projects by name, then creation time.
func (r *ProjectRepository) List(ctx context.Context, ownerID string, includeArchived bool) ([]*secondary.ProjectRecord, error) {
	query := "SELECT " + projectSelectCols + " FROM projects WHERE user_id = ?"
	if !includeArchived {
		query += " AND archived = 0"
	}
	query += " ORDER BY name ASC, created_at ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, storageErr("list projects", err)
	}
	defer rows.Close()

	projects := []*secondary.ProjectRecord{}
	for rows.Next() {
		record, err := scanProject(rows)
		if err != nil {
			return nil, storageErr("scan project", err)
		}
		projects = append(projects, record)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list projects", err)
	}
	return projects, nil
}

// Ensure ProjectRepository implements the interface
var _ secondary.ProjectRepository = (*ProjectRepository)(nil)
