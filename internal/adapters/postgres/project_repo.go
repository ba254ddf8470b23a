package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/worklog/internal/apperr"
	"github.com/example/worklog/internal/ports/secondary"
)

// ProjectRepository implements secondary.ProjectRepository with PostgreSQL.
type ProjectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository creates a new PostgreSQL project repository.
func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

const projectSelectCols = "id, user_id, name, description, color, archived, created_at, updated_at"

func scanProject(row pgx.Row) (*secondary.ProjectRecord, error) {
	p := &secondary.ProjectRecord{}
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Color, &p.Archived, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

// Create persists a new project.
func (r *ProjectRepository) Create(ctx context.Context, p *secondary.ProjectRecord) error {
	_, err := r.pool.Exec(ctx,
		"INSERT INTO projects ("+projectSelectCols+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		p.ID, p.UserID, p.Name, p.Description, p.Color, p.Archived, p.CreatedAt, p.UpdatedAt)
	if isForeignKeyViolation(err) {
		return apperr.NotFound("user", p.UserID)
	}
	if err != nil {
		return storageErr("create project", err)
	}
	return nil
}

// GetByID retrieves a project by owner and ID.
func (r *ProjectRepository) GetByID(ctx context.Context, ownerID, id string) (*secondary.ProjectRecord, error) {
	p, err := scanProject(r.pool.QueryRow(ctx,
		"SELECT "+projectSelectCols+" FROM projects WHERE id = $1 AND user_id = $2", id, ownerID))
	if isNoRows(err) {
		return nil, apperr.NotFound("project", id)
	}
	if err != nil {
		return nil, storageErr("get project", err)
	}
	return p, nil
}

// Update replaces the mutable fields of an existing project.
func (r *ProjectRepository) Update(ctx context.Context, p *secondary.ProjectRecord) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE projects SET name = $1, description = $2, color = $3, archived = $4, updated_at = $5
		WHERE id = $6 AND user_id = $7`,
		p.Name, p.Description, p.Color, p.Archived, p.UpdatedAt, p.ID, p.UserID)
	if err != nil {
		return storageErr("update project", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("project", p.ID)
	}
	return nil
}

// Delete removes a project.
func (r *ProjectRepository) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM projects WHERE id = $1 AND user_id = $2", id, ownerID)
	if err != nil {
		return storageErr("delete project", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("project", id)
	}
	return nil
}

// List retrieves the owner's projects by name, then creation time.
func (r *ProjectRepository) List(ctx context.Context, ownerID string, includeArchived bool) ([]*secondary.ProjectRecord, error) {
	query := "SELECT " + projectSelectCols + " FROM projects WHERE user_id = $1"
	if !includeArchived {
		query += " AND NOT archived"
	}
	query += " ORDER BY name COLLATE \"C\", created_at, id"

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, storageErr("list projects", err)
	}
	defer rows.Close()

	projects := []*secondary.ProjectRecord{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, storageErr("scan project", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list projects", err)
	}
	return projects, nil
}

var _ secondary.ProjectRepository = (*ProjectRepository)(nil)
