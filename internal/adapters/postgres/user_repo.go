package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/worklog/internal/apperr"
	"github.com/example/worklog/internal/ports/secondary"
)

// UserRepository implements secondary.UserRepository with PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL user repository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userSelectCols = "id, email, username, password_hash, full_name, is_active, created_at, updated_at"

func scanUser(row pgx.Row) (*secondary.UserRecord, error) {
	u := &secondary.UserRecord{}
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.FullName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, u *secondary.UserRecord) error {
	_, err := r.pool.Exec(ctx,
		"INSERT INTO users ("+userSelectCols+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		u.ID, u.Email, u.Username, u.PasswordHash, u.FullName, u.IsActive, u.CreatedAt, u.UpdatedAt)
	if isUniqueViolation(err) {
		return apperr.Conflict("email or username already registered")
	}
	if err != nil {
		return storageErr("create user", err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*secondary.UserRecord, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, "SELECT "+userSelectCols+" FROM users WHERE id = $1", id))
	if isNoRows(err) {
		return nil, apperr.NotFound("user", id)
	}
	if err != nil {
		return nil, storageErr("get user", err)
	}
	return u, nil
}

// GetByEmailOrUsername retrieves a user whose email or username equals login.
func (r *UserRepository) GetByEmailOrUsername(ctx context.Context, login string) (*secondary.UserRecord, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		"SELECT "+userSelectCols+" FROM users WHERE email = $1 OR username = $1 LIMIT 1", login))
	if isNoRows(err) {
		return nil, apperr.NotFound("user", login)
	}
	if err != nil {
		return nil, storageErr("get user", err)
	}
	return u, nil
}

var _ secondary.UserRepository = (*UserRepository)(nil)
