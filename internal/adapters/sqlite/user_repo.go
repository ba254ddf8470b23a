package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/example/worklog/internal/apperr"
	"github.com/example/worklog/internal/ports/secondary"
)

// UserRepository implements secondary.UserRepository with SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userSelectCols = "id, email, username, password_hash, full_name, is_active, created_at, updated_at"

func scanUser(row scanner) (*secondary.UserRecord, error) {
	var (
		fullName  sql.NullString
		createdAt string
		updatedAt string
	)
	record := &secondary.UserRecord{}
	err := row.Scan(&record.ID, &record.Email, &record.Username, &record.PasswordHash,
		&fullName, &record.IsActive, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	record.FullName = stringPtr(fullName)
	if record.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if record.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return record, nil
}

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, user *secondary.UserRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users ("+userSelectCols+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		user.ID, user.Email, user.Username, user.PasswordHash, nullString(user.FullName),
		user.IsActive, formatTime(user.CreatedAt), formatTime(user.UpdatedAt),
	)
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
	row := r.db.QueryRowContext(ctx, "SELECT "+userSelectCols+" FROM users WHERE id = ?", id)
	record, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user", id)
	}
	if err != nil {
		return nil, storageErr("get user", err)
	}
	return record, nil
}

// GetByEmailOrUsername retrieves a user whose email or username equals login.
func (r *UserRepository) GetByEmailOrUsername(ctx context.Context, login string) (*secondary.UserRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userSelectCols+" FROM users WHERE email = ? OR username = ? LIMIT 1",
		login, login,
	)
	record, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user", login)
	}
	if err != nil {
		return nil, storageErr("get user", err)
	}
	return record, nil
}

// Ensure UserRepository implements the interface
var _ secondary.UserRepository = (*UserRepository)(nil)
