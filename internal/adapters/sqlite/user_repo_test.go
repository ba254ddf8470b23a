package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/worklog/internal/adapters/sqlite"
	"github.com/example/worklog/internal/apperr"
	"github.com/example/worklog/internal/ports/secondary"
)

func newUser(id, email, username string) *secondary.UserRecord {
	name := "Alice Example"
	return &secondary.UserRecord{
		ID:           id,
		Email:        email,
		Username:     username,
		PasswordHash: "$2a$12$hash",
		FullName:     &name,
		IsActive:     true,
		CreatedAt:    baseTime,
		UpdatedAt:    baseTime,
	}
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := sqlite.NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, newUser("U-1", "alice@example.com", "alice")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, "U-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Email != "alice@example.com" || !got.IsActive {
		t.Errorf("unexpected record %+v", got)
	}
	if got.FullName == nil || *got.FullName != "Alice Example" {
		t.Errorf("expected full name, got %v", got.FullName)
	}

	for _, login := range []string{"alice@example.com", "alice"} {
		byLogin, err := repo.GetByEmailOrUsername(ctx, login)
		if err != nil {
			t.Fatalf("GetByEmailOrUsername(%q) failed: %v", login, err)
		}
		if byLogin.ID != "U-1" {
			t.Errorf("expected U-1, got %s", byLogin.ID)
		}
	}
}

func TestUserRepository_Create_Duplicates(t *testing.T) {
	repo := sqlite.NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	if err := repo.Create(ctx, newUser("U-1", "alice@example.com", "alice")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	tests := []struct {
		name string
		user *secondary.UserRecord
	}{
		{name: "same email", user: newUser("U-2", "alice@example.com", "alice2")},
		{name: "same username", user: newUser("U-3", "other@example.com", "alice")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := repo.Create(ctx, tt.user); !errors.Is(err, apperr.ErrConflict) {
				t.Errorf("expected conflict, got %v", err)
			}
		})
	}
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := sqlite.NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if _, err := repo.GetByEmailOrUsername(ctx, "nobody"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
