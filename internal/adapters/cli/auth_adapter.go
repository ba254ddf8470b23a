package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/example/worklog/internal/ports/primary"
)

// AuthAdapter translates CLI operations to AuthService calls.
type AuthAdapter struct {
	service primary.AuthService
	out     io.Writer
}

// NewAuthAdapter creates a new AuthAdapter with the given service.
func NewAuthAdapter(service primary.AuthService, out io.Writer) *AuthAdapter {
	return &AuthAdapter{service: service, out: out}
}

func (a *AuthAdapter) Signup(ctx context.Context, req primary.SignupRequest) (*primary.User, error) {
	user, err := a.service.Signup(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to sign up: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Registered %s (%s)\n", user.Username, user.Email)
	fmt.Fprintf(a.out, "  User ID: %s\n", user.ID)
	return user, nil
}

// Login prints the token in a form that can be exported into the shell.
func (a *AuthAdapter) Login(ctx context.Context, req primary.LoginRequest) (*primary.AccessToken, error) {
	token, err := a.service.Login(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	fmt.Fprintf(a.out, "export WORKLOG_TOKEN=%s\n", token.Token)
	fmt.Fprintf(a.out, "# expires %s\n", token.ExpiresAt.Format(time.RFC3339))
	return token, nil
}

// Me prints the profile of the authenticated user.
func (a *AuthAdapter) Me(ctx context.Context, userID string) (*primary.User, error) {
	user, err := a.service.Me(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	fmt.Fprintf(a.out, "\nUser: %s\n", user.ID)
	fmt.Fprintf(a.out, "Username: %s\n", user.Username)
	fmt.Fprintf(a.out, "Email:    %s\n", user.Email)
	if name := deref(user.FullName); name != "" {
		fmt.Fprintf(a.out, "Name:     %s\n", name)
	}
	fmt.Fprintf(a.out, "Active:   %t\n", user.IsActive)
	fmt.Fprintf(a.out, "Joined:   %s\n", user.CreatedAt.Format(time.RFC3339))
	fmt.Fprintln(a.out)
	return user, nil
}
