package primary

import (
	"context"
	"time"
)

// AuthService defines the primary port for identity operations.
type AuthService interface {
	// Signup registers a new user.
	Signup(ctx context.Context, req SignupRequest) (*User, error)

	// Login exchanges credentials for an access token.
	Login(ctx context.Context, req LoginRequest) (*AccessToken, error)

	// Authenticate verifies a bearer token and returns the owner id it names.
	Authenticate(ctx context.Context, token string) (string, error)

	// Me returns the profile of the given user.
	Me(ctx context.Context, userID string) (*User, error)
}

// SignupRequest contains parameters for registering a user.
type SignupRequest struct {
	Email    string
	Username string
	Password string
	FullName *string
}

// LoginRequest contains login credentials. Email may also carry a username.
type LoginRequest struct {
	Email    string
	Password string
}

// AccessToken is an issued bearer token.
type AccessToken struct {
	Token     string
	TokenType string
	ExpiresAt time.Time
}

// User represents a user at the port boundary. The password hash never leaves the service.
type User struct {
	ID        string
	Email     string
	Username  string
	FullName  *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
