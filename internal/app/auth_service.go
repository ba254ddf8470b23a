package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/worklog/internal/apperr"
	"github.com/example/worklog/internal/ports/primary"
	"github.com/example/worklog/internal/ports/secondary"
)

const (
	minPasswordLength = 8
	maxPasswordBytes  = 72 // bcrypt input limit
	tokenTypeBearer   = "bearer"
)

// errBadCredentials is shared by both login failure paths so the response
// does not reveal which of email or password was wrong.
var errBadCredentials = apperr.Unauthorized("incorrect email or password")

// AuthServiceImpl implements the AuthService interface.
type AuthServiceImpl struct {
	userRepo secondary.UserRepository
	hasher   secondary.PasswordHasher
	tokens   secondary.TokenIssuer
	logger   *slog.Logger
	now      func() time.Time
	newID    func() (string, error)
}

// NewAuthService creates a new AuthService with injected dependencies.
func NewAuthService(
	userRepo secondary.UserRepository,
	hasher secondary.PasswordHasher,
	tokens secondary.TokenIssuer,
	logger *slog.Logger,
) *AuthServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthServiceImpl{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
		now:      systemNow,
		newID:    newID,
	}
}

// Signup registers a new user.
func (s *AuthServiceImpl) Signup(ctx context.Context, req primary.SignupRequest) (*primary.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	if !strings.Contains(email, "@") {
		return nil, apperr.Validation("email must be a valid address")
	}
	if username == "" {
		return nil, apperr.Validation("username is required")
	}
	if len([]rune(req.Password)) < minPasswordLength {
		return nil, apperr.Validation("password must be at least %d characters", minPasswordLength)
	}
	if len(req.Password) > maxPasswordBytes {
		return nil, apperr.Validation("password must be at most %d bytes", maxPasswordBytes)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	now := s.now()
	record := &secondary.UserRecord{
		ID:           id,
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		FullName:     req.FullName,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", id, "username", username)
	return recordToUser(record), nil
}

// Login exchanges credentials for a bearer token. The login may be an email or a username.
func (s *AuthServiceImpl) Login(ctx context.Context, req primary.LoginRequest) (*primary.AccessToken, error) {
	login := strings.TrimSpace(req.Email)
	if strings.Contains(login, "@") {
		login = strings.ToLower(login)
	}

	record, err := s.userRepo.GetByEmailOrUsername(ctx, login)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := s.hasher.Compare(record.PasswordHash, req.Password); err != nil {
		return nil, errBadCredentials
	}
	if !record.IsActive {
		return nil, apperr.Unauthorized("inactive user")
	}

	token, expiresAt, err := s.tokens.Issue(record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &primary.AccessToken{
		Token:     token,
		TokenType: tokenTypeBearer,
		ExpiresAt: expiresAt,
	}, nil
}

// Authenticate verifies a bearer token and returns the id of an active user.
func (s *AuthServiceImpl) Authenticate(ctx context.Context, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", apperr.Unauthorized("missing token")
	}

	userID, err := s.tokens.Verify(token)
	if err != nil {
		return "", err
	}

	record, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, apperr.ErrNotFound) {
		return "", apperr.Unauthorized("could not validate credentials")
	}
	if err != nil {
		return "", err
	}
	if !record.IsActive {
		return "", apperr.Unauthorized("inactive user")
	}
	return record.ID, nil
}

// Me returns the profile of the given user.
func (s *AuthServiceImpl) Me(ctx context.Context, userID string) (*primary.User, error) {
	record, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return recordToUser(record), nil
}

func recordToUser(r *secondary.UserRecord) *primary.User {
	return &primary.User{
		ID:        r.ID,
		Email:     r.Email,
		Username:  r.Username,
		FullName:  r.FullName,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Ensure AuthServiceImpl implements the interface
var _ primary.AuthService = (*AuthServiceImpl)(nil)
