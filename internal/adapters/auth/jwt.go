// Package auth provides the token issuer and password hasher used by the
// identity provider.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/example/worklog/internal/apperr"
	"github.com/example/worklog/internal/ports/secondary"
)

var (
	// ErrInvalidToken is returned when the token is malformed or badly signed.
	ErrInvalidToken = apperr.Unauthorized("could not validate credentials")
	// ErrExpiredToken is returned when the token has expired.
	ErrExpiredToken = apperr.Unauthorized("token has expired")
)

const tokenTypeAccess = "access"

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	SecretKey           string
	Issuer              string
	AccessTokenDuration time.Duration
}

// Claims are the custom claims carried by an access token.
type Claims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTIssuer issues and verifies HS256 access tokens.
type JWTIssuer struct {
	config JWTConfig
	now    func() time.Time
}

// NewJWTIssuer creates a JWTIssuer with the given configuration.
func NewJWTIssuer(config JWTConfig) *JWTIssuer {
	return &JWTIssuer{config: config, now: time.Now}
}

// Issue signs an access token whose subject is userID.
func (m *JWTIssuer) Issue(userID string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.config.AccessTokenDuration)
	claims := Claims{
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.config.Issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.config.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify validates the token and returns its subject.
func (m *JWTIssuer) Verify(tokenString string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	}
	if m.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.config.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(m.config.SecretKey), nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.TokenType != tokenTypeAccess || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

var _ secondary.TokenIssuer = (*JWTIssuer)(nil)
