package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/worklog/internal/apperr"
)

func testConfig() JWTConfig {
	return JWTConfig{
		SecretKey:           "test-secret-key",
		Issuer:              "worklog-test",
		AccessTokenDuration: 30 * time.Minute,
	}
}

func TestJWTIssuer_IssueAndVerify(t *testing.T) {
	issuer := NewJWTIssuer(testConfig())
	fixed := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return fixed }

	token, expiresAt, err := issuer.Issue("user-123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, fixed.Add(30*time.Minute), expiresAt)

	subject, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)
}

func TestJWTIssuer_Expired(t *testing.T) {
	issuer := NewJWTIssuer(testConfig())
	issued := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return issued }

	token, _, err := issuer.Issue("user-123")
	require.NoError(t, err)

	issuer.now = func() time.Time { return issued.Add(31 * time.Minute) }
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestJWTIssuer_Rejects(t *testing.T) {
	issuer := NewJWTIssuer(testConfig())

	otherSecret := testConfig()
	otherSecret.SecretKey = "another-secret"
	forged, _, err := NewJWTIssuer(otherSecret).Issue("user-123")
	require.NoError(t, err)

	otherIssuer := testConfig()
	otherIssuer.Issuer = "someone-else"
	foreign, _, err := NewJWTIssuer(otherIssuer).Issue("user-123")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		TokenType:        tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-123", Issuer: "worklog-test"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.token"},
		{name: "empty", token: ""},
		{name: "wrong secret", token: forged},
		{name: "wrong issuer", token: foreign},
		{name: "unsigned", token: none},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Verify(tt.token)
			assert.True(t, errors.Is(err, apperr.ErrUnauthorized), "expected unauthorized, got %v", err)
		})
	}
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, hasher.Compare(hash, "correct horse"))
	assert.Error(t, hasher.Compare(hash, "battery staple"))

	again, err := hasher.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "expected salted hashes to differ")
}

func TestNewBcryptHasher_DefaultCost(t *testing.T) {
	assert.Equal(t, DefaultBcryptCost, NewBcryptHasher(0).cost)
}
