package secondary

import "time"

// TokenIssuer issues and verifies bearer tokens.
type TokenIssuer interface {
	// Issue signs a token naming userID.
	Issue(userID string) (token string, expiresAt time.Time, err error)

	// Verify checks a token and returns the user ID it names.
	Verify(token string) (string, error)
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
