// Package apperr defines the error taxonomy shared by services and adapters.
// Callers classify errors with errors.Is against the sentinels below.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a missing entity, or one owned by someone else.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a uniqueness violation.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized marks a missing or invalid credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrStorage marks a failure in the persistence layer.
	ErrStorage = errors.New("storage failure")
)

// Validation returns an ErrValidation with a formatted reason.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound returns an ErrNotFound for the given entity kind and id.
func NotFound(entity, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, entity, id)
}

// Conflict returns an ErrConflict with a formatted reason.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// Unauthorized returns an ErrUnauthorized with a formatted reason.
func Unauthorized(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, fmt.Sprintf(format, args...))
}

// Storage wraps a driver error as an ErrStorage. The original error stays in the chain.
func Storage(op string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, ErrStorage, err)
}

// Kind returns the sentinel that classifies err, or nil when err is unclassified.
func Kind(err error) error {
	for _, kind := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrUnauthorized, ErrStorage} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
