package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Timestamps are kept at microsecond precision, the finest both stores persist.
func systemNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func normalizeTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	n := t.UTC().Truncate(time.Microsecond)
	return &n
}

// newID returns a time-ordered UUIDv7 string.
func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("uuid: %w", err)
	}
	return id.String(), nil
}

func trimTitle(title string) string {
	return strings.TrimSpace(title)
}
