package task

import (
	"fmt"
	"strings"
	"time"
)

var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.DateOnly,
}

// ParseDueDate accepts RFC 3339, a zone-less timestamp (read as UTC) or a
// plain date (midnight UTC). The result is in UTC.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid due date %q (want YYYY-MM-DD or RFC 3339)", s)
}
