package task

import (
	"strings"
	"time"
)

// SortKey holds the fields that participate in task ordering.
type SortKey struct {
	ID        string
	Status    Status
	Priority  Priority
	Order     int
	CreatedAt time.Time
}

// LessGeneral orders the general listing: incomplete before complete, then
// manual order, then creation order.
func LessGeneral(a, b SortKey) bool {
	aDone, bDone := a.Status == StatusDone, b.Status == StatusDone
	if aDone != bDone {
		return !aDone
	}
	if a.Order != b.Order {
		return a.Order < b.Order
	}
	return lessCreated(a, b)
}

// LessToday orders the today listing: priority rank, then manual order, then
// creation order.
func LessToday(a, b SortKey) bool {
	if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
		return ra < rb
	}
	if a.Order != b.Order {
		return a.Order < b.Order
	}
	return lessCreated(a, b)
}

func lessCreated(a, b SortKey) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// MatchesSearch reports whether term occurs, case-insensitively, in the title
// or the description. An empty term matches everything.
func MatchesSearch(title string, description *string, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	if strings.Contains(strings.ToLower(title), needle) {
		return true
	}
	return description != nil && strings.Contains(strings.ToLower(*description), needle)
}
