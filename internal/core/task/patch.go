package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/worklog/internal/core/patch"
)

// Field is a patch slot that distinguishes "omitted" from "provided".
type Field[T any] = patch.Field[T]

// Provide returns a Field carrying v.
func Provide[T any](v T) Field[T] {
	return patch.Provide(v)
}

// Patch is a partial update. Only fields with Set=true are applied.
type Patch struct {
	Title       Field[string]
	Description Field[*string]
	Status      Field[Status]
	Priority    Field[Priority]
	DueDate     Field[*time.Time]
	Order       Field[int]
}

// IsEmpty reports whether the patch carries no fields.
func (p Patch) IsEmpty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Status.Set &&
		!p.Priority.Set && !p.DueDate.Set && !p.Order.Set
}

// State is the mutable part of a task as seen by the lifecycle rules.
type State struct {
	Title       string
	Description *string
	Status      Status
	Priority    Priority
	DueDate     *time.Time
	CompletedAt *time.Time
	Order       int
}

// ApplyPatch returns s with p applied. s is never modified; on error the
// caller keeps the original state.
func ApplyPatch(s State, p Patch, now time.Time) (State, error) {
	next := s

	if p.Title.Set {
		if r := CheckTitle(p.Title.Value); !r.Allowed {
			return s, r.Error()
		}
		next.Title = strings.TrimSpace(p.Title.Value)
	}
	if p.Description.Set {
		next.Description = p.Description.Value
	}
	if p.Priority.Set {
		if !p.Priority.Value.Valid() {
			return s, fmt.Errorf("invalid priority %q", p.Priority.Value)
		}
		next.Priority = p.Priority.Value
	}
	if p.DueDate.Set {
		next.DueDate = p.DueDate.Value
	}
	if p.Order.Set {
		next.Order = p.Order.Value
	}
	if p.Status.Set {
		if !p.Status.Value.Valid() {
			return s, fmt.Errorf("invalid status %q", p.Status.Value)
		}
		result := ApplyStatusTransition(s.Status, s.CompletedAt, p.Status.Value, now)
		next.Status = result.NewStatus
		next.CompletedAt = result.CompletedAt
	}

	return next, nil
}
