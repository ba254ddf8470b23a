package task

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Bounds for list queries and field sizes.
const (
	MaxTitleLength = 255
	MinListLimit   = 1
	MaxListLimit   = 100
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CreateTaskContext provides context for task creation guards.
type CreateTaskContext struct {
	Title    string
	Status   Status   // empty means default
	Priority Priority // empty means default
}

// ListTasksContext provides context for list pagination guards.
type ListTasksContext struct {
	Skip  int
	Limit int
}

// CanCreateTask evaluates whether a task can be created.
// Rules:
// - Title must be non-empty and at most MaxTitleLength characters
// - Status and priority, when given, must be known values
func CanCreateTask(ctx CreateTaskContext) GuardResult {
	if r := CheckTitle(ctx.Title); !r.Allowed {
		return r
	}
	if ctx.Status != "" && !ctx.Status.Valid() {
		return GuardResult{Reason: fmt.Sprintf("invalid status %q", ctx.Status)}
	}
	if ctx.Priority != "" && !ctx.Priority.Valid() {
		return GuardResult{Reason: fmt.Sprintf("invalid priority %q", ctx.Priority)}
	}
	return GuardResult{Allowed: true}
}

// CheckTitle evaluates a task title. Length is measured after trimming, since
// the trimmed title is what gets stored.
func CheckTitle(title string) GuardResult {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return GuardResult{Reason: "title is required"}
	}
	if utf8.RuneCountInString(trimmed) > MaxTitleLength {
		return GuardResult{Reason: fmt.Sprintf("title must be at most %d characters", MaxTitleLength)}
	}
	return GuardResult{Allowed: true}
}

// CanListTasks evaluates pagination bounds. Out-of-range values are rejected, never clamped.
func CanListTasks(ctx ListTasksContext) GuardResult {
	if ctx.Skip < 0 {
		return GuardResult{Reason: fmt.Sprintf("skip must be >= 0 (got %d)", ctx.Skip)}
	}
	if ctx.Limit < MinListLimit || ctx.Limit > MaxListLimit {
		return GuardResult{Reason: fmt.Sprintf("limit must be between %d and %d (got %d)", MinListLimit, MaxListLimit, ctx.Limit)}
	}
	return GuardResult{Allowed: true}
}
