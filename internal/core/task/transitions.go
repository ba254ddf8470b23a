package task

import "time"

// StatusTransitionResult contains the result of a status transition.
// It captures both the new status and the completion timestamp that must
// accompany it.
type StatusTransitionResult struct {
	NewStatus   Status
	CompletedAt *time.Time // nil unless NewStatus is done
}

// ApplyStatusTransition moves a task from its current status to next.
// - Entering done from another status stamps CompletedAt with now.
// - Staying done keeps the existing stamp.
// - Leaving done clears the stamp.
func ApplyStatusTransition(current Status, completedAt *time.Time, next Status, now time.Time) StatusTransitionResult {
	result := StatusTransitionResult{NewStatus: next}
	if next != StatusDone {
		return result
	}
	if current == StatusDone && completedAt != nil {
		stamp := *completedAt
		result.CompletedAt = &stamp
		return result
	}
	result.CompletedAt = &now
	return result
}

// Complete is the one-step completion path. It always re-stamps CompletedAt,
// so repeated calls are idempotent in status but not in timestamp.
func Complete(now time.Time) StatusTransitionResult {
	return StatusTransitionResult{NewStatus: StatusDone, CompletedAt: &now}
}
