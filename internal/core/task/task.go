// Package task contains the pure business logic for task operations.
// This is part of the Functional Core - no I/O, only pure functions.
package task

import (
	"fmt"
	"strings"
)

// Status represents the possible states of a task.
type Status string

const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// Priority represents the urgency of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusTodo, StatusDoing, StatusDone}

// Priorities lists every priority in rank order.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// priorityRank is the ordering table used by the today listing.
var priorityRank = map[Priority]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusTodo || s == StatusDoing || s == StatusDone
}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	_, ok := priorityRank[p]
	return ok
}

// Rank returns the sort rank of p (HIGH first). Unknown priorities sort last.
func (p Priority) Rank() int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return len(priorityRank)
}

// ParseStatus parses a case-insensitive status name.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("invalid status %q (want todo, doing or done)", s)
	}
	return status, nil
}

// ParsePriority parses a case-insensitive priority name.
func ParsePriority(s string) (Priority, error) {
	priority := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !priority.Valid() {
		return "", fmt.Errorf("invalid priority %q (want high, medium or low)", s)
	}
	return priority, nil
}

// InitialStatus returns the status of a task created without one.
func InitialStatus() Status {
	return StatusTodo
}

// DefaultPriority returns the priority of a task created without one.
func DefaultPriority() Priority {
	return PriorityMedium
}
