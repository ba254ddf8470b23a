package task

import "time"

// TodayCutoff returns the first instant of the calendar day after now in loc.
// A task is due today when its due date is strictly before the cutoff.
func TodayCutoff(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
}

// InToday reports whether a task belongs in the today listing: not done, and
// either in the backlog (no due date) or due before cutoff.
func InToday(status Status, dueDate *time.Time, cutoff time.Time) bool {
	if status == StatusDone {
		return false
	}
	return dueDate == nil || dueDate.Before(cutoff)
}
