package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/example/worklog/internal/core/note"
	"github.com/example/worklog/internal/core/task"
	"github.com/example/worklog/internal/ports/primary"
)

func statusBadge(s task.Status) string {
	label := fmt.Sprintf("[%s]", s)
	switch s {
	case task.StatusTodo:
		return color.New(color.FgHiBlack).Sprint(label)
	case task.StatusDoing:
		return color.New(color.FgHiYellow).Sprint(label)
	case task.StatusDone:
		return color.New(color.FgHiGreen).Sprint(label)
	default:
		return label
	}
}

func priorityBadge(p task.Priority) string {
	upper := strings.ToUpper(string(p))
	switch p {
	case task.PriorityHigh:
		return color.New(color.FgRed).Sprint(upper)
	case task.PriorityMedium:
		return color.New(color.FgYellow).Sprint(upper)
	case task.PriorityLow:
		return color.New(color.FgHiBlue).Sprint(upper)
	default:
		return upper
	}
}

func moodBadge(m *note.Mood) string {
	if m == nil {
		return "-"
	}
	switch *m {
	case note.MoodGreat:
		return color.New(color.FgHiGreen).Sprint(*m)
	case note.MoodGood:
		return color.New(color.FgGreen).Sprint(*m)
	case note.MoodOkay:
		return color.New(color.FgYellow).Sprint(*m)
	case note.MoodBad:
		return color.New(color.FgRed).Sprint(*m)
	default:
		return string(*m)
	}
}

// formatDue renders a due date, flagging open tasks that are overdue at now.
func formatDue(t *primary.Task, now time.Time) string {
	if t.DueDate == nil {
		return "-"
	}
	due := t.DueDate.Format("2006-01-02 15:04")
	if t.Status != task.StatusDone && t.DueDate.Before(now) {
		return color.New(color.FgRed).Sprintf("%s (overdue)", due)
	}
	return due
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.RFC3339)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
