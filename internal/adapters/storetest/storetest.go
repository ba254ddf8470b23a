// Package storetest checks a secondary.TaskRepository against the listing
// rules in core/task. Each SQL adapter runs the same suite so that both
// stores filter and order exactly like the domain defines.
package storetest

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/example/worklog/internal/core/task"
	"github.com/example/worklog/internal/ports/secondary"
)

// Now is the instant the fixture is laid out around.
var Now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// Config describes the store under test.
type Config struct {
	Repo  secondary.TaskRepository
	Owner string
	Other string // a second owner whose tasks must never leak
	// NewID returns a fresh task ID. Defaults to "<owner>-<n>".
	NewID func(n int) string
}

type fixture struct {
	title       string
	description string
	status      task.Status
	priority    task.Priority
	order       int
	due         *time.Duration // offset from the today cutoff
}

func offset(d time.Duration) *time.Duration { return &d }

var fixtures = []fixture{
	{title: "Write report", description: "Quarterly numbers", status: task.StatusTodo, priority: task.PriorityHigh, order: 2, due: offset(-time.Hour)},
	{title: "Water plants", status: task.StatusDoing, priority: task.PriorityLow, order: 1},
	{title: "ÉTÉ Planning", status: task.StatusDone, priority: task.PriorityMedium, due: offset(-48 * time.Hour)},
	{title: "Привет мир", description: "Встреча с командой", status: task.StatusTodo, priority: task.PriorityHigh, due: offset(24 * time.Hour)},
	{title: "Call 100% Bob", status: task.StatusTodo, priority: task.PriorityMedium, order: 2},
	{title: "under_score task", status: task.StatusTodo, priority: task.PriorityLow, due: offset(-time.Second)},
	{title: "Archive", description: "old report", status: task.StatusDone, priority: task.PriorityMedium, order: 5},
	{title: "Inbox zero", status: task.StatusDoing, priority: task.PriorityHigh, order: 1, due: offset(0)},
	{title: "Plan week", status: task.StatusTodo, priority: task.PriorityMedium, order: 1, due: offset(-25 * time.Hour)},
}

// RunTaskRepository seeds the fixture and compares every listing and count
// with the reference computed from core/task.
func RunTaskRepository(t *testing.T, cfg Config) {
	t.Helper()
	ctx := context.Background()
	if cfg.NewID == nil {
		cfg.NewID = func(n int) string { return cfg.Owner + "-" + string(rune('a'+n)) }
	}
	cutoff := task.TodayCutoff(Now, time.UTC)

	var seeded []*secondary.TaskRecord
	for i, f := range fixtures {
		created := Now.Add(time.Duration(i) * time.Minute)
		r := &secondary.TaskRecord{
			ID:        cfg.NewID(i),
			UserID:    cfg.Owner,
			Title:     f.title,
			Status:    string(f.status),
			Priority:  string(f.priority),
			Order:     f.order,
			CreatedAt: created,
			UpdatedAt: created,
		}
		if f.description != "" {
			d := f.description
			r.Description = &d
		}
		if f.due != nil {
			d := cutoff.Add(*f.due)
			r.DueDate = &d
		}
		if f.status == task.StatusDone {
			r.CompletedAt = &created
		}
		if err := cfg.Repo.Create(ctx, r); err != nil {
			t.Fatalf("Create(%q) failed: %v", f.title, err)
		}
		seeded = append(seeded, r)
	}
	leak := &secondary.TaskRecord{
		ID:        cfg.NewID(len(fixtures)) + "-other",
		UserID:    cfg.Other,
		Title:     "Write report too",
		Status:    string(task.StatusTodo),
		Priority:  string(task.PriorityHigh),
		CreatedAt: Now,
		UpdatedAt: Now,
	}
	if err := cfg.Repo.Create(ctx, leak); err != nil {
		t.Fatalf("Create(other owner) failed: %v", err)
	}

	queries := []struct {
		name  string
		query secondary.TaskQuery
	}{
		{name: "general", query: secondary.TaskQuery{}},
		{name: "general window", query: secondary.TaskQuery{Skip: 2, Limit: 3}},
		{name: "skip without limit", query: secondary.TaskQuery{Skip: 7}},
		{name: "status", query: secondary.TaskQuery{Filters: secondary.TaskFilters{Status: "todo"}}},
		{name: "priority", query: secondary.TaskQuery{Filters: secondary.TaskFilters{Priority: "high"}}},
		{name: "search ascii", query: secondary.TaskQuery{Filters: secondary.TaskFilters{Search: "REPORT"}}},
		{name: "search accented", query: secondary.TaskQuery{Filters: secondary.TaskFilters{Search: "été"}}},
		{name: "search cyrillic description", query: secondary.TaskQuery{Filters: secondary.TaskFilters{Search: "ВСТРЕЧА"}}},
		{name: "search percent is literal", query: secondary.TaskQuery{Filters: secondary.TaskFilters{Search: "100%"}}},
		{name: "search underscore is literal", query: secondary.TaskQuery{Filters: secondary.TaskFilters{Search: "_"}}},
		{name: "status and search", query: secondary.TaskQuery{Filters: secondary.TaskFilters{Status: "done", Search: "report"}}},
		{name: "exclude done", query: secondary.TaskQuery{Filters: secondary.TaskFilters{ExcludeDone: true}}},
		{name: "today", query: secondary.TaskQuery{
			Order:   secondary.OrderToday,
			Filters: secondary.TaskFilters{ExcludeDone: true, DueBefore: &cutoff},
		}},
		{name: "today window", query: secondary.TaskQuery{
			Order:   secondary.OrderToday,
			Filters: secondary.TaskFilters{ExcludeDone: true, DueBefore: &cutoff},
			Skip:    1,
			Limit:   2,
		}},
	}

	for _, q := range queries {
		t.Run(q.name, func(t *testing.T) {
			q.query.Filters.OwnerID = cfg.Owner
			want := expected(seeded, q.query)

			got, err := cfg.Repo.List(ctx, q.query)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if gotIDs := idsOf(got); !slices.Equal(gotIDs, idsOf(want.window)) {
				t.Errorf("List = %v, want %v", titlesOf(got), titlesOf(want.window))
			}

			count, err := cfg.Repo.Count(ctx, q.query.Filters)
			if err != nil {
				t.Fatalf("Count failed: %v", err)
			}
			if count != want.total {
				t.Errorf("Count = %d, want %d", count, want.total)
			}
		})
	}
}

type result struct {
	window []*secondary.TaskRecord
	total  int
}

func expected(all []*secondary.TaskRecord, q secondary.TaskQuery) result {
	var matched []*secondary.TaskRecord
	for _, r := range all {
		if matches(r, q.Filters) {
			matched = append(matched, r)
		}
	}

	less := task.LessGeneral
	if q.Order == secondary.OrderToday {
		less = task.LessToday
	}
	slices.SortStableFunc(matched, func(a, b *secondary.TaskRecord) int {
		switch {
		case less(sortKey(a), sortKey(b)):
			return -1
		case less(sortKey(b), sortKey(a)):
			return 1
		}
		return 0
	})

	window := matched
	if q.Skip >= len(window) {
		window = nil
	} else {
		window = window[q.Skip:]
	}
	if q.Limit > 0 && len(window) > q.Limit {
		window = window[:q.Limit]
	}
	return result{window: window, total: len(matched)}
}

func matches(r *secondary.TaskRecord, f secondary.TaskFilters) bool {
	if r.UserID != f.OwnerID {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.Priority != "" && r.Priority != f.Priority {
		return false
	}
	if !task.MatchesSearch(r.Title, r.Description, f.Search) {
		return false
	}
	status := task.Status(r.Status)
	switch {
	case f.ExcludeDone && f.DueBefore != nil:
		return task.InToday(status, r.DueDate, *f.DueBefore)
	case f.ExcludeDone:
		return status != task.StatusDone
	case f.DueBefore != nil:
		return r.DueDate == nil || r.DueDate.Before(*f.DueBefore)
	}
	return true
}

func sortKey(r *secondary.TaskRecord) task.SortKey {
	return task.SortKey{
		ID:        r.ID,
		Status:    task.Status(r.Status),
		Priority:  task.Priority(r.Priority),
		Order:     r.Order,
		CreatedAt: r.CreatedAt,
	}
}

func idsOf(records []*secondary.TaskRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func titlesOf(records []*secondary.TaskRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Title
	}
	return out
}
