package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/example/worklog/internal/adapters/sqlite"
	"github.com/example/worklog/internal/adapters/storetest"
	"github.com/example/worklog/internal/apperr"
	"github.com/example/worklog/internal/ports/secondary"
)

const (
	alice = "user-alice"
	bob   = "user-bob"
)

// setupTaskTestDB creates the test database with two owners.
func setupTaskTestDB(t *testing.T) (*sqlite.TaskRepository, context.Context) {
	t.Helper()
	testDB := setupTestDB(t)
	seedUser(t, testDB, alice, "alice")
	seedUser(t, testDB, bob, "bob")
	return sqlite.NewTaskRepository(testDB), context.Background()
}

// taskOpt adjusts a test task before insertion.
type taskOpt func(*secondary.TaskRecord)

func withStatus(s string) taskOpt {
	return func(r *secondary.TaskRecord) {
		r.Status = s
		if s == "done" {
			at := r.CreatedAt
			r.CompletedAt = &at
		}
	}
}

func withPriority(p string) taskOpt { return func(r *secondary.TaskRecord) { r.Priority = p } }
func withOrder(o int) taskOpt       { return func(r *secondary.TaskRecord) { r.Order = o } }
func withDue(d time.Time) taskOpt   { return func(r *secondary.TaskRecord) { r.DueDate = &d } }
func withDescription(d string) taskOpt {
	return func(r *secondary.TaskRecord) { r.Description = &d }
}

// createTestTask inserts a task created n seconds after baseTime.
func createTestTask(t *testing.T, repo *sqlite.TaskRepository, ctx context.Context, owner, id, title string, n int, opts ...taskOpt) *secondary.TaskRecord {
	t.Helper()
	created := baseTime.Add(time.Duration(n) * time.Second)
	record := &secondary.TaskRecord{
		ID:        id,
		UserID:    owner,
		Title:     title,
		Status:    "todo",
		Priority:  "medium",
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(record)
	}
	if err := repo.Create(ctx, record); err != nil {
		t.Fatalf("Create(%s) failed: %v", id, err)
	}
	return record
}

func ids(records []*secondary.TaskRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func assertIDs(t *testing.T, got []*secondary.TaskRecord, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("expected %v, got %v", want, gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, gotIDs)
		}
	}
}

func TestTaskRepository_CreateAndGet(t *testing.T) {
	repo, ctx := setupTaskTestDB(t)
	due := time.Date(2026, 3, 12, 17, 30, 0, 0, time.FixedZone("KST", 9*3600))

	createTestTask(t, repo, ctx, alice, "TASK-001", "Write report", 0,
		withDescription("quarterly numbers"), withPriority("high"), withOrder(3), withDue(due))

	got, err := repo.GetByID(ctx, alice, "TASK-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "Write report" || got.Priority != "high" || got.Order != 3 {
		t.Errorf("unexpected record %+v", got)
	}
	if got.Description == nil || *got.Description != "quarterly numbers" {
		t.Errorf("expected description, got %v", got.Description)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("expected due %v, got %v", due, got.DueDate)
	}
	if !got.CreatedAt.Equal(baseTime) {
		t.Errorf("expected created_at %v, got %v", baseTime, got.CreatedAt)
	}
	if got.CompletedAt != nil {
		t.Errorf("expected no completed_at, got %v", got.CompletedAt)
	}
}

func TestTaskRepository_GetByID_ScopedByOwner(t *testing.T) {
	repo, ctx := setupTaskTestDB(t)
	createTestTask(t, repo, ctx, alice, "TASK-001", "private", 0)

	_, err := repo.GetByID(ctx, bob, "TASK-001")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found for other owner, got %v", err)
	}
	_, err = repo.GetByID(ctx, alice, "TASK-999")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found for missing id, got %v", err)
	}
}

func TestTaskRepository_Create_DuplicateID(t *testing.T) {
	repo, ctx := setupTaskTestDB(t)
	createTestTask(t, repo, ctx, alice, "TASK-001", "first", 0)

	err := repo.Create(ctx, &secondary.TaskRecord{
		ID: "TASK-001", UserID: alice, Title: "second", Status: "todo", Priority: "low",
		CreatedAt: baseTime, UpdatedAt: baseTime,
	})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestTaskRepository_Create_UnknownOwner(t *testing.T) {
	repo, ctx := setupTaskTestDB(t)

	err := repo.Create(ctx, &secondary.TaskRecord{
		ID: "TASK-001", UserID: "ghost", Title: "orphan", Status: "todo", Priority: "low",
		CreatedAt: baseTime, UpdatedAt: baseTime,
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found for unknown owner, got %v", err)
	}
}

func TestTaskRepository_Create_RejectsBrokenInvariant(t *testing.T) {
	repo, ctx := setupTaskTestDB(t)

	err := repo.Create(ctx, &secondary.TaskRecord{
		ID: "TASK-001", UserID: alice, Title: "done without stamp", Status: "done", Priority: "low",
		CreatedAt: baseTime, UpdatedAt: baseTime,
	})
	if err == nil {
		t.Fatal("expected check constraint to reject done task without completed_at")
	}
}

func TestTaskRepository_Update(t *testing.T) {
	repo, ctx := setupTaskTestDB(t)
	record := createTestTask(t, repo, ctx, alice, "TASK-001", "Original", 0, withDescription("remove me"))

	completed := baseTime.Add(time.Hour)
	record.Title = "Renamed"
	record.Description = nil
	record.Status = "done"
	record.CompletedAt = &completed
	record.UpdatedAt = completed

	if err := repo.Update(ctx, record); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := repo.GetByID(ctx, alice, "TASK-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "Renamed" || got.Description != nil || got.Status != "done" {
		t.Errorf("unexpected record %+v", got)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(completed) {
		t.Errorf("expected completed_at %v, got %v", completed, got.CompletedAt)
	}
	if !got.UpdatedAt.Equal(completed) {
		t.Errorf("expected updated_at %v, got %v", completed, got.UpdatedAt)
	}
}

func TestTaskRepository_Update_OtherOwnerIsNotFound(t *testing.T) {
	repo, ctx := setupTaskTestDB(t)
	record := createTestTask(t, repo, ctx, alice, "TASK-001", "Original", 0)

	hijack := *record
	hijack.UserID = bob
	hijack.Title = "Hijacked"
	if err := repo.Update(ctx, &hijack); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	got, _ := repo.GetByID(ctx, alice, "TASK-001")
	if got.Title != "Original" {
		t.Errorf("expected title unchanged, got %q", got.Title)
	}
}

func TestTaskRepository_Delete(t *testing.T) {
	repo, ctx := setupTaskTestDB(t)
	createTestTask(t, repo, ctx, alice, "TASK-001", "temp", 0)

	if err := repo.Delete(ctx, bob, "TASK-001"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found deleting other owner's task, got %v", err)
	}
	if err := repo.Delete(ctx, alice, "TASK-001"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Delete(ctx, alice, "TASK-001"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestTaskRepository_List_GeneralOrder(t *testing.T) {
	repo, ctx := setupTaskTestDB(t)
	createTestTask(t, repo, ctx, alice, "T-done", "done early", 0, withStatus("done"), withOrder(-10))
	createTestTask(t, repo, ctx, alice, "T-b", "order one, newer", 2, withOrder(1))
	createTestTask(t, repo, ctx, alice, "T-a", "order one, older", 1, withOrder(1))
	createTestTask(t, repo, ctx, alice, "T-z", "order zero", 3, withStatus("doing"))
	createTestTask(t, repo, ctx, bob, "T-bob", "not mine", 0)

	got, err := repo.List(ctx, secondary.TaskQuery{Filters: secondary.TaskFilters{OwnerID: alice}, Order: secondary.OrderGeneral})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	assertIDs(t, got, "T-z", "T-a", "T-b", "T-done")
}

func TestTaskRepository_List_Paging(t *testing.T) {
	repo, ctx := setupTaskTestDB(t)
	for i := 0; i < 12; i++ {
		createTestTask(t, repo, ctx, alice, fmt.Sprintf("T-%02d", i), fmt.Sprintf("task %d", i), i)
	}

	seen := make(map[string]bool)
	for skip := 0; skip < 12; skip += 5 {
		got, err := repo.List(ctx, secondary.TaskQuery{
			Filters: secondary.TaskFilters{OwnerID: alice},
			Skip:    skip,
			Limit:   5,
		})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		for i, r := range got {
			if want := fmt.Sprintf("T-%02d", skip+i); r.ID != want {
				t.Errorf("skip=%d position %d: expected %s, got %s", skip, i, want, r.ID)
			}
			if seen[r.ID] {
				t.Errorf("%s appeared on two pages", r.ID)
			}
			seen[r.ID] = true
		}
	}
	if len(seen) != 12 {
		t.Errorf("expected 12 tasks across pages, got %d", len(seen))
	}

	past, err := repo.List(ctx, secondary.TaskQuery{Filters: secondary.TaskFilters{OwnerID: alice}, Skip: 50, Limit: 5})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(past) != 0 {
		t.Errorf("expected empty page past the end, got %v", ids(past))
	}
}

func TestTaskRepository_List_Filters(t *testing.T) {
	repo, ctx := setupTaskTestDB(t)
	createTestTask(t, repo, ctx, alice, "T-1", "Team Meeting", 0, withPriority("high"))
	createTestTask(t, repo, ctx, alice, "T-2", "Groceries", 1, withPriority("low"))
	createTestTask(t, repo, ctx, alice, "T-3", "Budget", 2, withPriority("low"), withDescription("prep for the MEETING"))
	createTestTask(t, repo, ctx, alice, "T-4", "100% done_ish", 3, withPriority("low"))
	createTestTask(t, repo, ctx, alice, "T-5", "ÉTÉ Planning", 4)
	createTestTask(t, repo, ctx, alice, "T-6", "Привет мир", 5, withDescription("Встреча с командой"))

	tests := []struct {
		name    string
		filters secondary.TaskFilters
		want    []string
	}{
		{name: "priority", filters: secondary.TaskFilters{OwnerID: alice, Priority: "low"}, want: []string{"T-2", "T-3", "T-4"}},
		{name: "search title or description", filters: secondary.TaskFilters{OwnerID: alice, Search: "meeting"}, want: []string{"T-1", "T-3"}},
		{name: "search and priority", filters: secondary.TaskFilters{OwnerID: alice, Search: "meeting", Priority: "high"}, want: []string{"T-1"}},
		{name: "percent is literal", filters: secondary.TaskFilters{OwnerID: alice, Search: "100%"}, want: []string{"T-4"}},
		{name: "underscore is literal", filters: secondary.TaskFilters{OwnerID: alice, Search: "e_i"}, want: []string{"T-4"}},
		{name: "wildcard alone matches nothing else", filters: secondary.TaskFilters{OwnerID: alice, Search: "%"}, want: []string{"T-4"}},
		{name: "accented title folds case", filters: secondary.TaskFilters{OwnerID: alice, Search: "été"}, want: []string{"T-5"}},
		{name: "cyrillic title folds case", filters: secondary.TaskFilters{OwnerID: alice, Search: "привет"}, want: []string{"T-6"}},
		{name: "cyrillic description folds case", filters: secondary.TaskFilters{OwnerID: alice, Search: "ВСТРЕЧА"}, want: []string{"T-6"}},
		{name: "ascii part of mixed title", filters: secondary.TaskFilters{OwnerID: alice, Search: "planning"}, want: []string{"T-5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, secondary.TaskQuery{Filters: tt.filters, Limit: 100})
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			assertIDs(t, got, tt.want...)
		})
	}
}

func TestTaskRepository_List_TodayScenario(t *testing.T) {
	repo, ctx := setupTaskTestDB(t)
	cutoff := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	createTestTask(t, repo, ctx, alice, "A", "A", 0, withPriority("high"), withOrder(2))
	createTestTask(t, repo, ctx, alice, "B", "B", 1, withPriority("high"), withOrder(1), withDue(cutoff.Add(-30*time.Hour)))
	createTestTask(t, repo, ctx, alice, "C", "C", 2, withPriority("low"), withDue(cutoff.Add(-time.Microsecond)))
	createTestTask(t, repo, ctx, alice, "D", "D", 3, withPriority("high"), withStatus("done"))
	createTestTask(t, repo, ctx, alice, "E", "E", 4, withPriority("high"), withDue(cutoff))

	filters := secondary.TaskFilters{OwnerID: alice, ExcludeDone: true, DueBefore: &cutoff}
	got, err := repo.List(ctx, secondary.TaskQuery{Filters: filters, Order: secondary.OrderToday})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	assertIDs(t, got, "B", "A", "C")

	count, err := repo.Count(ctx, filters)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected today count 3, got %d", count)
	}
}

func TestTaskRepository_Count(t *testing.T) {
	repo, ctx := setupTaskTestDB(t)
	createTestTask(t, repo, ctx, alice, "T-1", "one", 0)
	createTestTask(t, repo, ctx, alice, "T-2", "two", 1, withStatus("doing"))
	createTestTask(t, repo, ctx, alice, "T-3", "three", 2, withStatus("done"))
	createTestTask(t, repo, ctx, bob, "T-4", "bob", 3)

	tests := []struct {
		name    string
		filters secondary.TaskFilters
		want    int
	}{
		{name: "all of alice", filters: secondary.TaskFilters{OwnerID: alice}, want: 3},
		{name: "done", filters: secondary.TaskFilters{OwnerID: alice, Status: "done"}, want: 1},
		{name: "exclude done", filters: secondary.TaskFilters{OwnerID: alice, ExcludeDone: true}, want: 2},
		{name: "bob", filters: secondary.TaskFilters{OwnerID: bob}, want: 1},
		{name: "nobody", filters: secondary.TaskFilters{OwnerID: "user-none"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Count(ctx, tt.filters)
			if err != nil {
				t.Fatalf("Count failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestTaskRepository_DeletingUserCascades(t *testing.T) {
	testDB := setupTestDB(t)
	seedUser(t, testDB, alice, "alice")
	repo := sqlite.NewTaskRepository(testDB)
	ctx := context.Background()
	createTestTask(t, repo, ctx, alice, "T-1", "one", 0)

	if _, err := testDB.Exec("DELETE FROM users WHERE id = ?", alice); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	count, err := repo.Count(ctx, secondary.TaskFilters{OwnerID: alice})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected tasks removed with their owner, got %d", count)
	}
}

func TestTaskRepository_MatchesListingRules(t *testing.T) {
	repo, _ := setupTaskTestDB(t)
	storetest.RunTaskRepository(t, storetest.Config{Repo: repo, Owner: alice, Other: bob})
}
