package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/example/worklog/internal/core/note"
	"github.com/example/worklog/internal/core/task"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// setupCLI writes a config pointing at a temp database and returns its path.
func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "worklog.toml")
	content := fmt.Sprintf(`
[database]
driver = "sqlite"
path = %q

[auth]
secret_key = "cli-test-secret"
bcrypt_cost = 4

[log]
level = "error"
`, filepath.Join(dir, "worklog.db"))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv(TokenEnv, "")
	t.Setenv(PasswordEnv, "")
	return path
}

func run(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", configPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, configPath string, args ...string) string {
	t.Helper()
	out, err := run(t, configPath, args...)
	if err != nil {
		t.Fatalf("worklog %s failed: %v\noutput: %s", strings.Join(args, " "), err, out)
	}
	return out
}

var (
	tokenPattern  = regexp.MustCompile(`export WORKLOG_TOKEN=(\S+)`)
	createdTaskID = regexp.MustCompile(`Created task (\S+):`)
	createdProjID = regexp.MustCompile(`Created project (\S+):`)
)

func login(t *testing.T, configPath string) {
	t.Helper()
	mustRun(t, configPath, "auth", "signup", "--email", "alice@example.com", "--username", "alice", "--password", "password123")
	out := mustRun(t, configPath, "auth", "login", "alice", "--password", "password123")
	m := tokenPattern.FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("no token in login output: %q", out)
	}
	t.Setenv(TokenEnv, m[1])
}

func createTask(t *testing.T, configPath string, args ...string) string {
	t.Helper()
	out := mustRun(t, configPath, append([]string{"task", "create"}, args...)...)
	m := createdTaskID.FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("no task id in create output: %q", out)
	}
	return m[1]
}

func TestCLI_MigrateAndVersion(t *testing.T) {
	cfg := setupCLI(t)

	out := mustRun(t, cfg, "migrate")
	if !strings.Contains(out, "sqlite schema at version") {
		t.Errorf("unexpected migrate output %q", out)
	}

	out = mustRun(t, cfg, "version")
	if !strings.HasPrefix(out, "worklog ") {
		t.Errorf("unexpected version output %q", out)
	}
}

func TestCLI_RequiresLogin(t *testing.T) {
	cfg := setupCLI(t)

	_, err := run(t, cfg, "task", "list")
	if err == nil || !strings.Contains(err.Error(), "not logged in") {
		t.Fatalf("expected not logged in error, got %v", err)
	}

	_, err = run(t, cfg, "task", "list", "--token", "garbage")
	if err == nil || !strings.Contains(err.Error(), "unauthorized") {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestCLI_TaskLifecycle(t *testing.T) {
	cfg := setupCLI(t)
	login(t, cfg)

	out := mustRun(t, cfg, "auth", "me")
	if !strings.Contains(out, "alice@example.com") {
		t.Errorf("expected profile, got %q", out)
	}

	reportID := createTask(t, cfg, "Write report", "--priority", "high", "--due", "2020-01-01", "-d", "Quarterly")
	plantsID := createTask(t, cfg, "Water plants", "--priority", "low")
	createTask(t, cfg, "Someday", "--due", "2999-01-01")

	out = mustRun(t, cfg, "task", "list", "--limit", "2")
	for _, want := range []string{"Write report", "HIGH", "Showing 1-2 of 3", "next: --skip 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("list: expected %q in output:\n%s", want, out)
		}
	}

	out = mustRun(t, cfg, "task", "today")
	if !strings.Contains(out, "Write report") || !strings.Contains(out, "Water plants") || strings.Contains(out, "Someday") {
		t.Errorf("today: unexpected output:\n%s", out)
	}

	out = mustRun(t, cfg, "task", "update", reportID, "--clear-description", "--title", "Write annual report")
	if !strings.Contains(out, "Write annual report") || strings.Contains(out, "Quarterly") {
		t.Errorf("update: unexpected output:\n%s", out)
	}

	out = mustRun(t, cfg, "task", "status", plantsID, "doing")
	if !strings.Contains(out, "[doing]") {
		t.Errorf("status: unexpected output %q", out)
	}

	mustRun(t, cfg, "task", "complete", reportID)
	out = mustRun(t, cfg, "task", "stats")
	for _, want := range []string{"Total:", "33.3%"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats: expected %q in output:\n%s", want, out)
		}
	}

	mustRun(t, cfg, "task", "delete", plantsID)
	if _, err := run(t, cfg, "task", "show", plantsID); err == nil {
		t.Error("expected error showing a deleted task")
	}

	if _, err := run(t, cfg, "task", "status", reportID, "finished"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestCLI_Notes(t *testing.T) {
	cfg := setupCLI(t)
	login(t, cfg)

	mustRun(t, cfg, "note", "create", "2026-03-10", "--content", "Shipped v1", "--mood", "great")
	mustRun(t, cfg, "note", "create", "2026-03-11", "--content", "Bug bash")

	if _, err := run(t, cfg, "note", "create", "2026-03-10"); err == nil {
		t.Error("expected conflict for a second note on the same date")
	}

	out := mustRun(t, cfg, "note", "list", "--from", "2026-03-01", "--to", "2026-03-10")
	if !strings.Contains(out, "Shipped v1") || strings.Contains(out, "Bug bash") {
		t.Errorf("list: unexpected output:\n%s", out)
	}

	out = mustRun(t, cfg, "note", "update", "2026-03-10", "--clear-mood")
	if !strings.Contains(out, "Mood: -") {
		t.Errorf("update: unexpected output:\n%s", out)
	}

	mustRun(t, cfg, "note", "delete", "2026-03-11")
	if _, err := run(t, cfg, "note", "show", "2026-03-11"); err == nil {
		t.Error("expected error showing a deleted note")
	}
}

func TestCLI_Projects(t *testing.T) {
	cfg := setupCLI(t)
	login(t, cfg)

	out := mustRun(t, cfg, "project", "create", "Home", "--color", "#FF0000", "-d", "chores")
	m := createdProjID.FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("no project id in create output: %q", out)
	}
	homeID := m[1]
	mustRun(t, cfg, "project", "create", "Garden")

	if _, err := run(t, cfg, "project", "create", "Bad", "--color", "red"); err == nil {
		t.Error("expected error for malformed color")
	}

	out = mustRun(t, cfg, "project", "archive", homeID)
	if !strings.Contains(out, "Archived:    true") {
		t.Errorf("archive: unexpected output:\n%s", out)
	}

	out = mustRun(t, cfg, "project", "list")
	if !strings.Contains(out, "Garden") || strings.Contains(out, "Home") {
		t.Errorf("list: unexpected output:\n%s", out)
	}
	out = mustRun(t, cfg, "project", "list", "--all")
	if !strings.Contains(out, "Home") || !strings.Contains(out, "#ff0000") {
		t.Errorf("list --all: unexpected output:\n%s", out)
	}

	out = mustRun(t, cfg, "project", "update", homeID, "--clear-description", "--name", "House")
	if !strings.Contains(out, "House") || strings.Contains(out, "chores") {
		t.Errorf("update: unexpected output:\n%s", out)
	}

	mustRun(t, cfg, "project", "delete", homeID)
	if _, err := run(t, cfg, "project", "show", homeID); err == nil {
		t.Error("expected error showing a deleted project")
	}
}

func TestTaskPatchFromFlags(t *testing.T) {
	update, _, err := TaskCmd().Find([]string{"update"})
	if err != nil {
		t.Fatalf("update command not found: %v", err)
	}
	if err := update.ParseFlags([]string{"--clear-due", "--order", "3", "--status", "done"}); err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	p, err := taskPatchFromFlags(update)
	if err != nil {
		t.Fatalf("taskPatchFromFlags failed: %v", err)
	}
	if p.Title.Set || p.Description.Set || p.Priority.Set {
		t.Errorf("unset flags leaked into patch: %+v", p)
	}
	if !p.DueDate.Set || p.DueDate.Value != nil {
		t.Errorf("expected due date cleared, got %+v", p.DueDate)
	}
	if p.Order != task.Provide(3) || p.Status != task.Provide(task.StatusDone) {
		t.Errorf("unexpected order/status: %+v %+v", p.Order, p.Status)
	}
}

func TestTaskPatchFromFlags_NormalizesEnums(t *testing.T) {
	update, _, _ := TaskCmd().Find([]string{"update"})
	if err := update.ParseFlags([]string{"--status", "DONE", "--priority", " High "}); err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	p, err := taskPatchFromFlags(update)
	if err != nil {
		t.Fatalf("taskPatchFromFlags failed: %v", err)
	}
	if p.Status != task.Provide(task.StatusDone) || p.Priority != task.Provide(task.PriorityHigh) {
		t.Errorf("expected normalized status/priority, got %+v %+v", p.Status, p.Priority)
	}

	update, _, _ = TaskCmd().Find([]string{"update"})
	if err := update.ParseFlags([]string{"--priority", "urgent"}); err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if _, err := taskPatchFromFlags(update); err == nil || !strings.Contains(err.Error(), "urgent") {
		t.Errorf("expected invalid priority error, got %v", err)
	}
}

func TestCLI_TaskEnumFlagsAreCaseInsensitive(t *testing.T) {
	cfg := setupCLI(t)
	login(t, cfg)

	id := createTask(t, cfg, "Plan sprint", "--priority", "HIGH", "--status", "Doing")
	out := mustRun(t, cfg, "task", "list", "--status", "DOING", "--priority", "high")
	if !strings.Contains(out, "Plan sprint") {
		t.Errorf("list: expected task in output:\n%s", out)
	}

	out = mustRun(t, cfg, "task", "update", id, "--status", "DONE")
	if !strings.Contains(out, "[done]") {
		t.Errorf("update: unexpected output:\n%s", out)
	}

	if _, err := run(t, cfg, "task", "create", "Bad", "--priority", "urgent"); err == nil {
		t.Error("expected error for unknown priority")
	}
}

func TestNotePatchFromFlags_Conflicts(t *testing.T) {
	update, _, err := NoteCmd().Find([]string{"update"})
	if err != nil {
		t.Fatalf("update command not found: %v", err)
	}
	if err := update.ParseFlags([]string{"--mood", "bad", "--clear-mood"}); err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if _, err := notePatchFromFlags(update); err == nil {
		t.Error("expected mutually exclusive flag error")
	}

	update, _, _ = NoteCmd().Find([]string{"update"})
	if err := update.ParseFlags([]string{"--mood", "Good"}); err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	p, err := notePatchFromFlags(update)
	if err != nil {
		t.Fatalf("notePatchFromFlags failed: %v", err)
	}
	if !p.Mood.Set || p.Mood.Value == nil || *p.Mood.Value != note.MoodGood || p.Content.Set {
		t.Errorf("unexpected patch %+v", p)
	}
}
