package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/example/worklog/internal/apperr"
	"github.com/example/worklog/internal/core/page"
	"github.com/example/worklog/internal/core/task"
	"github.com/example/worklog/internal/ports/primary"
	"github.com/example/worklog/internal/ports/secondary"
)

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskRepo secondary.TaskRepository
	cache    secondary.StatsCache // nil disables caching
	loc      *time.Location
	logger   *slog.Logger
	now      func() time.Time
	newID    func() (string, error)
	statsSF  singleflight.Group // collapses concurrent stats misses per owner and day
	genMu    sync.Mutex
	gens     map[string]uint64 // per-owner mutation counter, part of the singleflight key
}

// NewTaskService creates a new TaskService with injected dependencies.
// loc is the zone that defines the calendar day for the today listing.
func NewTaskService(
	taskRepo secondary.TaskRepository,
	cache secondary.StatsCache,
	loc *time.Location,
	logger *slog.Logger,
) *TaskServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskServiceImpl{
		taskRepo: taskRepo,
		cache:    cache,
		loc:      loc,
		logger:   logger,
		now:      systemNow,
		newID:    newID,
		gens:     make(map[string]uint64),
	}
}

// CreateTask creates a new task.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, req primary.CreateTaskRequest) (*primary.Task, error) {
	guard := task.CanCreateTask(task.CreateTaskContext{
		Title:    req.Title,
		Status:   req.Status,
		Priority: req.Priority,
	})
	if !guard.Allowed {
		return nil, apperr.Validation("%s", guard.Reason)
	}

	status := req.Status
	if status == "" {
		status = task.InitialStatus()
	}
	priority := req.Priority
	if priority == "" {
		priority = task.DefaultPriority()
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate task ID: %w", err)
	}

	now := s.now()
	record := &secondary.TaskRecord{
		ID:          id,
		UserID:      req.OwnerID,
		Title:       trimTitle(req.Title),
		Description: req.Description,
		Status:      string(status),
		Priority:    string(priority),
		DueDate:     normalizeTime(req.DueDate),
		Order:       req.Order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if status == task.StatusDone {
		record.CompletedAt = &now
	}

	if err := s.taskRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	s.invalidateStats(ctx, req.OwnerID)

	s.logger.DebugContext(ctx, "task created", "task_id", id, "owner_id", req.OwnerID, "status", status)
	return recordToTask(record), nil
}

// GetTask retrieves a task owned by ownerID.
func (s *TaskServiceImpl) GetTask(ctx context.Context, ownerID, taskID string) (*primary.Task, error) {
	record, err := s.taskRepo.GetByID(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}
	return recordToTask(record), nil
}

// UpdateTask applies a partial update. Only fields present in the patch change.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, req primary.UpdateTaskRequest) (*primary.Task, error) {
	record, err := s.taskRepo.GetByID(ctx, req.OwnerID, req.TaskID)
	if err != nil {
		return nil, err
	}
	if req.Patch.IsEmpty() {
		return recordToTask(record), nil
	}

	now := s.now()
	patch := req.Patch
	if patch.DueDate.Set {
		patch.DueDate.Value = normalizeTime(patch.DueDate.Value)
	}
	next, err := task.ApplyPatch(recordToState(record), patch, now)
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}

	updated := *record
	applyState(&updated, next)
	updated.UpdatedAt = now

	if err := s.taskRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	s.invalidateStats(ctx, req.OwnerID)

	return recordToTask(&updated), nil
}

// SetTaskStatus changes only the status of a task. Moving to done also
// refreshes the completion timestamp through CompleteTask.
func (s *TaskServiceImpl) SetTaskStatus(ctx context.Context, ownerID, taskID string, status task.Status) (*primary.Task, error) {
	if !status.Valid() {
		return nil, apperr.Validation("invalid status %q", status)
	}

	updated, err := s.UpdateTask(ctx, primary.UpdateTaskRequest{
		OwnerID: ownerID,
		TaskID:  taskID,
		Patch:   task.Patch{Status: task.Provide(status)},
	})
	if err != nil {
		return nil, err
	}
	if status != task.StatusDone {
		return updated, nil
	}
	return s.CompleteTask(ctx, ownerID, taskID)
}

// CompleteTask marks a task done and stamps the completion time, even when
// the task is already done.
func (s *TaskServiceImpl) CompleteTask(ctx context.Context, ownerID, taskID string) (*primary.Task, error) {
	record, err := s.taskRepo.GetByID(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := task.Complete(now)
	if record.CompletedAt != nil && record.CompletedAt.After(*result.CompletedAt) {
		// Never move a completion stamp backwards.
		result.CompletedAt = record.CompletedAt
	}

	updated := *record
	updated.Status = string(result.NewStatus)
	updated.CompletedAt = result.CompletedAt
	updated.UpdatedAt = now

	if err := s.taskRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}
	s.invalidateStats(ctx, ownerID)

	return recordToTask(&updated), nil
}

// DeleteTask permanently removes a task.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	if err := s.taskRepo.Delete(ctx, ownerID, taskID); err != nil {
		return err
	}
	s.invalidateStats(ctx, ownerID)
	s.logger.DebugContext(ctx, "task deleted", "task_id", taskID, "owner_id", ownerID)
	return nil
}

// ListTasks returns one page of the owner's tasks. The total counts tasks
// matching the status filter only; priority and search narrow the items.
func (s *TaskServiceImpl) ListTasks(ctx context.Context, req primary.ListTasksRequest) (*page.Page[*primary.Task], error) {
	if guard := task.CanListTasks(task.ListTasksContext{Skip: req.Skip, Limit: req.Limit}); !guard.Allowed {
		return nil, apperr.Validation("%s", guard.Reason)
	}
	if req.Status != "" && !req.Status.Valid() {
		return nil, apperr.Validation("invalid status %q", req.Status)
	}
	if req.Priority != "" && !req.Priority.Valid() {
		return nil, apperr.Validation("invalid priority %q", req.Priority)
	}

	records, err := s.taskRepo.List(ctx, secondary.TaskQuery{
		Filters: secondary.TaskFilters{
			OwnerID:  req.OwnerID,
			Status:   string(req.Status),
			Priority: string(req.Priority),
			Search:   req.Search,
		},
		Order: secondary.OrderGeneral,
		Skip:  req.Skip,
		Limit: req.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	total, err := s.taskRepo.Count(ctx, secondary.TaskFilters{
		OwnerID: req.OwnerID,
		Status:  string(req.Status),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	p := page.New(recordsToTasks(records), total, req.Skip, req.Limit)
	return &p, nil
}

// TodayTasks returns open tasks that are undated or due before the end of today.
func (s *TaskServiceImpl) TodayTasks(ctx context.Context, ownerID string) ([]*primary.Task, error) {
	records, err := s.taskRepo.List(ctx, secondary.TaskQuery{
		Filters: s.todayFilters(ownerID),
		Order:   secondary.OrderToday,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list today tasks: %w", err)
	}
	return recordsToTasks(records), nil
}

// TaskStats returns aggregate counters for the owner. The counters come from
// independent reads and are not a point-in-time snapshot.
func (s *TaskServiceImpl) TaskStats(ctx context.Context, ownerID string) (*primary.TaskStats, error) {
	day := s.now().In(s.loc).Format(time.DateOnly)

	useCache := s.cache != nil
	var gen int64
	if useCache {
		var err error
		if gen, err = s.cache.Generation(ctx, ownerID); err != nil {
			s.logger.WarnContext(ctx, "stats cache generation read failed", "owner_id", ownerID, "error", err)
			useCache = false
		}
	}
	if useCache {
		cached, err := s.cache.Get(ctx, ownerID, day, gen)
		if err != nil {
			s.logger.WarnContext(ctx, "stats cache read failed", "owner_id", ownerID, "error", err)
		} else if cached != nil {
			return statsRecordToStats(cached), nil
		}
	}

	// A caller that starts after a mutation must not join a computation begun before it.
	key := fmt.Sprintf("%s/%s/%d/%d", ownerID, day, s.localGeneration(ownerID), gen)
	v, err, _ := s.statsSF.Do(key, func() (any, error) {
		stats, err := s.computeStats(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		if useCache {
			if err := s.cache.Set(ctx, ownerID, day, gen, stats); err != nil {
				s.logger.WarnContext(ctx, "stats cache write failed", "owner_id", ownerID, "error", err)
			}
		}
		return stats, nil
	})
	if err != nil {
		return nil, err
	}
	return statsRecordToStats(v.(*secondary.TaskStatsRecord)), nil
}

func (s *TaskServiceImpl) computeStats(ctx context.Context, ownerID string) (*secondary.TaskStatsRecord, error) {
	count := func(f secondary.TaskFilters) (int, error) {
		n, err := s.taskRepo.Count(ctx, f)
		if err != nil {
			return 0, fmt.Errorf("failed to count tasks: %w", err)
		}
		return n, nil
	}

	var (
		stats secondary.TaskStatsRecord
		err   error
	)
	if stats.Total, err = count(secondary.TaskFilters{OwnerID: ownerID}); err != nil {
		return nil, err
	}
	if stats.Todo, err = count(secondary.TaskFilters{OwnerID: ownerID, Status: string(task.StatusTodo)}); err != nil {
		return nil, err
	}
	if stats.Doing, err = count(secondary.TaskFilters{OwnerID: ownerID, Status: string(task.StatusDoing)}); err != nil {
		return nil, err
	}
	if stats.Done, err = count(secondary.TaskFilters{OwnerID: ownerID, Status: string(task.StatusDone)}); err != nil {
		return nil, err
	}
	if stats.TodayCount, err = count(s.todayFilters(ownerID)); err != nil {
		return nil, err
	}
	stats.CompletionRate = task.CompletionRate(stats.Done, stats.Total)
	return &stats, nil
}

func (s *TaskServiceImpl) localGeneration(ownerID string) uint64 {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.gens[ownerID]
}

func (s *TaskServiceImpl) todayFilters(ownerID string) secondary.TaskFilters {
	cutoff := task.TodayCutoff(s.now(), s.loc).UTC()
	return secondary.TaskFilters{
		OwnerID:     ownerID,
		ExcludeDone: true,
		DueBefore:   &cutoff,
	}
}

func (s *TaskServiceImpl) invalidateStats(ctx context.Context, ownerID string) {
	s.genMu.Lock()
	s.gens[ownerID]++
	s.genMu.Unlock()

	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		s.logger.WarnContext(ctx, "stats cache invalidation failed", "owner_id", ownerID, "error", err)
	}
}

// Helper functions

func recordToTask(r *secondary.TaskRecord) *primary.Task {
	return &primary.Task{
		ID:          r.ID,
		OwnerID:     r.UserID,
		Title:       r.Title,
		Description: r.Description,
		Status:      task.Status(r.Status),
		Priority:    task.Priority(r.Priority),
		DueDate:     r.DueDate,
		CompletedAt: r.CompletedAt,
		Order:       r.Order,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func recordsToTasks(records []*secondary.TaskRecord) []*primary.Task {
	tasks := make([]*primary.Task, len(records))
	for i, r := range records {
		tasks[i] = recordToTask(r)
	}
	return tasks
}

func recordToState(r *secondary.TaskRecord) task.State {
	return task.State{
		Title:       r.Title,
		Description: r.Description,
		Status:      task.Status(r.Status),
		Priority:    task.Priority(r.Priority),
		DueDate:     r.DueDate,
		CompletedAt: r.CompletedAt,
		Order:       r.Order,
	}
}

func applyState(r *secondary.TaskRecord, st task.State) {
	r.Title = st.Title
	r.Description = st.Description
	r.Status = string(st.Status)
	r.Priority = string(st.Priority)
	r.DueDate = st.DueDate
	r.CompletedAt = st.CompletedAt
	r.Order = st.Order
}

func statsRecordToStats(r *secondary.TaskStatsRecord) *primary.TaskStats {
	return &primary.TaskStats{
		Total:          r.Total,
		Todo:           r.Todo,
		Doing:          r.Doing,
		Done:           r.Done,
		TodayCount:     r.TodayCount,
		CompletionRate: r.CompletionRate,
	}
}

// Ensure TaskServiceImpl implements the interface
var _ primary.TaskService = (*TaskServiceImpl)(nil)
