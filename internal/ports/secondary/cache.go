package secondary

import "context"

// TaskStatsRecord holds cached aggregate counters for one owner.
type TaskStatsRecord struct {
	Total          int     `json:"total"`
	Todo           int     `json:"todo"`
	Doing          int     `json:"doing"`
	Done           int     `json:"done"`
	TodayCount     int     `json:"today_count"`
	CompletionRate float64 `json:"completion_rate"`
}

// StatsCache caches per-owner task statistics keyed by calendar day, since the
// today counter depends on the date. Entries are also keyed by the owner's
// invalidation generation: Invalidate bumps the generation, so stats computed
// before a mutation can only be stored under a generation nobody reads again.
// A miss is reported as (nil, nil).
type StatsCache interface {
	// Generation returns the owner's current generation, 0 if never invalidated.
	Generation(ctx context.Context, ownerID string) (int64, error)
	Get(ctx context.Context, ownerID, day string, gen int64) (*TaskStatsRecord, error)
	Set(ctx context.Context, ownerID, day string, gen int64, stats *TaskStatsRecord) error
	// Invalidate retires every cached entry for the owner.
	Invalidate(ctx context.Context, ownerID string) error
}
