// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"time"
)

// TaskRepository defines the secondary port for task persistence.
// Every method is scoped by owner; a task owned by someone else behaves as missing.
type TaskRepository interface {
	// Create persists a new task.
	Create(ctx context.Context, task *TaskRecord) error

	// GetByID retrieves a task by owner and ID.
	GetByID(ctx context.Context, ownerID, id string) (*TaskRecord, error)

	// Update replaces the mutable fields of an existing task.
	Update(ctx context.Context, task *TaskRecord) error

	// Delete removes a task.
	Delete(ctx context.Context, ownerID, id string) error

	// List retrieves one ordered window of tasks matching the query.
	List(ctx context.Context, query TaskQuery) ([]*TaskRecord, error)

	// Count returns the number of tasks matching the filters.
	Count(ctx context.Context, filters TaskFilters) (int, error)
}

// TaskRecord represents a task as stored in persistence.
type TaskRecord struct {
	ID          string
	UserID      string
	Title       string
	Description *string
	Status      string
	Priority    string
	DueDate     *time.Time
	CompletedAt *time.Time
	Order       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskFilters contains filter options for querying tasks. Zero values mean "any".
type TaskFilters struct {
	OwnerID     string
	Status      string
	Priority    string
	Search      string     // Case-insensitive substring of title or description
	ExcludeDone bool       // Drop tasks whose status is done
	DueBefore   *time.Time // Keep tasks with no due date or due strictly before this instant
}

// TaskOrder selects the sort order of a task listing.
type TaskOrder int

const (
	// OrderGeneral sorts open tasks before done ones, then by manual order.
	OrderGeneral TaskOrder = iota
	// OrderToday sorts by priority rank, then by manual order.
	OrderToday
)

// TaskQuery is a filtered, ordered window of tasks. Limit 0 means unbounded.
type TaskQuery struct {
	Filters TaskFilters
	Order   TaskOrder
	Skip    int
	Limit   int
}

// UserRepository defines the secondary port for user persistence.
type UserRepository interface {
	// Create persists a new user. Duplicate email or username is a conflict.
	Create(ctx context.Context, user *UserRecord) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*UserRecord, error)

	// GetByEmailOrUsername retrieves a user whose email or username equals login.
	GetByEmailOrUsername(ctx context.Context, login string) (*UserRecord, error)
}

// UserRecord represents a user as stored in persistence.
type UserRecord struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	FullName     *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NoteRepository defines the secondary port for daily note persistence.
type NoteRepository interface {
	// Create persists a new note. A second note for the same owner and date is a conflict.
	Create(ctx context.Context, note *NoteRecord) error

	// GetByDate retrieves the owner's note for a date.
	GetByDate(ctx context.Context, ownerID, date string) (*NoteRecord, error)

	// Update replaces the mutable fields of an existing note.
	Update(ctx context.Context, note *NoteRecord) error

	// Delete removes the owner's note for a date.
	Delete(ctx context.Context, ownerID, date string) error

	// List retrieves the owner's notes in date order within an inclusive range.
	List(ctx context.Context, ownerID, from, to string) ([]*NoteRecord, error)
}

// NoteRecord represents a daily note as stored in persistence.
type NoteRecord struct {
	ID        string
	UserID    string
	Date      string // YYYY-MM-DD
	Content   *string
	Mood      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProjectRepository defines the secondary port for project persistence.
// Every method is scoped by owner.
type ProjectRepository interface {
	// Create persists a new project.
	Create(ctx context.Context, project *ProjectRecord) error

	// GetByID retrieves a project by owner and ID.
	GetByID(ctx context.Context, ownerID, id string) (*ProjectRecord, error)

	// Update replaces the mutable fields of an existing project.
	Update(ctx context.Context, project *ProjectRecord) error

	// Delete removes a project.
	Delete(ctx context.Context, ownerID, id string) error

	// List retrieves the owner's projects by name. Archived ones are included on request.
	List(ctx context.Context, ownerID string, includeArchived bool) ([]*ProjectRecord, error)
}

// ProjectRecord represents a project as stored in persistence.
type ProjectRecord struct {
	ID          string
	UserID      string
	Name        string
	Description *string
	Color       string
	Archived    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
