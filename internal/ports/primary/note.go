package primary

import (
	"context"
	"time"

	"github.com/example/worklog/internal/core/note"
)

// NoteService defines the primary port for daily note operations.
type NoteService interface {
	// CreateNote creates the note for a date.
	CreateNote(ctx context.Context, req CreateNoteRequest) (*Note, error)

	// GetNote retrieves the note for a date.
	GetNote(ctx context.Context, ownerID, date string) (*Note, error)

	// UpdateNote applies a partial update to the note for a date.
	UpdateNote(ctx context.Context, req UpdateNoteRequest) (*Note, error)

	// DeleteNote removes the note for a date.
	DeleteNote(ctx context.Context, ownerID, date string) error

	// ListNotes lists notes between from and to inclusive. Empty bounds are open.
	ListNotes(ctx context.Context, ownerID, from, to string) ([]*Note, error)
}

// CreateNoteRequest contains parameters for creating a note.
type CreateNoteRequest struct {
	OwnerID string
	Date    string // YYYY-MM-DD
	Content *string
	Mood    *note.Mood
}

// UpdateNoteRequest contains parameters for updating a note.
type UpdateNoteRequest struct {
	OwnerID string
	Date    string
	Patch   note.Patch
}

// Note represents a daily note at the port boundary.
type Note struct {
	ID        string
	OwnerID   string
	Date      string
	Content   *string
	Mood      *note.Mood
	CreatedAt time.Time
	UpdatedAt time.Time
}
