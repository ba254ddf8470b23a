package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/worklog/internal/apperr"
	"github.com/example/worklog/internal/core/note"
	"github.com/example/worklog/internal/ports/primary"
	"github.com/example/worklog/internal/ports/secondary"
)

// NoteServiceImpl implements the NoteService interface.
type NoteServiceImpl struct {
	noteRepo secondary.NoteRepository
	logger   *slog.Logger
	now      func() time.Time
	newID    func() (string, error)
}

// NewNoteService creates a new NoteService with injected dependencies.
func NewNoteService(noteRepo secondary.NoteRepository, logger *slog.Logger) *NoteServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoteServiceImpl{
		noteRepo: noteRepo,
		logger:   logger,
		now:      systemNow,
		newID:    newID,
	}
}

// CreateNote creates the note for a date.
func (s *NoteServiceImpl) CreateNote(ctx context.Context, req primary.CreateNoteRequest) (*primary.Note, error) {
	date, err := note.ParseDate(req.Date)
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}
	if req.Mood != nil && !req.Mood.Valid() {
		return nil, apperr.Validation("invalid mood %q", *req.Mood)
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate note ID: %w", err)
	}

	now := s.now()
	record := &secondary.NoteRecord{
		ID:        id,
		UserID:    req.OwnerID,
		Date:      date,
		Content:   req.Content,
		Mood:      moodToString(req.Mood),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.noteRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return recordToNote(record), nil
}

// GetNote retrieves the note for a date.
func (s *NoteServiceImpl) GetNote(ctx context.Context, ownerID, date string) (*primary.Note, error) {
	day, err := note.ParseDate(date)
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}
	record, err := s.noteRepo.GetByDate(ctx, ownerID, day)
	if err != nil {
		return nil, err
	}
	return recordToNote(record), nil
}

// UpdateNote applies a partial update to the note for a date.
func (s *NoteServiceImpl) UpdateNote(ctx context.Context, req primary.UpdateNoteRequest) (*primary.Note, error) {
	day, err := note.ParseDate(req.Date)
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}
	record, err := s.noteRepo.GetByDate(ctx, req.OwnerID, day)
	if err != nil {
		return nil, err
	}

	next, err := note.ApplyPatch(recordToNoteState(record), req.Patch)
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}

	updated := *record
	updated.Content = next.Content
	updated.Mood = moodToString(next.Mood)
	updated.UpdatedAt = s.now()

	if err := s.noteRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return recordToNote(&updated), nil
}

// DeleteNote removes the note for a date.
func (s *NoteServiceImpl) DeleteNote(ctx context.Context, ownerID, date string) error {
	day, err := note.ParseDate(date)
	if err != nil {
		return apperr.Validation("%s", err)
	}
	return s.noteRepo.Delete(ctx, ownerID, day)
}

// ListNotes lists notes between from and to inclusive.
func (s *NoteServiceImpl) ListNotes(ctx context.Context, ownerID, from, to string) ([]*primary.Note, error) {
	from, to, err := note.CheckRange(from, to)
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}
	records, err := s.noteRepo.List(ctx, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	notes := make([]*primary.Note, len(records))
	for i, r := range records {
		notes[i] = recordToNote(r)
	}
	return notes, nil
}

func recordToNote(r *secondary.NoteRecord) *primary.Note {
	n := &primary.Note{
		ID:        r.ID,
		OwnerID:   r.UserID,
		Date:      r.Date,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Mood != nil {
		m := note.Mood(*r.Mood)
		n.Mood = &m
	}
	return n
}

func recordToNoteState(r *secondary.NoteRecord) note.State {
	st := note.State{Content: r.Content}
	if r.Mood != nil {
		m := note.Mood(*r.Mood)
		st.Mood = &m
	}
	return st
}

func moodToString(m *note.Mood) *string {
	if m == nil {
		return nil
	}
	s := string(*m)
	return &s
}

// Ensure NoteServiceImpl implements the interface
var _ primary.NoteService = (*NoteServiceImpl)(nil)
