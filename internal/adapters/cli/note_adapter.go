package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/worklog/internal/ports/primary"
)

// NoteAdapter translates CLI operations to NoteService calls.
type NoteAdapter struct {
	service primary.NoteService
	out     io.Writer
}

// NewNoteAdapter creates a new NoteAdapter with the given service.
func NewNoteAdapter(service primary.NoteService, out io.Writer) *NoteAdapter {
	return &NoteAdapter{service: service, out: out}
}

func (a *NoteAdapter) Create(ctx context.Context, req primary.CreateNoteRequest) (*primary.Note, error) {
	n, err := a.service.CreateNote(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Created note for %s\n", n.Date)
	return n, nil
}

func (a *NoteAdapter) Show(ctx context.Context, ownerID, date string) (*primary.Note, error) {
	n, err := a.service.GetNote(ctx, ownerID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	a.renderDetail(n)
	return n, nil
}

func (a *NoteAdapter) Update(ctx context.Context, req primary.UpdateNoteRequest) (*primary.Note, error) {
	n, err := a.service.UpdateNote(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Note for %s updated\n", n.Date)
	a.renderDetail(n)
	return n, nil
}

func (a *NoteAdapter) Delete(ctx context.Context, ownerID, date string) error {
	if err := a.service.DeleteNote(ctx, ownerID, date); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Deleted note for %s\n", date)
	return nil
}

// List prints notes in the inclusive date range.
func (a *NoteAdapter) List(ctx context.Context, ownerID, from, to string) error {
	notes, err := a.service.ListNotes(ctx, ownerID, from, to)
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}
	if len(notes) == 0 {
		fmt.Fprintln(a.out, "No notes found.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "DATE\tMOOD\tCONTENT")
	fmt.Fprintln(w, "----\t----\t-------")
	for _, n := range notes {
		fmt.Fprintf(w, "%s\t%s\t%s\n", n.Date, moodBadge(n.Mood), truncate(deref(n.Content), 60))
	}
	return w.Flush()
}

func (a *NoteAdapter) renderDetail(n *primary.Note) {
	fmt.Fprintf(a.out, "\nNote: %s\n", n.Date)
	fmt.Fprintf(a.out, "Mood: %s\n", moodBadge(n.Mood))
	if content := deref(n.Content); content != "" {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, content)
	}
	fmt.Fprintln(a.out)
}
