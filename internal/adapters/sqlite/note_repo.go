package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/example/worklog/internal/apperr"
	"github.com/example/worklog/internal/ports/secondary"
)

// NoteRepository implements secondary.NoteRepository with SQLite.
type NoteRepository struct {
	db *sql.DB
}

// NewNoteRepository creates a new SQLite daily note repository.
func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

const noteSelectCols = "id, user_id, date, content, mood, created_at, updated_at"

func scanNote(row scanner) (*secondary.NoteRecord, error) {
	var (
		content   sql.NullString
		mood      sql.NullString
		createdAt string
		updatedAt string
	)
	record := &secondary.NoteRecord{}
	err := row.Scan(&record.ID, &record.UserID, &record.Date, &content, &mood, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	record.Content = stringPtr(content)
	record.Mood = stringPtr(mood)
	if record.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if record.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return record, nil
}

// Create persists a new note.
func (r *NoteRepository) Create(ctx context.Context, note *secondary.NoteRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO daily_notes ("+noteSelectCols+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		note.ID, note.UserID, note.Date, nullString(note.Content), nullString(note.Mood),
		formatTime(note.CreatedAt), formatTime(note.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return apperr.Conflict("note for %s already exists", note.Date)
	}
	if isForeignKeyViolation(err) {
		return apperr.NotFound("user", note.UserID)
	}
	if err != nil {
		return storageErr("create note", err)
	}
	return nil
}

// GetByDate retrieves the owner's note for a date.
func (r *NoteRepository) GetByDate(ctx context.Context, ownerID, date string) (*secondary.NoteRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+noteSelectCols+" FROM daily_notes WHERE user_id = ? AND date = ?",
		ownerID, date,
	)
	record, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("note", date)
	}
	if err != nil {
		return nil, storageErr("get note", err)
	}
	return record, nil
}

// Update replaces the mutable fields of an existing note.
func (r *NoteRepository) Update(ctx context.Context, note *secondary.NoteRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE daily_notes SET content = ?, mood = ?, updated_at = ? WHERE user_id = ? AND date = ?",
		nullString(note.Content), nullString(note.Mood), formatTime(note.UpdatedAt), note.UserID, note.Date,
	)
	if err != nil {
		return storageErr("update note", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storageErr("get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperr.NotFound("note", note.Date)
	}
	return nil
}

// Delete removes the owner's note for a date.
func (r *NoteRepository) Delete(ctx context.Context, ownerID, date string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM daily_notes WHERE user_id = ? AND date = ?", ownerID, date)
	if err != nil {
		return storageErr("delete note", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storageErr("get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperr.NotFound("note", date)
	}
	return nil
}

// List retrieves the owner's notes in date order within an inclusive range.
func (r *NoteRepository) List(ctx context.Context, ownerID, from, to string) ([]*secondary.NoteRecord, error) {
	query := "SELECT " + noteSelectCols + " FROM daily_notes WHERE user_id = ?"
	args := []any{ownerID}

	if from != "" {
		query += " AND date >= ?"
		args = append(args, from)
	}
	if to != "" {
		query += " AND date <= ?"
		args = append(args, to)
	}
	query += " ORDER BY date ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list notes", err)
	}
	defer rows.Close()

	notes := []*secondary.NoteRecord{}
	for rows.Next() {
		record, err := scanNote(rows)
		if err != nil {
			return nil, storageErr("scan note", err)
		}
		notes = append(notes, record)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list notes", err)
	}
	return notes, nil
}

// Ensure NoteRepository implements the interface
var _ secondary.NoteRepository = (*NoteRepository)(nil)
