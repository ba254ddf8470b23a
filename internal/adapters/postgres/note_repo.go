package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/worklog/internal/apperr"
	"github.com/example/worklog/internal/ports/secondary"
)

// NoteRepository implements secondary.NoteRepository with PostgreSQL.
type NoteRepository struct {
	pool *pgxpool.Pool
}

// NewNoteRepository creates a new PostgreSQL daily note repository.
func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

const noteSelectCols = "id, user_id, to_char(date, 'YYYY-MM-DD'), content, mood, created_at, updated_at"

func scanNote(row pgx.Row) (*secondary.NoteRecord, error) {
	n := &secondary.NoteRecord{}
	if err := row.Scan(&n.ID, &n.UserID, &n.Date, &n.Content, &n.Mood, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	n.CreatedAt = n.CreatedAt.UTC()
	n.UpdatedAt = n.UpdatedAt.UTC()
	return n, nil
}

// Create persists a new note.
func (r *NoteRepository) Create(ctx context.Context, n *secondary.NoteRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO daily_notes (id, user_id, date, content, mood, created_at, updated_at)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7)`,
		n.ID, n.UserID, n.Date, n.Content, n.Mood, n.CreatedAt, n.UpdatedAt)
	if isUniqueViolation(err) {
		return apperr.Conflict("note for %s already exists", n.Date)
	}
	if isForeignKeyViolation(err) {
		return apperr.NotFound("user", n.UserID)
	}
	if err != nil {
		return storageErr("create note", err)
	}
	return nil
}

// GetByDate retrieves the owner's note for a date.
func (r *NoteRepository) GetByDate(ctx context.Context, ownerID, date string) (*secondary.NoteRecord, error) {
	n, err := scanNote(r.pool.QueryRow(ctx,
		"SELECT "+noteSelectCols+" FROM daily_notes WHERE user_id = $1 AND date = $2::date", ownerID, date))
	if isNoRows(err) {
		return nil, apperr.NotFound("note", date)
	}
	if err != nil {
		return nil, storageErr("get note", err)
	}
	return n, nil
}

// Update replaces the mutable fields of an existing note.
func (r *NoteRepository) Update(ctx context.Context, n *secondary.NoteRecord) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE daily_notes SET content = $1, mood = $2, updated_at = $3 WHERE user_id = $4 AND date = $5::date",
		n.Content, n.Mood, n.UpdatedAt, n.UserID, n.Date)
	if err != nil {
		return storageErr("update note", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("note", n.Date)
	}
	return nil
}

// Delete removes the owner's note for a date.
func (r *NoteRepository) Delete(ctx context.Context, ownerID, date string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM daily_notes WHERE user_id = $1 AND date = $2::date", ownerID, date)
	if err != nil {
		return storageErr("delete note", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("note", date)
	}
	return nil
}

// List retrieves the owner's notes in date order within an inclusive range.
func (r *NoteRepository) List(ctx context.Context, ownerID, from, to string) ([]*secondary.NoteRecord, error) {
	a := &argList{}
	query := "SELECT " + noteSelectCols + " FROM daily_notes WHERE user_id = " + a.add(ownerID)
	if from != "" {
		query += " AND date >= " + a.add(from) + "::date"
	}
	if to != "" {
		query += " AND date <= " + a.add(to) + "::date"
	}
	query += " ORDER BY date"

	rows, err := r.pool.Query(ctx, query, a.args...)
	if err != nil {
		return nil, storageErr("list notes", err)
	}
	defer rows.Close()

	notes := []*secondary.NoteRecord{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, storageErr("scan note", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list notes", err)
	}
	return notes, nil
}

var _ secondary.NoteRepository = (*NoteRepository)(nil)
