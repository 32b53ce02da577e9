package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/domain"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/types"
)

type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	// List returns every note ordered by sort key descending, which is
	// the board's display order.
	List(ctx context.Context) ([]domain.Note, error)
	Update(ctx context.Context, id, content string) error
	// SetPosition moves a note to another column and/or slot by
	// rewriting only its own status and sort key.
	SetPosition(ctx context.Context, id string, status domain.NoteStatus, sortKey float64) error
	Delete(ctx context.Context, id string) error
}

type noteRepository struct {
	db *pgxpool.Pool
}

func NewNoteRepository(db *pgxpool.Pool) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO notes (id, content, status, sort_key, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		note.ID, note.Content, note.Status, note.SortKey, note.CreatedAt,
	)
	return err
}

func (r *noteRepository) List(ctx context.Context) ([]domain.Note, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, content, status, sort_key, created_at
		FROM notes
		ORDER BY sort_key DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]domain.Note, 0)
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.Content, &n.Status, &n.SortKey, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *noteRepository) Update(ctx context.Context, id, content string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE notes SET content = $1 WHERE id = $2`, content, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (r *noteRepository) SetPosition(ctx context.Context, id string, status domain.NoteStatus, sortKey float64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE notes SET status = $1, sort_key = $2 WHERE id = $3`,
		status, sortKey, id,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (r *noteRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}
