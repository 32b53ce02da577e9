package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/domain"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/repository"
)

type NoteService interface {
	Create(ctx context.Context, content string) (*domain.Note, error)
	List(ctx context.Context) ([]domain.Note, error)
	Update(ctx context.Context, id, content string) error
	// Move places a note at the given index of the target column by
	// assigning it a fresh sort key derived from its new neighbours.
	// No other note is rewritten.
	Move(ctx context.Context, id string, status domain.NoteStatus, index int) error
	Delete(ctx context.Context, id string) error
}

type noteService struct {
	repo repository.NoteRepository
	now  func() time.Time
}

func NewNoteService(repo repository.NoteRepository) NoteService {
	return &noteService{repo: repo, now: time.Now}
}

func (s *noteService) Create(ctx context.Context, content string) (*domain.Note, error) {
	now := s.now()
	note := &domain.Note{
		ID:        uuid.NewString(),
		Content:   content,
		Status:    domain.NoteTodo,
		SortKey:   domain.InitialOrderKey(now),
		CreatedAt: now,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) List(ctx context.Context) ([]domain.Note, error) {
	return s.repo.List(ctx)
}

func (s *noteService) Update(ctx context.Context, id, content string) error {
	return s.repo.Update(ctx, id, content)
}

func (s *noteService) Move(ctx context.Context, id string, status domain.NoteStatus, index int) error {
	notes, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	// Target column in display order, without the note being moved.
	column := make([]domain.Note, 0, len(notes))
	for _, n := range notes {
		if n.Status == status && n.ID != id {
			column = append(column, n)
		}
	}

	var key float64
	switch {
	case len(column) == 0:
		key = domain.InitialOrderKey(s.now())
	case index <= 0:
		key = domain.OrderKeyFront(column[0].SortKey)
	case index >= len(column):
		key = domain.OrderKeyBack(column[len(column)-1].SortKey)
	default:
		key = domain.OrderKeyBetween(column[index-1].SortKey, column[index].SortKey)
	}

	return s.repo.SetPosition(ctx, id, status, key)
}

func (s *noteService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
