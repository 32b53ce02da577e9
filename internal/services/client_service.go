package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/domain"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/repository"
)

// NewClientInput carries the user-editable client fields.
type NewClientInput struct {
	Name          string
	Phone         string
	Emails        []string
	Subscription  string
	PaymentMethod *domain.PaymentMethod
	AmountPaid    *float64
	Quantity      int
	DueDate       *time.Time
}

type ClientService interface {
	Create(ctx context.Context, in NewClientInput) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	Get(ctx context.Context, id string) (*domain.Client, error)
	Update(ctx context.Context, id string, in NewClientInput) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
}

type clientService struct {
	repo repository.ClientRepository
	now  func() time.Time
}

func NewClientService(repo repository.ClientRepository) ClientService {
	return &clientService{repo: repo, now: time.Now}
}

func (s *clientService) Create(ctx context.Context, in NewClientInput) (*domain.Client, error) {
	now := s.now()

	client := &domain.Client{
		ID:            uuid.NewString(),
		Name:          in.Name,
		Phone:         in.Phone,
		Emails:        in.Emails,
		Subscription:  in.Subscription,
		PaymentMethod: in.PaymentMethod,
		AmountPaid:    in.AmountPaid,
		Quantity:      in.Quantity,
		DueDate:       in.DueDate,
		CreatedAt:     now,

		// Seed every watermark to now so no rule fires against a
		// brand-new record on the very next tick.
		LastNotificationSent:                &now,
		LastReminderSent:                    &now,
		LastRemarketingPostDueDateSent:      &now,
		LastRemarketingPostRegistrationSent: &now,
	}
	if client.Emails == nil {
		client.Emails = []string{}
	}
	if client.Quantity <= 0 {
		client.Quantity = 1
	}

	if err := s.repo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("saving client: %w", err)
	}
	return client, nil
}

func (s *clientService) List(ctx context.Context) ([]domain.Client, error) {
	return s.repo.List(ctx)
}

func (s *clientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *clientService) Update(ctx context.Context, id string, in NewClientInput) (*domain.Client, error) {
	client, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	client.Name = in.Name
	client.Phone = in.Phone
	client.Emails = in.Emails
	if client.Emails == nil {
		client.Emails = []string{}
	}
	client.Subscription = in.Subscription
	client.PaymentMethod = in.PaymentMethod
	client.AmountPaid = in.AmountPaid
	if in.Quantity > 0 {
		client.Quantity = in.Quantity
	}
	// A renewed due date produces new thresholds past the existing
	// watermarks, which re-arms the rules. That is the intended
	// renewal behaviour, so watermarks are deliberately untouched here.
	client.DueDate = in.DueDate

	if err := s.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
