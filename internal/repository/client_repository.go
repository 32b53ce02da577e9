package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/domain"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/types"
)

type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	// List returns a snapshot of all clients; the polling loops
	// evaluate whatever the latest snapshot contains.
	List(ctx context.Context) ([]domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id string) error
	// AdvanceWatermark moves one rule's watermark to sentAt, but only
	// if the stored watermark is still behind the rule's threshold.
	// The condition lives in the UPDATE itself so two overlapping
	// evaluators cannot both claim the same firing window; the loser
	// sees advanced=false.
	AdvanceWatermark(ctx context.Context, id string, kind domain.RuleKind, threshold, sentAt time.Time) (bool, error)
}

var watermarkColumns = map[domain.RuleKind]string{
	domain.RuleDueNotice:                   "last_notification_sent",
	domain.RuleReminder:                    "last_reminder_sent",
	domain.RuleRemarketingPostDueDate:      "last_remarketing_post_due_date_sent",
	domain.RuleRemarketingPostRegistration: "last_remarketing_post_registration_sent",
}

const clientColumns = `id, name, phone, emails, subscription, payment_method, amount_paid, quantity,
	due_date, created_at, last_notification_sent, last_reminder_sent,
	last_remarketing_post_due_date_sent, last_remarketing_post_registration_sent`

type clientRepository struct {
	db *pgxpool.Pool
}

func NewClientRepository(db *pgxpool.Pool) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	sql := `INSERT INTO clients (` + clientColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.Exec(ctx, sql,
		client.ID, client.Name, client.Phone, client.Emails, client.Subscription,
		client.PaymentMethod, client.AmountPaid, client.Quantity,
		client.DueDate, client.CreatedAt,
		client.LastNotificationSent, client.LastReminderSent,
		client.LastRemarketingPostDueDateSent, client.LastRemarketingPostRegistrationSent,
	)
	return err
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	row := r.db.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)

	client, err := scanClient(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (r *clientRepository) List(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.Query(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]domain.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *client)
	}
	return clients, rows.Err()
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	sql := `UPDATE clients
			SET name = $1, phone = $2, emails = $3, subscription = $4,
				payment_method = $5, amount_paid = $6, quantity = $7, due_date = $8
			WHERE id = $9`

	cmdTag, err := r.db.Exec(ctx, sql,
		client.Name, client.Phone, client.Emails, client.Subscription,
		client.PaymentMethod, client.AmountPaid, client.Quantity, client.DueDate,
		client.ID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (r *clientRepository) AdvanceWatermark(ctx context.Context, id string, kind domain.RuleKind, threshold, sentAt time.Time) (bool, error) {
	column, ok := watermarkColumns[kind]
	if !ok {
		return false, fmt.Errorf("unknown rule kind %q", kind)
	}

	// column comes from the fixed map above, never from input.
	sql := fmt.Sprintf(`UPDATE clients
			SET %s = $1
			WHERE id = $2 AND (%s IS NULL OR %s < $3)`, column, column, column)

	cmdTag, err := r.db.Exec(ctx, sql, sentAt, id, threshold)
	if err != nil {
		return false, err
	}
	return cmdTag.RowsAffected() > 0, nil
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ID, &c.Name, &c.Phone, &c.Emails, &c.Subscription,
		&c.PaymentMethod, &c.AmountPaid, &c.Quantity,
		&c.DueDate, &c.CreatedAt,
		&c.LastNotificationSent, &c.LastReminderSent,
		&c.LastRemarketingPostDueDateSent, &c.LastRemarketingPostRegistrationSent,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
