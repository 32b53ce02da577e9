package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/domain"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/types"
)

type AutomationConfigRepository interface {
	// Get returns the owner's config, or types.ErrNotFound when none
	// has been saved yet. Absence means "rules do not apply", not an
	// error, and callers treat it that way.
	Get(ctx context.Context) (*domain.AutomationConfig, error)
	Upsert(ctx context.Context, cfg *domain.AutomationConfig) error
}

type automationConfigRepository struct {
	db *pgxpool.Pool
}

func NewAutomationConfigRepository(db *pgxpool.Pool) AutomationConfigRepository {
	return &automationConfigRepository{db: db}
}

func (r *automationConfigRepository) Get(ctx context.Context) (*domain.AutomationConfig, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, due_notice_enabled, due_notice_message,
			reminder_enabled, reminder_message,
			remarketing_post_due_date_enabled, remarketing_post_due_date_days, remarketing_post_due_date_message,
			remarketing_post_registration_enabled, remarketing_post_registration_days, remarketing_post_registration_message
		FROM automation_configs
		LIMIT 1`)

	var cfg domain.AutomationConfig
	err := row.Scan(
		&cfg.ID, &cfg.DueNoticeEnabled, &cfg.DueNoticeMessage,
		&cfg.ReminderEnabled, &cfg.ReminderMessage,
		&cfg.RemarketingPostDueDateEnabled, &cfg.RemarketingPostDueDateDays, &cfg.RemarketingPostDueDateMessage,
		&cfg.RemarketingPostRegistrationEnabled, &cfg.RemarketingPostRegistrationDays, &cfg.RemarketingPostRegistrationMessage,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *automationConfigRepository) Upsert(ctx context.Context, cfg *domain.AutomationConfig) error {
	sql := `
		INSERT INTO automation_configs (
			id, due_notice_enabled, due_notice_message,
			reminder_enabled, reminder_message,
			remarketing_post_due_date_enabled, remarketing_post_due_date_days, remarketing_post_due_date_message,
			remarketing_post_registration_enabled, remarketing_post_registration_days, remarketing_post_registration_message,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			due_notice_enabled = excluded.due_notice_enabled,
			due_notice_message = excluded.due_notice_message,
			reminder_enabled = excluded.reminder_enabled,
			reminder_message = excluded.reminder_message,
			remarketing_post_due_date_enabled = excluded.remarketing_post_due_date_enabled,
			remarketing_post_due_date_days = excluded.remarketing_post_due_date_days,
			remarketing_post_due_date_message = excluded.remarketing_post_due_date_message,
			remarketing_post_registration_enabled = excluded.remarketing_post_registration_enabled,
			remarketing_post_registration_days = excluded.remarketing_post_registration_days,
			remarketing_post_registration_message = excluded.remarketing_post_registration_message,
			updated_at = excluded.updated_at`

	_, err := r.db.Exec(ctx, sql,
		cfg.ID, cfg.DueNoticeEnabled, cfg.DueNoticeMessage,
		cfg.ReminderEnabled, cfg.ReminderMessage,
		cfg.RemarketingPostDueDateEnabled, cfg.RemarketingPostDueDateDays, cfg.RemarketingPostDueDateMessage,
		cfg.RemarketingPostRegistrationEnabled, cfg.RemarketingPostRegistrationDays, cfg.RemarketingPostRegistrationMessage,
		time.Now(),
	)
	return err
}
