package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/domain"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/types"
)

type ScheduleRepository interface {
	Create(ctx context.Context, msg *domain.ScheduledGroupMessage) error
	List(ctx context.Context) ([]domain.ScheduledGroupMessage, error)
	// ListDue returns pending messages whose send_at has arrived.
	ListDue(ctx context.Context, now time.Time) ([]domain.ScheduledGroupMessage, error)
	// MarkSent finishes a non-recurring message. Conditional on the row
	// still being pending, so overlapping dispatchers settle on one winner.
	MarkSent(ctx context.Context, id string) (bool, error)
	// Reschedule advances a recurring message to its next occurrence.
	// Conditional on send_at still holding the value this dispatcher
	// read, for the same reason.
	Reschedule(ctx context.Context, id string, from, next time.Time) (bool, error)
	Delete(ctx context.Context, id string) error
}

const scheduleColumns = `id, group_id, message, image_base64, send_at, is_recurring, status, created_at`

type scheduleRepository struct {
	db *pgxpool.Pool
}

func NewScheduleRepository(db *pgxpool.Pool) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) Create(ctx context.Context, msg *domain.ScheduledGroupMessage) error {
	sql := `INSERT INTO scheduled_group_messages (` + scheduleColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, sql,
		msg.ID, msg.GroupID, msg.Message, msg.ImageBase64,
		msg.SendAt, msg.IsRecurring, msg.Status, msg.CreatedAt,
	)
	return err
}

func (r *scheduleRepository) List(ctx context.Context) ([]domain.ScheduledGroupMessage, error) {
	rows, err := r.db.Query(ctx, `SELECT `+scheduleColumns+` FROM scheduled_group_messages ORDER BY send_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectScheduled(rows)
}

func (r *scheduleRepository) ListDue(ctx context.Context, now time.Time) ([]domain.ScheduledGroupMessage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+scheduleColumns+`
		FROM scheduled_group_messages
		WHERE status = $1 AND send_at <= $2
		ORDER BY send_at ASC`,
		domain.SchedulePending, now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectScheduled(rows)
}

func (r *scheduleRepository) MarkSent(ctx context.Context, id string) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE scheduled_group_messages
		SET status = $1
		WHERE id = $2 AND status = $3`,
		domain.ScheduleSent, id, domain.SchedulePending,
	)
	if err != nil {
		return false, err
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *scheduleRepository) Reschedule(ctx context.Context, id string, from, next time.Time) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE scheduled_group_messages
		SET send_at = $1
		WHERE id = $2 AND status = $3 AND send_at = $4`,
		next, id, domain.SchedulePending, from,
	)
	if err != nil {
		return false, err
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *scheduleRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM scheduled_group_messages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func collectScheduled(rows pgx.Rows) ([]domain.ScheduledGroupMessage, error) {
	messages := make([]domain.ScheduledGroupMessage, 0)
	for rows.Next() {
		var m domain.ScheduledGroupMessage
		if err := rows.Scan(&m.ID, &m.GroupID, &m.Message, &m.ImageBase64,
			&m.SendAt, &m.IsRecurring, &m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
