package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/cache"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/domain"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/gateway"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/repository"
)

const scheduledNotificationKind = "scheduled_group"

// ScheduleService owns scheduled group messages: CRUD plus the
// dispatcher tick that sends due ones and applies the recurrence policy.
type ScheduleService interface {
	Create(ctx context.Context, groupID, message, imageBase64 string, sendAt time.Time, isRecurring bool) (*domain.ScheduledGroupMessage, error)
	List(ctx context.Context) ([]domain.ScheduledGroupMessage, error)
	Delete(ctx context.Context, id string) error

	// RunTick dispatches every pending message whose send time has
	// arrived. Non-recurring messages become "sent" (terminal);
	// recurring ones stay pending with sendAt advanced by one day. A
	// failed dispatch mutates nothing and retries next tick.
	RunTick(ctx context.Context) (sent int, failed int)
}

type scheduleService struct {
	repo    repository.ScheduleRepository
	gateway gateway.Gateway
	feed    cache.NotificationCache
	log     *zap.Logger
	now     func() time.Time
}

func NewScheduleService(
	repo repository.ScheduleRepository,
	gw gateway.Gateway,
	feed cache.NotificationCache,
	log *zap.Logger,
) ScheduleService {
	return &scheduleService{
		repo:    repo,
		gateway: gw,
		feed:    feed,
		log:     log,
		now:     time.Now,
	}
}

func (s *scheduleService) Create(ctx context.Context, groupID, message, imageBase64 string, sendAt time.Time, isRecurring bool) (*domain.ScheduledGroupMessage, error) {
	msg := &domain.ScheduledGroupMessage{
		ID:          uuid.NewString(),
		GroupID:     groupID,
		Message:     message,
		ImageBase64: imageBase64,
		SendAt:      sendAt,
		IsRecurring: isRecurring,
		Status:      domain.SchedulePending,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("saving scheduled message: %w", err)
	}
	return msg, nil
}

func (s *scheduleService) List(ctx context.Context) ([]domain.ScheduledGroupMessage, error) {
	return s.repo.List(ctx)
}

func (s *scheduleService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *scheduleService) RunTick(ctx context.Context) (int, int) {
	due, err := s.repo.ListDue(ctx, s.now())
	if err != nil {
		s.log.Error("loading due scheduled messages failed, skipping tick", zap.Error(err))
		return 0, 0
	}

	var sent, failed int
	for _, msg := range due {
		if err := s.dispatch(ctx, msg); err != nil {
			failed++
		} else {
			sent++
		}
	}
	return sent, failed
}

func (s *scheduleService) dispatch(ctx context.Context, msg domain.ScheduledGroupMessage) error {
	var err error
	if msg.ImageBase64 != "" {
		err = s.gateway.SendImage(ctx, msg.GroupID, msg.Message, msg.ImageBase64)
	} else {
		err = s.gateway.SendText(ctx, msg.GroupID, msg.Message)
	}
	if err != nil {
		s.log.Warn("scheduled send failed",
			zap.String("id", msg.ID),
			zap.String("groupId", msg.GroupID),
			zap.Error(err),
		)
		s.record(ctx, msg, err)
		return err
	}

	if msg.IsRecurring {
		// One day from the old sendAt, not from now: recurrences missed
		// while offline are skipped, not back-filled.
		ok, err := s.repo.Reschedule(ctx, msg.ID, msg.SendAt, msg.NextSendAt())
		if err != nil {
			s.log.Error("rescheduling recurring message failed", zap.String("id", msg.ID), zap.Error(err))
			return err
		}
		if !ok {
			s.log.Debug("recurring message already rescheduled by a concurrent dispatcher", zap.String("id", msg.ID))
		}
	} else {
		ok, err := s.repo.MarkSent(ctx, msg.ID)
		if err != nil {
			s.log.Error("marking scheduled message sent failed", zap.String("id", msg.ID), zap.Error(err))
			return err
		}
		if !ok {
			s.log.Debug("scheduled message already marked sent by a concurrent dispatcher", zap.String("id", msg.ID))
		}
	}

	s.record(ctx, msg, nil)
	return nil
}

func (s *scheduleService) record(ctx context.Context, msg domain.ScheduledGroupMessage, sendErr error) {
	n := domain.Notification{
		ID:        uuid.NewString(),
		Kind:      scheduledNotificationKind,
		Recipient: msg.GroupID,
		Message:   msg.Message,
		Success:   sendErr == nil,
		SentAt:    s.now(),
	}
	if sendErr != nil {
		n.Error = sendErr.Error()
	}
	if err := s.feed.Record(ctx, n); err != nil {
		s.log.Warn("recording notification failed", zap.Error(err))
	}
}
