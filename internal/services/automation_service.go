package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/cache"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/domain"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/gateway"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/repository"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/types"
)

const maxSendWorkers = 10

// AutomationService runs the rule-driven trigger loop: every tick it
// snapshots clients and configuration, evaluates all four rules against
// every client, and dispatches WhatsApp messages for the instances that
// fire. Watermarks advance only after a successful send, via a
// conditional update, so a send fires at most once per threshold no
// matter how irregular the ticks are or how many instances overlap.
type AutomationService interface {
	// RunTick performs one evaluation pass. It returns the number of
	// successful and failed dispatches; a failed dispatch mutates
	// nothing and is retried naturally on the next tick.
	RunTick(ctx context.Context) (sent int, failed int)

	GetConfig(ctx context.Context) (*domain.AutomationConfig, error)
	// SaveConfig upserts the single config record. Toggling a rule off
	// or changing an offset never resets watermarks; thresholds are
	// recomputed on every tick, so an offset change can retroactively
	// re-arm or disarm rules for existing clients.
	SaveConfig(ctx context.Context, cfg *domain.AutomationConfig) (*domain.AutomationConfig, error)
}

type automationService struct {
	clients repository.ClientRepository
	configs repository.AutomationConfigRepository
	gateway gateway.Gateway
	feed    cache.NotificationCache
	log     *zap.Logger
	now     func() time.Time
}

func NewAutomationService(
	clients repository.ClientRepository,
	configs repository.AutomationConfigRepository,
	gw gateway.Gateway,
	feed cache.NotificationCache,
	log *zap.Logger,
) AutomationService {
	return &automationService{
		clients: clients,
		configs: configs,
		gateway: gw,
		feed:    feed,
		log:     log,
		now:     time.Now,
	}
}

func (s *automationService) GetConfig(ctx context.Context) (*domain.AutomationConfig, error) {
	return s.configs.Get(ctx)
}

func (s *automationService) SaveConfig(ctx context.Context, cfg *domain.AutomationConfig) (*domain.AutomationConfig, error) {
	existing, err := s.configs.Get(ctx)
	switch {
	case err == nil:
		cfg.ID = existing.ID
	case errors.Is(err, types.ErrNotFound):
		cfg.ID = uuid.NewString()
	default:
		return nil, err
	}

	if err := s.configs.Upsert(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

type firing struct {
	client domain.Client
	rule   domain.Rule
}

func (s *automationService) RunTick(ctx context.Context) (int, int) {
	cfg, err := s.configs.Get(ctx)
	if errors.Is(err, types.ErrNotFound) {
		// No automation config yet: no rule applies.
		return 0, 0
	}
	if err != nil {
		// Store unavailable: skip the whole tick rather than evaluate
		// with partial data.
		s.log.Error("loading automation config failed, skipping tick", zap.Error(err))
		return 0, 0
	}

	clients, err := s.clients.List(ctx)
	if err != nil {
		s.log.Error("loading clients failed, skipping tick", zap.Error(err))
		return 0, 0
	}

	now := s.now()
	var due []firing
	for _, client := range clients {
		for _, rule := range domain.RulesFor(&client, cfg) {
			if rule.ShouldFire(now) {
				due = append(due, firing{client: client, rule: rule})
			}
		}
	}
	if len(due) == 0 {
		return 0, 0
	}

	s.log.Info("automation tick", zap.Int("firing", len(due)), zap.Int("clients", len(clients)))
	return s.dispatchBatch(ctx, due, now)
}

// dispatchBatch sends the firing instances through a bounded worker
// pool. Instances are independent: a client with several firing rules
// gets each message separately, and one failure does not block the rest.
func (s *automationService) dispatchBatch(ctx context.Context, batch []firing, now time.Time) (int, int) {
	jobs := make(chan firing, len(batch))

	var sentCount, failedCount int32
	var wg sync.WaitGroup

	numWorkers := min(len(batch), maxSendWorkers)
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for f := range jobs {
				if err := s.dispatch(ctx, f, now); err != nil {
					atomic.AddInt32(&failedCount, 1)
				} else {
					atomic.AddInt32(&sentCount, 1)
				}
			}
		}()
	}

	for _, f := range batch {
		jobs <- f
	}
	close(jobs)
	wg.Wait()

	return int(atomic.LoadInt32(&sentCount)), int(atomic.LoadInt32(&failedCount))
}

func (s *automationService) dispatch(ctx context.Context, f firing, now time.Time) error {
	text := domain.RenderTemplate(f.rule.Template, &f.client, now)

	if err := s.gateway.SendText(ctx, f.client.Phone, text); err != nil {
		s.log.Warn("automation send failed",
			zap.String("rule", string(f.rule.Kind)),
			zap.String("clientId", f.client.ID),
			zap.Error(err),
		)
		s.record(ctx, f, text, err)
		return err
	}

	threshold, _ := f.rule.Threshold()
	advanced, err := s.clients.AdvanceWatermark(ctx, f.client.ID, f.rule.Kind, threshold, s.now())
	if err != nil {
		// The message went out but the watermark write failed; the next
		// tick will resend. Duplicate sends are the accepted failure
		// mode here, lost watermarks are not.
		s.log.Error("watermark advance failed",
			zap.String("rule", string(f.rule.Kind)),
			zap.String("clientId", f.client.ID),
			zap.Error(err),
		)
		return err
	}
	if !advanced {
		s.log.Debug("watermark already advanced by a concurrent sender",
			zap.String("rule", string(f.rule.Kind)),
			zap.String("clientId", f.client.ID),
		)
	}

	s.record(ctx, f, text, nil)
	return nil
}

func (s *automationService) record(ctx context.Context, f firing, text string, sendErr error) {
	n := domain.Notification{
		ID:         uuid.NewString(),
		Kind:       string(f.rule.Kind),
		ClientID:   f.client.ID,
		ClientName: f.client.Name,
		Recipient:  f.client.Phone,
		Message:    text,
		Success:    sendErr == nil,
		SentAt:     s.now(),
	}
	if sendErr != nil {
		n.Error = sendErr.Error()
	}
	if err := s.feed.Record(ctx, n); err != nil {
		s.log.Warn("recording notification failed", zap.Error(err))
	}
}
