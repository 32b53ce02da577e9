package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/domain"
)

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

type automationFixture struct {
	clients *fakeClientRepo
	configs *fakeConfigRepo
	gw      *fakeGateway
	feed    *fakeFeed
	svc     *automationService
	now     time.Time
}

func newAutomationFixture(now time.Time) *automationFixture {
	fx := &automationFixture{
		clients: &fakeClientRepo{},
		configs: &fakeConfigRepo{},
		gw:      &fakeGateway{},
		feed:    &fakeFeed{},
		now:     now,
	}
	fx.svc = &automationService{
		clients: fx.clients,
		configs: fx.configs,
		gateway: fx.gw,
		feed:    fx.feed,
		log:     zap.NewNop(),
		now:     func() time.Time { return fx.now },
	}
	return fx
}

func TestRunTickWithoutConfigDoesNothing(t *testing.T) {
	fx := newAutomationFixture(date(2024, time.January, 11, 10, 0))
	fx.clients.clients = []domain.Client{{ID: "c1", Name: "Maria", Phone: "551199", DueDate: ptr(date(2024, time.January, 10, 0, 0))}}

	sent, failed := fx.svc.RunTick(context.Background())

	assert.Zero(t, sent)
	assert.Zero(t, failed)
	assert.Empty(t, fx.gw.sentTexts())
}

func TestRunTickDueNoticeFiresExactlyOnce(t *testing.T) {
	fx := newAutomationFixture(date(2024, time.January, 11, 10, 0))
	fx.configs.cfg = &domain.AutomationConfig{
		ID:               "cfg",
		DueNoticeEnabled: true,
		DueNoticeMessage: "Ola {name}, seu plano venceu",
	}
	fx.clients.clients = []domain.Client{{
		ID:      "c1",
		Name:    "Maria",
		Phone:   "5511999990000",
		DueDate: ptr(date(2024, time.January, 10, 0, 0)),
	}}

	sent, failed := fx.svc.RunTick(context.Background())
	require.Equal(t, 1, sent)
	require.Zero(t, failed)

	texts := fx.gw.sentTexts()
	require.Len(t, texts, 1)
	assert.Equal(t, "5511999990000", texts[0].recipient)
	assert.Equal(t, "Ola Maria, seu plano venceu", texts[0].message)

	stored, err := fx.clients.GetByID(context.Background(), "c1")
	require.NoError(t, err)
	require.NotNil(t, stored.LastNotificationSent)
	assert.Equal(t, fx.now, *stored.LastNotificationSent)

	feed := fx.feed.recorded()
	require.Len(t, feed, 1)
	assert.Equal(t, string(domain.RuleDueNotice), feed[0].Kind)
	assert.True(t, feed[0].Success)

	// The next day the threshold is unchanged and the watermark is past
	// it, so nothing fires again.
	fx.now = date(2024, time.January, 12, 10, 0)
	sent, failed = fx.svc.RunTick(context.Background())
	assert.Zero(t, sent)
	assert.Zero(t, failed)
	assert.Len(t, fx.gw.sentTexts(), 1)
}

func TestRunTickFailedSendMutatesNothingAndRetries(t *testing.T) {
	fx := newAutomationFixture(date(2024, time.January, 11, 10, 0))
	fx.configs.cfg = &domain.AutomationConfig{
		ID:               "cfg",
		DueNoticeEnabled: true,
		DueNoticeMessage: "Ola {name}",
	}
	fx.clients.clients = []domain.Client{{
		ID:      "c1",
		Name:    "Maria",
		Phone:   "551199",
		DueDate: ptr(date(2024, time.January, 10, 0, 0)),
	}}
	fx.gw.setSendErr(errors.New("gateway down"))

	sent, failed := fx.svc.RunTick(context.Background())
	assert.Zero(t, sent)
	assert.Equal(t, 1, failed)

	stored, err := fx.clients.GetByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Nil(t, stored.LastNotificationSent)

	feed := fx.feed.recorded()
	require.Len(t, feed, 1)
	assert.False(t, feed[0].Success)
	assert.Equal(t, "gateway down", feed[0].Error)

	// Gateway recovers and the same firing goes through on the next tick.
	fx.gw.setSendErr(nil)
	fx.now = fx.now.Add(10 * time.Second)
	sent, failed = fx.svc.RunTick(context.Background())
	assert.Equal(t, 1, sent)
	assert.Zero(t, failed)
}

func TestRunTickDispatchesEachFiringRuleSeparately(t *testing.T) {
	fx := newAutomationFixture(date(2024, time.January, 11, 10, 0))
	fx.configs.cfg = &domain.AutomationConfig{
		ID:                                 "cfg",
		DueNoticeEnabled:                   true,
		DueNoticeMessage:                   "vencimento {name}",
		RemarketingPostRegistrationEnabled: true,
		RemarketingPostRegistrationDays:    3,
		RemarketingPostRegistrationMessage: "novidades {name}",
	}
	fx.clients.clients = []domain.Client{{
		ID:        "c1",
		Name:      "Maria",
		Phone:     "551199",
		DueDate:   ptr(date(2024, time.January, 10, 0, 0)),
		CreatedAt: date(2024, time.January, 1, 0, 0),
	}}

	sent, failed := fx.svc.RunTick(context.Background())
	assert.Equal(t, 2, sent)
	assert.Zero(t, failed)

	messages := map[string]bool{}
	for _, txt := range fx.gw.sentTexts() {
		messages[txt.message] = true
	}
	assert.True(t, messages["vencimento Maria"])
	assert.True(t, messages["novidades Maria"])

	stored, err := fx.clients.GetByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.NotNil(t, stored.LastNotificationSent)
	assert.NotNil(t, stored.LastRemarketingPostRegistrationSent)
	assert.Nil(t, stored.LastReminderSent)
}

func TestRunTickReminderStopsAtDueDate(t *testing.T) {
	fx := newAutomationFixture(date(2024, time.January, 12, 10, 0))
	fx.configs.cfg = &domain.AutomationConfig{
		ID:              "cfg",
		ReminderEnabled: true,
		ReminderMessage: "lembrete {name}",
	}
	// Due date already behind now: the reminder window is closed even
	// though its threshold has long passed and the watermark is unset.
	fx.clients.clients = []domain.Client{{
		ID:      "c1",
		Name:    "Maria",
		Phone:   "551199",
		DueDate: ptr(date(2024, time.January, 10, 0, 0)),
	}}

	sent, failed := fx.svc.RunTick(context.Background())
	assert.Zero(t, sent)
	assert.Zero(t, failed)
	assert.Empty(t, fx.gw.sentTexts())
}

func TestRunTickSkipsTickOnConfigStoreError(t *testing.T) {
	fx := newAutomationFixture(date(2024, time.January, 11, 10, 0))
	fx.configs.getErr = errors.New("connection refused")
	fx.clients.clients = []domain.Client{{ID: "c1", Phone: "551199", DueDate: ptr(date(2024, time.January, 10, 0, 0))}}

	sent, failed := fx.svc.RunTick(context.Background())
	assert.Zero(t, sent)
	assert.Zero(t, failed)
	assert.Empty(t, fx.gw.sentTexts())
}

func TestSaveConfigKeepsExistingID(t *testing.T) {
	fx := newAutomationFixture(date(2024, time.January, 11, 10, 0))

	first, err := fx.svc.SaveConfig(context.Background(), &domain.AutomationConfig{DueNoticeEnabled: true})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := fx.svc.SaveConfig(context.Background(), &domain.AutomationConfig{DueNoticeEnabled: false})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	stored, err := fx.svc.GetConfig(context.Background())
	require.NoError(t, err)
	assert.False(t, stored.DueNoticeEnabled)
}
