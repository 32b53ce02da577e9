package services

import (
	"context"
	"sync"
	"time"

	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/domain"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/gateway"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/types"
)

// In-memory stand-ins for the repository, gateway and cache boundaries.
// They reproduce the conditional-update semantics of the real
// implementations so the services can be exercised without a database.

type fakeClientRepo struct {
	mu      sync.Mutex
	clients []domain.Client
	listErr error
}

func (f *fakeClientRepo) Create(_ context.Context, c *domain.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients = append(f.clients, *c)
	return nil
}

func (f *fakeClientRepo) GetByID(_ context.Context, id string) (*domain.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.clients {
		if f.clients[i].ID == id {
			c := f.clients[i]
			return &c, nil
		}
	}
	return nil, types.ErrNotFound
}

func (f *fakeClientRepo) List(_ context.Context) ([]domain.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Client, len(f.clients))
	copy(out, f.clients)
	return out, nil
}

func (f *fakeClientRepo) Update(_ context.Context, c *domain.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.clients {
		if f.clients[i].ID == c.ID {
			updated := *c
			updated.LastNotificationSent = f.clients[i].LastNotificationSent
			updated.LastReminderSent = f.clients[i].LastReminderSent
			updated.LastRemarketingPostDueDateSent = f.clients[i].LastRemarketingPostDueDateSent
			updated.LastRemarketingPostRegistrationSent = f.clients[i].LastRemarketingPostRegistrationSent
			f.clients[i] = updated
			return nil
		}
	}
	return types.ErrNotFound
}

func (f *fakeClientRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.clients {
		if f.clients[i].ID == id {
			f.clients = append(f.clients[:i], f.clients[i+1:]...)
			return nil
		}
	}
	return types.ErrNotFound
}

func (f *fakeClientRepo) AdvanceWatermark(_ context.Context, id string, kind domain.RuleKind, threshold, sentAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.clients {
		if f.clients[i].ID != id {
			continue
		}
		mark := watermarkOf(&f.clients[i], kind)
		if *mark == nil || (*mark).Before(threshold) {
			stamped := sentAt
			*mark = &stamped
			return true, nil
		}
		return false, nil
	}
	return false, nil
}

func watermarkOf(c *domain.Client, kind domain.RuleKind) **time.Time {
	switch kind {
	case domain.RuleDueNotice:
		return &c.LastNotificationSent
	case domain.RuleReminder:
		return &c.LastReminderSent
	case domain.RuleRemarketingPostDueDate:
		return &c.LastRemarketingPostDueDateSent
	default:
		return &c.LastRemarketingPostRegistrationSent
	}
}

type fakeConfigRepo struct {
	cfg    *domain.AutomationConfig
	getErr error
}

func (f *fakeConfigRepo) Get(_ context.Context) (*domain.AutomationConfig, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.cfg == nil {
		return nil, types.ErrNotFound
	}
	cfg := *f.cfg
	return &cfg, nil
}

func (f *fakeConfigRepo) Upsert(_ context.Context, cfg *domain.AutomationConfig) error {
	stored := *cfg
	f.cfg = &stored
	return nil
}

type fakeScheduleRepo struct {
	mu      sync.Mutex
	msgs    []domain.ScheduledGroupMessage
	listErr error
}

func (f *fakeScheduleRepo) Create(_ context.Context, msg *domain.ScheduledGroupMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, *msg)
	return nil
}

func (f *fakeScheduleRepo) List(_ context.Context) ([]domain.ScheduledGroupMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.ScheduledGroupMessage, len(f.msgs))
	copy(out, f.msgs)
	return out, nil
}

func (f *fakeScheduleRepo) ListDue(_ context.Context, now time.Time) ([]domain.ScheduledGroupMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	due := make([]domain.ScheduledGroupMessage, 0)
	for _, m := range f.msgs {
		if m.Due(now) {
			due = append(due, m)
		}
	}
	return due, nil
}

func (f *fakeScheduleRepo) MarkSent(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.msgs {
		if f.msgs[i].ID == id && f.msgs[i].Status == domain.SchedulePending {
			f.msgs[i].Status = domain.ScheduleSent
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeScheduleRepo) Reschedule(_ context.Context, id string, from, next time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.msgs {
		if f.msgs[i].ID == id && f.msgs[i].Status == domain.SchedulePending && f.msgs[i].SendAt.Equal(from) {
			f.msgs[i].SendAt = next
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeScheduleRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.msgs {
		if f.msgs[i].ID == id {
			f.msgs = append(f.msgs[:i], f.msgs[i+1:]...)
			return nil
		}
	}
	return types.ErrNotFound
}

func (f *fakeScheduleRepo) byID(id string) *domain.ScheduledGroupMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.msgs {
		if f.msgs[i].ID == id {
			m := f.msgs[i]
			return &m
		}
	}
	return nil
}

type fakeNoteRepo struct {
	mu    sync.Mutex
	notes []domain.Note
}

func (f *fakeNoteRepo) Create(_ context.Context, n *domain.Note) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes = append(f.notes, *n)
	return nil
}

func (f *fakeNoteRepo) List(_ context.Context) ([]domain.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Note, len(f.notes))
	copy(out, f.notes)
	// Display order, largest key first.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].SortKey > out[i].SortKey {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (f *fakeNoteRepo) Update(_ context.Context, id, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notes {
		if f.notes[i].ID == id {
			f.notes[i].Content = content
			return nil
		}
	}
	return types.ErrNotFound
}

func (f *fakeNoteRepo) SetPosition(_ context.Context, id string, status domain.NoteStatus, sortKey float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notes {
		if f.notes[i].ID == id {
			f.notes[i].Status = status
			f.notes[i].SortKey = sortKey
			return nil
		}
	}
	return types.ErrNotFound
}

func (f *fakeNoteRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notes {
		if f.notes[i].ID == id {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			return nil
		}
	}
	return types.ErrNotFound
}

func (f *fakeNoteRepo) byID(id string) *domain.Note {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notes {
		if f.notes[i].ID == id {
			n := f.notes[i]
			return &n
		}
	}
	return nil
}

type sentText struct {
	recipient string
	message   string
}

type sentImage struct {
	groupID     string
	message     string
	imageBase64 string
}

type fakeGateway struct {
	mu       sync.Mutex
	texts    []sentText
	images   []sentImage
	sendErr  error
	statusFn func() (gateway.ConnectionStatus, error)
}

func (f *fakeGateway) SendText(_ context.Context, recipient, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.texts = append(f.texts, sentText{recipient: recipient, message: message})
	return nil
}

func (f *fakeGateway) SendImage(_ context.Context, groupID, message, imageBase64 string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.images = append(f.images, sentImage{groupID: groupID, message: message, imageBase64: imageBase64})
	return nil
}

func (f *fakeGateway) Status(_ context.Context) (gateway.ConnectionStatus, error) {
	if f.statusFn != nil {
		return f.statusFn()
	}
	return gateway.ConnectionStatus{Connected: true}, nil
}

func (f *fakeGateway) setSendErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendErr = err
}

func (f *fakeGateway) sentTexts() []sentText {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentText, len(f.texts))
	copy(out, f.texts)
	return out
}

type fakeFeed struct {
	mu      sync.Mutex
	entries []domain.Notification
}

func (f *fakeFeed) Record(_ context.Context, n domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, n)
	return nil
}

func (f *fakeFeed) Recent(_ context.Context, page, pageSize int) ([]domain.Notification, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := int64(len(f.entries))
	start := (page - 1) * pageSize
	if start >= len(f.entries) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(f.entries) {
		end = len(f.entries)
	}
	out := make([]domain.Notification, end-start)
	copy(out, f.entries[start:end])
	return out, total, nil
}

func (f *fakeFeed) recorded() []domain.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Notification, len(f.entries))
	copy(out, f.entries)
	return out
}
