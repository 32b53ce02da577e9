package domain

import "time"

type ScheduleStatus string

const (
	SchedulePending ScheduleStatus = "pending"
	ScheduleSent    ScheduleStatus = "sent"
)

// ScheduledGroupMessage is a one-off or daily-recurring message to a
// WhatsApp group, optionally carrying an image payload. "sent" is a
// terminal status only for non-recurring messages; a recurring message
// cycles back to pending with SendAt advanced by one day per dispatch.
type ScheduledGroupMessage struct {
	ID          string         `json:"id"`
	GroupID     string         `json:"groupId"`
	Message     string         `json:"message"`
	ImageBase64 string         `json:"imageBase64,omitempty"`
	SendAt      time.Time      `json:"sendAt"`
	IsRecurring bool           `json:"isRecurring"`
	Status      ScheduleStatus `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// Due reports whether the message should be dispatched at the given instant.
func (m *ScheduledGroupMessage) Due(now time.Time) bool {
	return m.Status == SchedulePending && !m.SendAt.After(now)
}

// NextSendAt is the recurrence step: exactly one day after the current
// SendAt, not relative to now. Recurrences missed while the process was
// down are not back-filled.
func (m *ScheduledGroupMessage) NextSendAt() time.Time {
	return m.SendAt.AddDate(0, 0, 1)
}
