package domain

import "time"

// Notification is one entry in the operator-facing feed of send
// outcomes. Both successes and failures are recorded; a failed send
// mutates nothing else and is retried on the next tick.
type Notification struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	ClientID   string    `json:"clientId,omitempty"`
	ClientName string    `json:"clientName,omitempty"`
	Recipient  string    `json:"recipient"`
	Message    string    `json:"message"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
	SentAt     time.Time `json:"sentAt"`
}
