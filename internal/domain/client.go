package domain

import "time"

type PaymentMethod string

const (
	PaymentPix    PaymentMethod = "pix"
	PaymentCard   PaymentMethod = "cartao"
	PaymentBoleto PaymentMethod = "boleto"
)

// Client is a subscription customer. The four Last* fields are per-rule
// watermarks: the instant of the last successful automated send for that
// rule. They only ever move forward; see AdvanceWatermark in the
// repository layer.
type Client struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Phone         string         `json:"phone"`
	Emails        []string       `json:"emails"`
	Subscription  string         `json:"subscription"`
	PaymentMethod *PaymentMethod `json:"paymentMethod,omitempty"`
	AmountPaid    *float64       `json:"amountPaid,omitempty"`
	Quantity      int            `json:"quantity"`
	DueDate       *time.Time     `json:"dueDate,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`

	LastNotificationSent                *time.Time `json:"lastNotificationSent,omitempty"`
	LastReminderSent                    *time.Time `json:"lastReminderSent,omitempty"`
	LastRemarketingPostDueDateSent      *time.Time `json:"lastRemarketingPostDueDateSent,omitempty"`
	LastRemarketingPostRegistrationSent *time.Time `json:"lastRemarketingPostRegistrationSent,omitempty"`
}

func (c *Client) FirstEmail() string {
	if len(c.Emails) == 0 {
		return ""
	}
	return c.Emails[0]
}
