package dto

import "time"

type ClientRequest struct {
	Name          string    `json:"name" binding:"required,max=255"`
	Phone         string    `json:"phone" binding:"required"`
	Emails        []string  `json:"emails"`
	Subscription  string    `json:"subscription"`
	PaymentMethod *string   `json:"paymentMethod" binding:"omitempty,oneof=pix cartao boleto"`
	AmountPaid    *float64  `json:"amountPaid"`
	Quantity      int       `json:"quantity"`
	DueDate       *time.Time `json:"dueDate"`
}

type ClientResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Phone         string     `json:"phone"`
	Emails        []string   `json:"emails"`
	Subscription  string     `json:"subscription"`
	PaymentMethod *string    `json:"paymentMethod,omitempty"`
	AmountPaid    *float64   `json:"amountPaid,omitempty"`
	Quantity      int        `json:"quantity"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	Status        string     `json:"status"`
}

type ClientsResponse struct {
	Clients []ClientResponse `json:"clients"`
	Total   int              `json:"total"`
}
