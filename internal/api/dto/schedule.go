package dto

import "time"

type ScheduledMessageRequest struct {
	GroupID     string    `json:"groupId" binding:"required"`
	Message     string    `json:"message" binding:"required"`
	ImageBase64 string    `json:"imageBase64"`
	SendAt      time.Time `json:"sendAt" binding:"required"`
	IsRecurring bool      `json:"isRecurring"`
}

type ScheduledMessageResponse struct {
	ID          string    `json:"id"`
	GroupID     string    `json:"groupId"`
	Message     string    `json:"message"`
	HasImage    bool      `json:"hasImage"`
	SendAt      time.Time `json:"sendAt"`
	IsRecurring bool      `json:"isRecurring"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}
