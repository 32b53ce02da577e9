package dto

import "github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/domain"

type ErrorResponse struct {
	Error string `json:"error"`
}

type JobResponse struct {
	Job    string `json:"job"`
	Status string `json:"status"`
}

type NotificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	Total         int64                 `json:"total"`
}
