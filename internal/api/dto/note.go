package dto

import "time"

type CreateNoteRequest struct {
	Content string `json:"content" binding:"required"`
}

type UpdateNoteRequest struct {
	Content string `json:"content" binding:"required"`
}

type MoveNoteRequest struct {
	Status string `json:"status" binding:"required,oneof=todo done"`
	Index  int    `json:"index" binding:"min=0"`
}

type NoteResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	SortKey   float64   `json:"sortKey"`
	CreatedAt time.Time `json:"createdAt"`
}
