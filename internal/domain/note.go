package domain

import "time"

type NoteStatus string

const (
	NoteTodo NoteStatus = "todo"
	NoteDone NoteStatus = "done"
)

// Note is a board item. SortKey carries no temporal meaning; it exists
// only to order notes within a column.
type Note struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	Status    NoteStatus `json:"status"`
	SortKey   float64    `json:"sortKey"`
	CreatedAt time.Time  `json:"createdAt"`
}
