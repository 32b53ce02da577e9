package domain

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

// A client stays "overdue" for this many days past the due date before
// being considered cancelled.
const overdueGraceDays = 5

// Classify derives the lifecycle status of a client from its due date.
// Both sides are truncated to start-of-day so the status never flaps
// with the time of day. A client without a due date never expires.
func Classify(dueDate *time.Time, now time.Time) Status {
	if dueDate == nil {
		return StatusActive
	}

	today := startOfDay(now)
	due := startOfDay(*dueDate)

	if !due.Before(today) {
		return StatusActive
	}
	if !due.Before(today.AddDate(0, 0, -overdueGraceDays)) {
		return StatusOverdue
	}
	return StatusCancelled
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
