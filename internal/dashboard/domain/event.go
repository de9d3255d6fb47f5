package domain

import "time"

// Recurrence labels the repeat rule of a calendar event. The set is open
// on read: unknown stored labels are treated like a single occurrence
// during expansion rather than rejected.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// Event is a stored calendar event. End must not precede Start; the
// duration End-Start is preserved across every expanded occurrence.
type Event struct {
	ID         string
	Title      string
	Start      time.Time
	End        time.Time
	Recurrence Recurrence
	CreatedAt  time.Time
}

// Occurrence is a materialized instance of an event inside a display
// window. Occurrences are derived at read time and never persisted.
type Occurrence struct {
	EventID    string    `json:"event_id"`
	Title      string    `json:"title"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Recurrence string    `json:"recurrence"`
}
