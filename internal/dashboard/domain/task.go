package domain

import "time"

// Task statuses mirror the kanban columns.
const (
	TaskStatusTodo  = "todo"
	TaskStatusDoing = "doing"
	TaskStatusDone  = "done"
)

// Task priorities.
const (
	TaskPriorityLow    = "low"
	TaskPriorityNormal = "normal"
	TaskPriorityHigh   = "high"
)

// ChecklistItem is a single checkbox line on a task.
type ChecklistItem struct {
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// Task is a kanban card. Attachments hold the path strings returned by the
// file storage service, stored verbatim.
type Task struct {
	ID          string
	Content     string
	Status      string
	Attachments []string
	AssignedTo  string
	DueDate     *time.Time
	Priority    string
	Labels      []string
	Checklist   []ChecklistItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
