package service

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/deskboardhq/deskboard/internal/dashboard/domain"
	"github.com/deskboardhq/deskboard/internal/dashboard/files"
	"github.com/deskboardhq/deskboard/internal/dashboard/store"
	"github.com/deskboardhq/deskboard/pkg/idx"
)

// TaskService manages kanban cards and their attachments.
type TaskService struct {
	Store store.Store
	Files files.Storage
}

// TaskInput carries the writable task fields from the API boundary.
type TaskInput struct {
	Content    string
	Status     string
	AssignedTo string
	DueDate    *time.Time
	Priority   string
	Labels     []string
	Checklist  []domain.ChecklistItem
}

// List returns all tasks in creation order.
func (s *TaskService) List(ctx context.Context) ([]domain.Task, error) {
	return s.Store.Tasks().ListTasks(ctx)
}

// Create persists a new card. Status defaults to todo, priority to normal.
func (s *TaskService) Create(ctx context.Context, in TaskInput) (domain.Task, error) {
	status, ok := normalizeStatus(in.Status)
	if !ok {
		return domain.Task{}, ErrInvalidInput
	}
	priority, ok := normalizePriority(in.Priority)
	if !ok {
		return domain.Task{}, ErrInvalidInput
	}

	t := domain.Task{
		ID:         idx.New().String(),
		Content:    strings.TrimSpace(in.Content),
		Status:     status,
		AssignedTo: strings.TrimSpace(in.AssignedTo),
		DueDate:    in.DueDate,
		Priority:   priority,
		Labels:     in.Labels,
		Checklist:  in.Checklist,
	}
	if err := s.Store.Tasks().CreateTask(ctx, t); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

// Update overwrites the writable fields of an existing card. Attachments
// are managed separately via Attach.
func (s *TaskService) Update(ctx context.Context, id string, in TaskInput) (domain.Task, error) {
	status, ok := normalizeStatus(in.Status)
	if !ok {
		return domain.Task{}, ErrInvalidInput
	}
	priority, ok := normalizePriority(in.Priority)
	if !ok {
		return domain.Task{}, ErrInvalidInput
	}

	t, err := s.Store.Tasks().GetTaskByID(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}

	t.Content = strings.TrimSpace(in.Content)
	t.Status = status
	t.AssignedTo = strings.TrimSpace(in.AssignedTo)
	t.DueDate = in.DueDate
	t.Priority = priority
	t.Labels = in.Labels
	t.Checklist = in.Checklist

	if err := s.Store.Tasks().UpdateTask(ctx, t); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

// Attach stores an uploaded file and appends the returned path to the
// task's attachment list. The path string from the storage service is
// recorded verbatim.
func (s *TaskService) Attach(ctx context.Context, taskID, filename string, r io.Reader) (string, error) {
	// Fail before writing the file when the task doesn't exist.
	if _, err := s.Store.Tasks().GetTaskByID(ctx, taskID); err != nil {
		return "", err
	}

	path, err := s.Files.Save(filename, r)
	if err != nil {
		return "", err
	}

	if err := s.Store.Tasks().AppendAttachment(ctx, taskID, path); err != nil {
		return "", err
	}
	return path, nil
}

func normalizeStatus(status string) (string, bool) {
	switch strings.TrimSpace(status) {
	case "":
		return domain.TaskStatusTodo, true
	case domain.TaskStatusTodo, domain.TaskStatusDoing, domain.TaskStatusDone:
		return strings.TrimSpace(status), true
	default:
		return "", false
	}
}

func normalizePriority(priority string) (string, bool) {
	switch strings.TrimSpace(priority) {
	case "":
		return domain.TaskPriorityNormal, true
	case domain.TaskPriorityLow, domain.TaskPriorityNormal, domain.TaskPriorityHigh:
		return strings.TrimSpace(priority), true
	default:
		return "", false
	}
}
