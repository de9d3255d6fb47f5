package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/deskboardhq/deskboard/internal/dashboard/domain"
	"github.com/deskboardhq/deskboard/internal/dashboard/service"
	"github.com/deskboardhq/deskboard/pkg/httpx"
)

type TasksHandler struct {
	TaskService *service.TaskService

	// MaxUploadBytes caps attachment size; requests beyond it get 400.
	MaxUploadBytes int64
}

type taskRequest struct {
	Content    string                 `json:"content"`
	Status     string                 `json:"status,omitempty"`
	AssignedTo string                 `json:"assigned_to,omitempty"`
	DueDate    *time.Time             `json:"due_date,omitempty"`
	Priority   string                 `json:"priority,omitempty"`
	Labels     []string               `json:"labels,omitempty"`
	Checklist  []domain.ChecklistItem `json:"checklist,omitempty"`
}

type taskResponse struct {
	ID          string                 `json:"id"`
	Content     string                 `json:"content"`
	Status      string                 `json:"status"`
	Attachments []string               `json:"attachments"`
	AssignedTo  string                 `json:"assigned_to,omitempty"`
	DueDate     *time.Time             `json:"due_date,omitempty"`
	Priority    string                 `json:"priority"`
	Labels      []string               `json:"labels,omitempty"`
	Checklist   []domain.ChecklistItem `json:"checklist,omitempty"`
}

func toTaskResponse(t domain.Task) taskResponse {
	attachments := t.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	return taskResponse{
		ID:          t.ID,
		Content:     t.Content,
		Status:      t.Status,
		Attachments: attachments,
		AssignedTo:  t.AssignedTo,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Labels:      t.Labels,
		Checklist:   t.Checklist,
	}
}

func (req taskRequest) toInput() service.TaskInput {
	return service.TaskInput{
		Content:    req.Content,
		Status:     req.Status,
		AssignedTo: req.AssignedTo,
		DueDate:    req.DueDate,
		Priority:   req.Priority,
		Labels:     req.Labels,
		Checklist:  req.Checklist,
	}
}

// HandleList returns all kanban cards.
//
//	@Summary	List tasks
//	@Tags		Tasks
//	@Produce	json
//	@Success	200	{array}	taskResponse
//	@Router		/api/tasks [get].
func (h *TasksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.TaskService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate adds a card.
//
//	@Summary	Create a task
//	@Tags		Tasks
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		taskRequest	true	"Task fields"
//	@Success	201		{object}	taskResponse
//	@Failure	400		{object}	map[string]string
//	@Router		/api/tasks [post].
func (h *TasksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "request body must be valid JSON")
		return
	}

	task, err := h.TaskService.Create(r.Context(), req.toInput())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toTaskResponse(task))
}

// HandleUpdate overwrites a card's writable fields.
//
//	@Summary	Update a task
//	@Tags		Tasks
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string		true	"Task id"
//	@Param		request	body		taskRequest	true	"Task fields"
//	@Success	200		{object}	taskResponse
//	@Failure	404		{object}	map[string]string
//	@Router		/api/tasks/{id} [put].
func (h *TasksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "request body must be valid JSON")
		return
	}

	task, err := h.TaskService.Update(r.Context(), r.PathValue("id"), req.toInput())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTaskResponse(task))
}

// HandleAttach stores an uploaded file and links it to the task.
//
//	@Summary	Attach a file to a task
//	@Tags		Tasks
//	@Security	BearerAuth
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		id		path		string	true	"Task id"
//	@Param		file	formData	file	true	"Attachment"
//	@Success	200		{object}	map[string]string	"Stored file path"
//	@Failure	400		{object}	map[string]string
//	@Failure	404		{object}	map[string]string
//	@Router		/api/tasks/{id}/attachments [post].
func (h *TasksHandler) HandleAttach(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httpx.WriteError(w, http.StatusBadRequest,
				"invalid_request", "uploaded file is too large")
			return
		}
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "multipart form field 'file' is required")
		return
	}
	defer file.Close()

	path, err := h.TaskService.Attach(r.Context(), r.PathValue("id"), header.Filename, file)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"file": path})
}
