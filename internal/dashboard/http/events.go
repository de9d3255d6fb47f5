package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/deskboardhq/deskboard/internal/dashboard/service"
	"github.com/deskboardhq/deskboard/pkg/httpx"
)

type EventsHandler struct {
	EventService *service.EventService
}

type createEventRequest struct {
	Title      string    `json:"title"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Recurrence string    `json:"recurrence,omitempty"`
}

type eventResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Recurrence string    `json:"recurrence"`
}

// HandleList returns the stored events expanded into concrete occurrences
// over the next 30 days.
//
//	@Summary	List calendar occurrences
//	@Tags		Events
//	@Produce	json
//	@Success	200	{array}	domain.Occurrence
//	@Router		/api/events [get].
func (h *EventsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	occurrences, err := h.EventService.Occurrences(r.Context(), time.Now())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, occurrences)
}

// HandleCreate stores a calendar event.
//
//	@Summary	Create a calendar event
//	@Tags		Events
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		createEventRequest	true	"Event fields"
//	@Success	201		{object}	eventResponse
//	@Failure	400		{object}	map[string]string	"End precedes start"
//	@Router		/api/events [post].
func (h *EventsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "request body must be valid JSON")
		return
	}

	event, err := h.EventService.Create(r.Context(), req.Title, req.Start, req.End, req.Recurrence)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, eventResponse{
		ID:         event.ID,
		Title:      event.Title,
		Start:      event.Start,
		End:        event.End,
		Recurrence: string(event.Recurrence),
	})
}
