package http

import (
	"net/http"

	"github.com/deskboardhq/deskboard/internal/dashboard/service"
	"github.com/deskboardhq/deskboard/pkg/httpx"
)

type ActivityHandler struct {
	ActivityService *service.ActivityService
}

// HandleList returns the most recent activity log entries, newest first.
//
//	@Summary	List recent activity
//	@Tags		Activity
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}		domain.ActivityEntry
//	@Failure	403	{object}	map[string]string	"Admin role required"
//	@Router		/api/activity [get].
func (h *ActivityHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.ActivityService.Recent(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, entries)
}
