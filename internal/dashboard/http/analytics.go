package http

import (
	"net/http"

	"github.com/deskboardhq/deskboard/internal/dashboard/service"
	"github.com/deskboardhq/deskboard/pkg/httpx"
)

type AnalyticsHandler struct {
	AnalyticsService *service.AnalyticsService
}

// HandleSummary returns aggregate counts across users, tasks, events and
// recent activity.
//
//	@Summary	Dashboard analytics summary
//	@Tags		Analytics
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	domain.AnalyticsSummary
//	@Failure	403	{object}	map[string]string	"Admin role required"
//	@Router		/api/analytics [get].
func (h *AnalyticsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.AnalyticsService.Summary(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, summary)
}
