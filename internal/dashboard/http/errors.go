package http

import (
	"errors"
	"net/http"

	"github.com/deskboardhq/deskboard/internal/dashboard/service"
	"github.com/deskboardhq/deskboard/internal/dashboard/store"
	"github.com/deskboardhq/deskboard/pkg/httpx"
	"github.com/deskboardhq/deskboard/pkg/slogx"
)

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Everything unexpected becomes an opaque 500; nothing crashes the process.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "missing or malformed input")
	case errors.Is(err, service.ErrNameTaken):
		httpx.WriteError(w, http.StatusConflict,
			"conflict", "name already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized,
			"invalid_credentials", "authentication failed")
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden,
			"insufficient_role", "role does not permit this operation")
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound,
			"not_found", "no such record")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "internal error")
	}
}
