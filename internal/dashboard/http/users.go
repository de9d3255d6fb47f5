package http

import (
	"encoding/json"
	"net/http"

	"github.com/deskboardhq/deskboard/internal/dashboard/service"
	"github.com/deskboardhq/deskboard/pkg/httpx"
)

type UsersHandler struct {
	UserService *service.UserService
}

type createUserRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
	Status   string `json:"status,omitempty"`
}

type updateUserRequest struct {
	Name   *string `json:"name,omitempty"`
	Role   *string `json:"role,omitempty"`
	Status *string `json:"status,omitempty"`
}

// HandleList returns every account's public projection.
//
//	@Summary	List users
//	@Tags		Users
//	@Produce	json
//	@Success	200	{array}	domain.PublicUser
//	@Router		/api/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, users)
}

// HandleGet returns a single account.
//
//	@Summary	Get a user
//	@Tags		Users
//	@Produce	json
//	@Param		id	path		string	true	"User id"
//	@Success	200	{object}	domain.PublicUser
//	@Failure	404	{object}	map[string]string
//	@Router		/api/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, user)
}

// HandleCreate adds an account. Admin only; the action is recorded in the
// activity log.
//
//	@Summary	Create a user
//	@Tags		Users
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		createUserRequest	true	"Account details"
//	@Success	201		{object}	domain.PublicUser
//	@Failure	400		{object}	map[string]string
//	@Failure	401		{object}	map[string]string
//	@Failure	403		{object}	map[string]string
//	@Failure	409		{object}	map[string]string
//	@Router		/api/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "request body must be valid JSON")
		return
	}

	user, err := h.UserService.Create(r.Context(), actorName(r),
		req.Name, req.Password, req.Role, req.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, user)
}

// HandleUpdate mutates name, role, or status. Admin only.
//
//	@Summary	Update a user
//	@Tags		Users
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"User id"
//	@Param		request	body		updateUserRequest	true	"Fields to change"
//	@Success	200		{object}	domain.PublicUser
//	@Failure	400		{object}	map[string]string
//	@Failure	404		{object}	map[string]string
//	@Router		/api/users/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "request body must be valid JSON")
		return
	}

	user, err := h.UserService.Update(r.Context(), actorName(r), r.PathValue("id"),
		service.UserUpdate{Name: req.Name, Role: req.Role, Status: req.Status})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, user)
}

// HandleDelete removes an account. Admin only.
//
//	@Summary	Delete a user
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"User id"
//	@Success	200	{object}	map[string]bool
//	@Failure	404	{object}	map[string]string
//	@Router		/api/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.UserService.Delete(r.Context(), actorName(r), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
