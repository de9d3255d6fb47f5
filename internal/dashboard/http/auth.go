package http

import (
	"encoding/json"
	"net/http"

	"github.com/deskboardhq/deskboard/internal/dashboard/domain"
	"github.com/deskboardhq/deskboard/internal/dashboard/service"
	"github.com/deskboardhq/deskboard/pkg/httpx"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

type registerRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string            `json:"token"`
	User  domain.PublicUser `json:"user"`
}

// HandleRegister creates a new account.
//
//	@Summary		Register an account
//	@Description	Creates an account with a unique name. The role defaults to "user". Registration does not log the caller in.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		registerRequest	true	"Account details"
//	@Success		201		{object}	domain.PublicUser
//	@Failure		400		{object}	map[string]string	"Missing name or password"
//	@Failure		409		{object}	map[string]string	"Name already exists"
//	@Router			/api/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "request body must be valid JSON")
		return
	}

	user, err := h.AuthService.Register(r.Context(), req.Name, req.Password, req.Role)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, user)
}

// HandleLogin authenticates and issues a bearer credential.
//
//	@Summary		Log in
//	@Description	Verifies the name/password pair and returns a signed bearer token valid for 24 hours, plus the public account projection.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginRequest	true	"Credentials"
//	@Success		200		{object}	loginResponse
//	@Failure		400		{object}	map[string]string	"Missing name or password"
//	@Failure		401		{object}	map[string]string	"Bad credentials"
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "request body must be valid JSON")
		return
	}

	token, user, err := h.AuthService.Login(r.Context(), req.Name, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}
