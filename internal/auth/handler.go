package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/devfolio/service/internal/response"
)

// Handler holds HTTP handlers for auth endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new auth Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type loginRequest struct {
	Email    string `json:"email"    example:"admin@example.com"`
	Password string `json:"password" example:"hunter2"`
}

type loginData struct {
	Success bool   `json:"success" example:"true"`
	Token   string `json:"token"   example:"eyJhbGci..."`
}

type checkData struct {
	Authenticated bool `json:"authenticated" example:"true"`
}

// Login godoc
//
//	@Summary		Admin login
//	@Description	Exchange the admin email and password for a session token.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginRequest	true	"Credentials"
//	@Success		200		{object}	loginData
//	@Failure		401		{object}	response.ErrorBody
//	@Router			/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(w, "invalid credentials")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, loginData{Success: true, Token: token})
}

// Check godoc
//
//	@Summary		Check session
//	@Description	Returns 200 when the request carries a valid admin credential. Routed behind the write middleware.
//	@Tags			auth
//	@Produce		json
//	@Security		AdminSecret
//	@Success		200	{object}	checkData
//	@Failure		401	{object}	response.ErrorBody
//	@Router			/auth/check [get]
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	response.OK(w, checkData{Authenticated: true})
}
