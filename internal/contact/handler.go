package contact

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/devfolio/service/internal/response"
)

// Handler holds HTTP handlers for contact endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new contact Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type submitRequest struct {
	Name    string `json:"name"    example:"Jane Doe"`
	Email   string `json:"email"   example:"jane@example.com"`
	Message string `json:"message" example:"Hi, I'd like to talk about..."`
}

type submitData struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Message received!"`
}

type listData struct {
	Contacts []Message `json:"contacts"`
}

type singleData struct {
	Contact *Message `json:"contact"`
}

type deletedData struct {
	Message string `json:"message" example:"Message deleted"`
}

// Submit godoc
//
//	@Summary		Send a message
//	@Description	Stores a visitor message from the public contact form.
//	@Tags			contact
//	@Accept			json
//	@Produce		json
//	@Param			request	body		submitRequest	true	"Message"
//	@Success		200		{object}	submitData
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/contact [post]
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if _, err := h.svc.Submit(r.Context(), req.Name, req.Email, req.Message); err != nil {
		if errors.Is(err, ErrValidation) {
			response.BadRequest(w, "Missing fields")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, submitData{Success: true, Message: "Message received!"})
}

// List godoc
//
//	@Summary		List messages
//	@Tags			contact
//	@Produce		json
//	@Security		AdminSecret
//	@Success		200	{object}	listData
//	@Failure		401	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/contact [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.svc.List(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, listData{Contacts: messages})
}

// MarkRead godoc
//
//	@Summary		Mark a message read
//	@Tags			contact
//	@Produce		json
//	@Security		AdminSecret
//	@Param			id	query		string	true	"Message id"
//	@Success		200	{object}	singleData
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		401	{object}	response.ErrorBody
//	@Failure		404	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/contact [patch]
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		response.BadRequest(w, "ID required")
		return
	}

	m, err := h.svc.MarkRead(r.Context(), id)
	if err != nil {
		if h.svc.IsNotFound(err) {
			response.NotFound(w, "Message not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, singleData{Contact: m})
}

// Delete godoc
//
//	@Summary		Delete a message
//	@Tags			contact
//	@Produce		json
//	@Security		AdminSecret
//	@Param			id	query		string	true	"Message id"
//	@Success		200	{object}	deletedData
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		401	{object}	response.ErrorBody
//	@Failure		404	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/contact [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		response.BadRequest(w, "ID required")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if h.svc.IsNotFound(err) {
			response.NotFound(w, "Message not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, deletedData{Message: "Message deleted"})
}
