package about

import (
	"net/http"

	"github.com/devfolio/service/internal/form"
	"github.com/devfolio/service/internal/response"
)

// Handler holds HTTP handlers for the about page.
type Handler struct {
	svc *Service
}

// NewHandler creates a new about Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Get godoc
//
//	@Summary		Get about page
//	@Description	Returns the about record with skill metadata, or an empty object when not configured yet.
//	@Tags			about
//	@Produce		json
//	@Success		200	{object}	About
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/about [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.svc.Read(r.Context())
	if err != nil {
		if h.svc.IsNotConfigured(err) {
			response.OK(w, struct{}{})
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, record)
}

// Update godoc
//
//	@Summary		Update about page
//	@Description	Merges supplied fields (bio, skills, education) into the about record, creating it if absent.
//	@Tags			about
//	@Accept			json
//	@Produce		json
//	@Security		AdminSecret
//	@Success		200	{object}	About
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		401	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/about [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	payload, err := form.Parse(r)
	if err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	var upd Update
	if v, ok := payload.Get("bio"); ok {
		upd.Bio = &v
	}
	if list, ok := payload.List("skills"); ok {
		upd.Skills = NormalizeSkills(list)
	}
	if v, ok := payload.Value("education"); ok {
		entries, err := ParseEducation(v)
		if err != nil {
			response.BadRequest(w, "invalid education entries")
			return
		}
		upd.Education = entries
	}

	record, err := h.svc.Update(r.Context(), upd)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, record)
}
