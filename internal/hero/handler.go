package hero

import (
	"net/http"

	"github.com/devfolio/service/internal/form"
	"github.com/devfolio/service/internal/response"
)

// Handler holds HTTP handlers for the hero section.
type Handler struct {
	svc *Service
}

// NewHandler creates a new hero Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// textFields are the plain string fields a write request may carry.
var textFields = []string{"badge", "title", "subtitle", "socialGithub", "socialLinkedin"}

// Get godoc
//
//	@Summary		Get hero section
//	@Description	Returns the hero record, or an empty object when not configured yet.
//	@Tags			hero
//	@Produce		json
//	@Success		200	{object}	Hero
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/hero [get]
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
//	@Summary		Update hero section
//	@Description	Merges supplied fields into the hero record, creating it if absent. Accepts multipart (with optional "image" and "resume" files) or JSON.
//	@Tags			hero
//	@Accept			mpfd
//	@Produce		json
//	@Security		AdminSecret
//	@Success		200	{object}	Hero
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		401	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/hero [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	payload, err := form.Parse(r)
	if err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	var upd Update
	for _, field := range textFields {
		if v, ok := payload.Get(field); ok {
			switch field {
			case "badge":
				upd.Badge = &v
			case "title":
				upd.Title = &v
			case "subtitle":
				upd.Subtitle = &v
			case "socialGithub":
				upd.SocialGithub = &v
			case "socialLinkedin":
				upd.SocialLinkedin = &v
			}
		}
	}

	image, _ := payload.File("image")
	resume, _ := payload.File("resume")

	record, err := h.svc.Update(r.Context(), upd, image, resume)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, record)
}
