package project

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devfolio/service/internal/form"
	"github.com/devfolio/service/internal/response"
)

// Handler holds HTTP handlers for project endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new project Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type listData struct {
	Projects []Project `json:"projects"`
}

type singleData struct {
	Project *Project `json:"project"`
}

type deletedData struct {
	Message string `json:"message" example:"Project deleted"`
}

// Get godoc
//
//	@Summary		List or fetch projects
//	@Description	Without query params returns all projects newest-first. With ?slug= or ?id= returns a single project.
//	@Tags			projects
//	@Produce		json
//	@Param			slug	query		string	false	"Fetch one by slug"
//	@Param			id		query		string	false	"Fetch one by id"
//	@Success		200		{object}	listData
//	@Failure		404		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/projects [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if slug := r.URL.Query().Get("slug"); slug != "" {
		h.respondOne(w, r, func() (*Project, error) {
			return h.svc.GetBySlug(r.Context(), slug)
		})
		return
	}
	if id := r.URL.Query().Get("id"); id != "" {
		h.respondOne(w, r, func() (*Project, error) {
			return h.svc.GetByID(r.Context(), id)
		})
		return
	}

	projects, err := h.svc.List(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, listData{Projects: projects})
}

// GetByID godoc
//
//	@Summary		Fetch one project
//	@Tags			projects
//	@Produce		json
//	@Param			id	path		string	true	"Project id"
//	@Success		200	{object}	singleData
//	@Failure		404	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/projects/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.respondOne(w, r, func() (*Project, error) {
		return h.svc.GetByID(r.Context(), id)
	})
}

func (h *Handler) respondOne(w http.ResponseWriter, r *http.Request, fetch func() (*Project, error)) {
	p, err := fetch()
	if err != nil {
		if h.svc.IsNotFound(err) {
			response.NotFound(w, "Project not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, singleData{Project: p})
}

// Create godoc
//
//	@Summary		Create project
//	@Description	Creates a project. Accepts multipart (optional "image" file) or JSON. Slug is derived from the title when omitted.
//	@Tags			projects
//	@Accept			mpfd
//	@Produce		json
//	@Security		AdminSecret
//	@Success		201	{object}	singleData
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		401	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/projects [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := form.Parse(r)
	if err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	in := CreateInput{}
	in.Title, _ = payload.Get("title")
	in.Slug, _ = payload.Get("slug")
	in.Description, _ = payload.Get("description")
	in.GithubLink, _ = payload.Get("githubLink")
	in.LiveLink, _ = payload.Get("liveLink")
	in.AppLink, _ = payload.Get("appLink")
	if v, ok := payload.Get("featured"); ok {
		in.Featured = v == "true"
	}
	if tags, ok := payload.List("tags"); ok {
		in.Tags = tags
	}
	in.Image, _ = payload.File("image")

	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Created(w, singleData{Project: p})
}

// Update godoc
//
//	@Summary		Update project
//	@Description	Merges supplied fields into the project. A new "image" file replaces the stored one when its upload succeeds.
//	@Tags			projects
//	@Accept			mpfd
//	@Produce		json
//	@Security		AdminSecret
//	@Param			id	path		string	true	"Project id"
//	@Success		200	{object}	singleData
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		401	{object}	response.ErrorBody
//	@Failure		404	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/projects/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	payload, err := form.Parse(r)
	if err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	var upd Update
	setString := func(name string, dst **string) {
		if v, ok := payload.Get(name); ok {
			*dst = &v
		}
	}
	setString("title", &upd.Title)
	setString("slug", &upd.Slug)
	setString("description", &upd.Description)
	setString("githubLink", &upd.GithubLink)
	setString("liveLink", &upd.LiveLink)
	setString("appLink", &upd.AppLink)
	if v, ok := payload.Get("featured"); ok {
		featured := v == "true"
		upd.Featured = &featured
	}
	if tags, ok := payload.List("tags"); ok {
		upd.Tags = tags
	}
	image, _ := payload.File("image")

	p, err := h.svc.UpdateRecord(r.Context(), chi.URLParam(r, "id"), upd, image)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.OK(w, singleData{Project: p})
}

// Delete godoc
//
//	@Summary		Delete project
//	@Description	Deletes the project and, best-effort, its image asset.
//	@Tags			projects
//	@Produce		json
//	@Security		AdminSecret
//	@Param			id	query		string	true	"Project id"
//	@Success		200	{object}	deletedData
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		401	{object}	response.ErrorBody
//	@Failure		404	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/projects [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		id = chi.URLParam(r, "id")
	}
	if id == "" {
		response.BadRequest(w, "ID required")
		return
	}

	if err := h.svc.DeleteRecord(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	response.OK(w, deletedData{Message: "Project deleted"})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSlugTaken):
		response.BadRequest(w, "Slug already exists. Choose a unique one.")
	case errors.Is(err, ErrValidation):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "Project not found")
	default:
		response.InternalError(w)
	}
}
