package post

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devfolio/service/internal/form"
	"github.com/devfolio/service/internal/response"
)

// Handler holds HTTP handlers for blog post endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new post Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type listData struct {
	Posts []Post `json:"posts"`
}

type singleData struct {
	Post *Post `json:"post"`
}

type deletedData struct {
	Message string `json:"message" example:"Deleted successfully"`
}

// Get godoc
//
//	@Summary		List or fetch posts
//	@Description	Without params returns all posts newest-first. ?q= filters by title/excerpt substring. ?slug= or ?id= returns one post; add &format=html for rendered content.
//	@Tags			posts
//	@Produce		json
//	@Param			q		query		string	false	"Search query"
//	@Param			slug	query		string	false	"Fetch one by slug"
//	@Param			id		query		string	false	"Fetch one by id"
//	@Param			format	query		string	false	"Set to html for a rendered projection"
//	@Success		200		{object}	listData
//	@Failure		404		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/posts [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if slug := q.Get("slug"); slug != "" {
		h.respondOne(w, r, q.Get("format"), func() (*Post, error) {
			return h.svc.GetBySlug(r.Context(), slug)
		})
		return
	}
	if id := q.Get("id"); id != "" {
		h.respondOne(w, r, q.Get("format"), func() (*Post, error) {
			return h.svc.GetByID(r.Context(), id)
		})
		return
	}

	posts, err := h.svc.List(r.Context(), q.Get("q"))
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, listData{Posts: posts})
}

// GetByID godoc
//
//	@Summary		Fetch one post
//	@Tags			posts
//	@Produce		json
//	@Param			id	path		string	true	"Post id"
//	@Success		200	{object}	singleData
//	@Failure		404	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/posts/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.respondOne(w, r, r.URL.Query().Get("format"), func() (*Post, error) {
		return h.svc.GetByID(r.Context(), id)
	})
}

func (h *Handler) respondOne(w http.ResponseWriter, r *http.Request, format string, fetch func() (*Post, error)) {
	p, err := fetch()
	if err != nil {
		if h.svc.IsNotFound(err) {
			response.NotFound(w, "Post not found")
			return
		}
		response.InternalError(w)
		return
	}
	if format == "html" {
		if err := h.svc.Render(p); err != nil {
			response.InternalError(w)
			return
		}
	}
	response.OK(w, singleData{Post: p})
}

// Create godoc
//
//	@Summary		Create post
//	@Description	Creates a post. Accepts multipart (optional "image" cover file) or JSON. Read time is computed from the content.
//	@Tags			posts
//	@Accept			mpfd
//	@Produce		json
//	@Security		AdminSecret
//	@Success		201	{object}	singleData
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		401	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/posts [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := form.Parse(r)
	if err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	in := CreateInput{}
	in.Title, _ = payload.Get("title")
	in.Slug, _ = payload.Get("slug")
	in.Excerpt, _ = payload.Get("excerpt")
	in.Content, _ = payload.Get("content")
	if tags, ok := payload.List("tags"); ok {
		in.Tags = tags
	}
	if v, ok := payload.Get("published"); ok {
		published := v == "true"
		in.Published = &published
	}
	in.Cover, _ = payload.File("image")

	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Created(w, singleData{Post: p})
}

// Update godoc
//
//	@Summary		Update post
//	@Description	Merges supplied fields into the post; read time is recomputed when content is supplied. A new "image" file replaces the cover when its upload succeeds.
//	@Tags			posts
//	@Accept			mpfd
//	@Produce		json
//	@Security		AdminSecret
//	@Param			id	path		string	true	"Post id"
//	@Success		200	{object}	singleData
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		401	{object}	response.ErrorBody
//	@Failure		404	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/posts/{id} [put]
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
	setString("excerpt", &upd.Excerpt)
	setString("content", &upd.Content)
	if tags, ok := payload.List("tags"); ok {
		upd.Tags = tags
	}
	if v, ok := payload.Get("published"); ok {
		published := v == "true"
		upd.Published = &published
	}
	cover, _ := payload.File("image")

	p, err := h.svc.UpdateRecord(r.Context(), chi.URLParam(r, "id"), upd, cover)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.OK(w, singleData{Post: p})
}

// Delete godoc
//
//	@Summary		Delete post
//	@Description	Deletes the post and, best-effort, its cover asset.
//	@Tags			posts
//	@Produce		json
//	@Security		AdminSecret
//	@Param			id	query		string	true	"Post id"
//	@Success		200	{object}	deletedData
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		401	{object}	response.ErrorBody
//	@Failure		404	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/posts [delete]
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
	response.OK(w, deletedData{Message: "Deleted successfully"})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSlugTaken):
		response.BadRequest(w, "Slug already exists. Choose a unique one.")
	case errors.Is(err, ErrValidation):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "Post not found")
	default:
		response.InternalError(w)
	}
}
