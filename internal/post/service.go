package post

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	goslug "github.com/gosimple/slug"

	"github.com/devfolio/service/internal/form"
	"github.com/devfolio/service/internal/preview"
	"github.com/devfolio/service/internal/storage"
)

// ErrValidation wraps all input-validation failures.
var ErrValidation = errors.New("validation failed")

// Store is the persistence surface the service needs.
type Store interface {
	List(ctx context.Context) ([]Post, error)
	GetByID(ctx context.Context, id string) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	Insert(ctx context.Context, p Post) (*Post, error)
	Update(ctx context.Context, id string, upd Update) (*Post, error)
	Delete(ctx context.Context, id string) error
}

// CreateInput holds the fields for a new post.
type CreateInput struct {
	Title     string
	Slug      string
	Excerpt   string
	Content   string
	Tags      []string
	Published *bool
	Cover     *form.File
}

// Service contains business logic for posts: read-time computation, the
// cover-image lifecycle, and search.
type Service struct {
	store  Store
	assets storage.Storage
}

// NewService creates a new post Service.
func NewService(store Store, assets storage.Storage) *Service {
	return &Service{store: store, assets: assets}
}

// List returns all posts, newest first. A non-empty query keeps only posts
// whose title or excerpt contains it, case-insensitively.
func (s *Service) List(ctx context.Context, query string) ([]Post, error) {
	posts, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return posts, nil
	}

	filtered := []Post{}
	for _, p := range posts {
		if preview.MatchesQuery(query, p.Title, p.Excerpt) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// GetByID returns a post by its UUID.
func (s *Service) GetByID(ctx context.Context, id string) (*Post, error) {
	return s.store.GetByID(ctx, id)
}

// GetBySlug returns a post by its slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	return s.store.GetBySlug(ctx, slug)
}

// Render populates the read-time projections for the public detail page.
func (s *Service) Render(p *Post) error {
	html, err := preview.Markdown(p.Content)
	if err != nil {
		return fmt.Errorf("render post %s: %w", p.ID, err)
	}
	p.ContentHTML = html
	p.DateLabel = preview.FormatDate(p.CreatedAt)
	return nil
}

// Create validates input, computes the read time, and inserts a new post.
// A supplied cover image is uploaded first; if the upload does not happen the
// post is still created without one.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Post, error) {
	slugged, err := resolveSlug(in.Title, in.Slug)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	var cover string
	if in.Cover != nil {
		url, err := s.assets.Upload(ctx, in.Cover.Data, in.Cover.Name)
		if err != nil {
			log.Printf("post: cover upload failed, creating without cover: %v", err)
		} else {
			cover = url
		}
	}

	if in.Tags == nil {
		in.Tags = []string{}
	}
	published := true
	if in.Published != nil {
		published = *in.Published
	}

	return s.store.Insert(ctx, Post{
		Title:      in.Title,
		Slug:       slugged,
		Excerpt:    in.Excerpt,
		Content:    in.Content,
		CoverImage: cover,
		Tags:       in.Tags,
		ReadTime:   preview.ReadTime(in.Content),
		Published:  published,
	})
}

// UpdateRecord merges the supplied fields into the post. Read time is
// recomputed when content is supplied. A new cover image replaces the stored
// URL only when its upload succeeds; the superseded asset is then deleted
// best-effort.
func (s *Service) UpdateRecord(ctx context.Context, id string, upd Update, cover *form.File) (*Post, error) {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Slug != nil {
		slugged, err := resolveSlug("", *upd.Slug)
		if err != nil {
			return nil, err
		}
		upd.Slug = &slugged
	}

	if upd.Content != nil {
		readTime := preview.ReadTime(*upd.Content)
		upd.ReadTime = &readTime
	}

	if cover != nil {
		url, err := s.assets.Upload(ctx, cover.Data, cover.Name)
		if err != nil {
			log.Printf("post: cover upload failed, keeping existing: %v", err)
		} else {
			upd.CoverImage = &url
			if current.CoverImage != "" {
				if err := s.assets.Delete(ctx, current.CoverImage); err != nil {
					log.Printf("post: delete superseded cover failed (orphaned): %v", err)
				}
			}
		}
	}

	return s.store.Update(ctx, id, upd)
}

// DeleteRecord removes the post and, best-effort, its cover image.
func (s *Service) DeleteRecord(ctx context.Context, id string) error {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if current.CoverImage != "" {
		if err := s.assets.Delete(ctx, current.CoverImage); err != nil {
			log.Printf("post: delete cover failed (orphaned): %v", err)
		}
	}

	return s.store.Delete(ctx, id)
}

// IsNotFound returns true when the error indicates a missing post.
func (s *Service) IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// resolveSlug derives a slug from the title when none is supplied, and
// validates a supplied one.
func resolveSlug(title, supplied string) (string, error) {
	supplied = strings.TrimSpace(supplied)
	if supplied == "" {
		if strings.TrimSpace(title) == "" {
			return "", fmt.Errorf("%w: slug is required", ErrValidation)
		}
		return goslug.Make(title), nil
	}
	if !goslug.IsSlug(supplied) {
		return "", fmt.Errorf("%w: slug must contain only lowercase letters, digits, and hyphens", ErrValidation)
	}
	return supplied, nil
}
