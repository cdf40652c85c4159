package project

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	goslug "github.com/gosimple/slug"

	"github.com/devfolio/service/internal/form"
	"github.com/devfolio/service/internal/storage"
)

// ErrValidation wraps all input-validation failures.
var ErrValidation = errors.New("validation failed")

// Store is the persistence surface the service needs.
type Store interface {
	List(ctx context.Context) ([]Project, error)
	GetByID(ctx context.Context, id string) (*Project, error)
	GetBySlug(ctx context.Context, slug string) (*Project, error)
	Insert(ctx context.Context, p Project) (*Project, error)
	Update(ctx context.Context, id string, upd Update) (*Project, error)
	Delete(ctx context.Context, id string) error
}

// CreateInput holds the fields for a new project.
type CreateInput struct {
	Title       string
	Slug        string
	Description string
	Tags        []string
	GithubLink  string
	LiveLink    string
	AppLink     string
	Featured    bool
	Image       *form.File
}

// Service contains business logic for projects, including the image
// lifecycle tied to each record.
type Service struct {
	store  Store
	assets storage.Storage
}

// NewService creates a new project Service.
func NewService(store Store, assets storage.Storage) *Service {
	return &Service{store: store, assets: assets}
}

// List returns all projects, newest first.
func (s *Service) List(ctx context.Context) ([]Project, error) {
	return s.store.List(ctx)
}

// GetByID returns a project by its UUID.
func (s *Service) GetByID(ctx context.Context, id string) (*Project, error) {
	return s.store.GetByID(ctx, id)
}

// GetBySlug returns a project by its slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*Project, error) {
	return s.store.GetBySlug(ctx, slug)
}

// Create validates input and inserts a new project. A supplied image is
// uploaded first; if the upload does not happen the project is still created,
// just without an image.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Project, error) {
	slugged, err := resolveSlug(in.Title, in.Slug)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}

	var image string
	if in.Image != nil {
		url, err := s.assets.Upload(ctx, in.Image.Data, in.Image.Name)
		if err != nil {
			log.Printf("project: image upload failed, creating without image: %v", err)
		} else {
			image = url
		}
	}

	if in.Tags == nil {
		in.Tags = []string{}
	}

	return s.store.Insert(ctx, Project{
		Title:       in.Title,
		Slug:        slugged,
		Description: in.Description,
		Image:       image,
		Tags:        in.Tags,
		GithubLink:  in.GithubLink,
		LiveLink:    in.LiveLink,
		AppLink:     in.AppLink,
		Featured:    in.Featured,
	})
}

// UpdateRecord merges the supplied fields into the project. A new image
// replaces the stored URL only when its upload succeeds; the superseded
// asset is deleted best-effort after the new one exists.
func (s *Service) UpdateRecord(ctx context.Context, id string, upd Update, image *form.File) (*Project, error) {
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

	if image != nil {
		url, err := s.assets.Upload(ctx, image.Data, image.Name)
		if err != nil {
			log.Printf("project: image upload failed, keeping existing: %v", err)
		} else {
			upd.Image = &url
			if current.Image != "" {
				if err := s.assets.Delete(ctx, current.Image); err != nil {
					log.Printf("project: delete superseded image failed (orphaned): %v", err)
				}
			}
		}
	}

	return s.store.Update(ctx, id, upd)
}

// DeleteRecord removes the project and, best-effort, its image. A failed
// asset cleanup never blocks record deletion.
func (s *Service) DeleteRecord(ctx context.Context, id string) error {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if current.Image != "" {
		if err := s.assets.Delete(ctx, current.Image); err != nil {
			log.Printf("project: delete image failed (orphaned): %v", err)
		}
	}

	return s.store.Delete(ctx, id)
}

// IsNotFound returns true when the error indicates a missing project.
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
