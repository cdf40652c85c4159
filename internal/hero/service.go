package hero

import (
	"context"
	"errors"
	"log"

	"github.com/devfolio/service/internal/form"
	"github.com/devfolio/service/internal/storage"
)

// Store is the persistence surface the service needs.
type Store interface {
	GetSingleton(ctx context.Context) (*Hero, error)
	Upsert(ctx context.Context, upd Update) (*Hero, error)
}

// Service contains business logic for the hero section, including the
// asset-replacement policy for the profile picture and resume.
type Service struct {
	store  Store
	assets storage.Storage
}

// NewService creates a new hero Service.
func NewService(store Store, assets storage.Storage) *Service {
	return &Service{store: store, assets: assets}
}

// Read returns the hero record, or ErrNotConfigured when none exists yet.
func (s *Service) Read(ctx context.Context) (*Hero, error) {
	return s.store.GetSingleton(ctx)
}

// IsNotConfigured returns true when the error means no record exists yet.
func (s *Service) IsNotConfigured(err error) bool {
	return errors.Is(err, ErrNotConfigured)
}

// Update merges the supplied fields into the singleton record. When a file is
// supplied its upload must succeed before the stored URL changes; the
// superseded asset is then deleted best-effort. A failed upload leaves the
// existing asset and URL untouched.
func (s *Service) Update(ctx context.Context, upd Update, image, resume *form.File) (*Hero, error) {
	current, err := s.store.GetSingleton(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotConfigured) {
			return nil, err
		}
		current = &Hero{}
	}

	if image != nil {
		if url := s.replaceAsset(ctx, image, current.ProfilePic); url != "" {
			upd.ProfilePic = &url
		}
	}
	if resume != nil {
		if url := s.replaceAsset(ctx, resume, current.ResumeURL); url != "" {
			upd.ResumeURL = &url
		}
	}

	return s.store.Upsert(ctx, upd)
}

// replaceAsset uploads file and, on success, deletes the superseded asset.
// Returns the new URL, or "" when the upload did not happen. The old asset is
// never deleted before the new one exists.
func (s *Service) replaceAsset(ctx context.Context, file *form.File, oldURL string) string {
	url, err := s.assets.Upload(ctx, file.Data, file.Name)
	if err != nil {
		log.Printf("hero: upload %q failed, keeping existing asset: %v", file.Name, err)
		return ""
	}
	if oldURL != "" {
		if err := s.assets.Delete(ctx, oldURL); err != nil {
			log.Printf("hero: delete superseded asset failed (orphaned): %v", err)
		}
	}
	return url
}
