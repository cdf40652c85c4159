package project

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/devfolio/service/internal/form"
)

type memStore struct {
	projects []Project
	seq      int
}

func (m *memStore) List(ctx context.Context) ([]Project, error) {
	out := make([]Project, 0, len(m.projects))
	for i := len(m.projects) - 1; i >= 0; i-- {
		out = append(out, m.projects[i])
	}
	return out, nil
}

func (m *memStore) GetByID(ctx context.Context, id string) (*Project, error) {
	for _, p := range m.projects {
		if p.ID == id {
			copied := p
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) GetBySlug(ctx context.Context, slug string) (*Project, error) {
	for _, p := range m.projects {
		if p.Slug == slug {
			copied := p
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) Insert(ctx context.Context, p Project) (*Project, error) {
	for _, existing := range m.projects {
		if existing.Slug == p.Slug {
			return nil, ErrSlugTaken
		}
	}
	m.seq++
	p.ID = fmt.Sprintf("project-%d", m.seq)
	p.CreatedAt = time.Now().Add(time.Duration(m.seq) * time.Second)
	m.projects = append(m.projects, p)
	copied := p
	return &copied, nil
}

func (m *memStore) Update(ctx context.Context, id string, upd Update) (*Project, error) {
	for i := range m.projects {
		if m.projects[i].ID != id {
			continue
		}
		p := &m.projects[i]
		if upd.Title != nil {
			p.Title = *upd.Title
		}
		if upd.Slug != nil {
			p.Slug = *upd.Slug
		}
		if upd.Description != nil {
			p.Description = *upd.Description
		}
		if upd.Image != nil {
			p.Image = *upd.Image
		}
		if upd.Tags != nil {
			p.Tags = upd.Tags
		}
		copied := *p
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	for i := range m.projects {
		if m.projects[i].ID == id {
			m.projects = append(m.projects[:i], m.projects[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

type fakeAssets struct {
	failUpload bool
	deleteErr  error
	deleted    []string
}

func (f *fakeAssets) Upload(ctx context.Context, data []byte, name string) (string, error) {
	if f.failUpload {
		return "", errors.New("object store unavailable")
	}
	return "https://cdn.test/uploads/" + name, nil
}

func (f *fakeAssets) Delete(ctx context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return f.deleteErr
}

func TestCreateRequiresFields(t *testing.T) {
	svc := NewService(&memStore{}, &fakeAssets{})
	ctx := context.Background()

	tests := []struct {
		name string
		in   CreateInput
	}{
		{"missing title", CreateInput{Slug: "s", Description: "d"}},
		{"missing description", CreateInput{Title: "T", Slug: "s"}},
		{"invalid slug", CreateInput{Title: "T", Slug: "Has Spaces", Description: "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tt.in); !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreateWithImage(t *testing.T) {
	svc := NewService(&memStore{}, &fakeAssets{})

	p, err := svc.Create(context.Background(), CreateInput{
		Title:       "Portfolio Site",
		Description: "this very site",
		Tags:        []string{"go", "chi"},
		Image:       &form.File{Name: "shot.png", Data: []byte("png")},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Slug != "portfolio-site" {
		t.Errorf("slug = %q, want derived from title", p.Slug)
	}
	if p.Image != "https://cdn.test/uploads/shot.png" {
		t.Errorf("image = %q", p.Image)
	}
}

func TestCreateDuplicateSlug(t *testing.T) {
	store := &memStore{}
	svc := NewService(store, &fakeAssets{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{Title: "A", Slug: "x", Description: "d"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateInput{Title: "B", Slug: "x", Description: "d"}); !errors.Is(err, ErrSlugTaken) {
		t.Errorf("err = %v, want ErrSlugTaken", err)
	}
	if len(store.projects) != 1 {
		t.Errorf("collection count = %d, want 1", len(store.projects))
	}
}

func TestUpdateReplacesImageAndDeletesOld(t *testing.T) {
	store := &memStore{}
	assets := &fakeAssets{}
	svc := NewService(store, assets)
	ctx := context.Background()

	created, _ := svc.Create(ctx, CreateInput{
		Title: "A", Slug: "a", Description: "d",
		Image: &form.File{Name: "old.png", Data: []byte("png")},
	})

	updated, err := svc.UpdateRecord(ctx, created.ID, Update{}, &form.File{Name: "new.png", Data: []byte("png")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Image != "https://cdn.test/uploads/new.png" {
		t.Errorf("image = %q", updated.Image)
	}
	if len(assets.deleted) != 1 || assets.deleted[0] != created.Image {
		t.Errorf("deleted = %v, want the superseded image", assets.deleted)
	}
}

func TestDeleteRemovesRecordDespiteAssetFailure(t *testing.T) {
	store := &memStore{}
	assets := &fakeAssets{}
	svc := NewService(store, assets)
	ctx := context.Background()

	created, _ := svc.Create(ctx, CreateInput{
		Title: "A", Slug: "a", Description: "d",
		Image: &form.File{Name: "a.png", Data: []byte("png")},
	})

	assets.deleteErr = errors.New("api down")
	if err := svc.DeleteRecord(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID); !svc.IsNotFound(err) {
		t.Errorf("record should be gone, got %v", err)
	}
}
