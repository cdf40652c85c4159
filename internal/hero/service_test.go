package hero

import (
	"context"
	"errors"
	"testing"

	"github.com/devfolio/service/internal/form"
)

// memStore applies the same merge semantics as the SQL repository.
type memStore struct {
	h *Hero
}

func (m *memStore) GetSingleton(ctx context.Context) (*Hero, error) {
	if m.h == nil {
		return nil, ErrNotConfigured
	}
	copied := *m.h
	return &copied, nil
}

func (m *memStore) Upsert(ctx context.Context, upd Update) (*Hero, error) {
	if m.h == nil {
		m.h = &Hero{ID: "hero-1"}
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&m.h.Badge, upd.Badge)
	apply(&m.h.Title, upd.Title)
	apply(&m.h.Subtitle, upd.Subtitle)
	apply(&m.h.ProfilePic, upd.ProfilePic)
	apply(&m.h.ResumeURL, upd.ResumeURL)
	apply(&m.h.SocialGithub, upd.SocialGithub)
	apply(&m.h.SocialLinkedin, upd.SocialLinkedin)
	copied := *m.h
	return &copied, nil
}

type fakeAssets struct {
	failUpload bool
	deleteErr  error
	uploaded   []string
	deleted    []string
}

func (f *fakeAssets) Upload(ctx context.Context, data []byte, name string) (string, error) {
	if f.failUpload {
		return "", errors.New("object store unavailable")
	}
	url := "https://cdn.test/uploads/" + name
	f.uploaded = append(f.uploaded, url)
	return url, nil
}

func (f *fakeAssets) Delete(ctx context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return f.deleteErr
}

func strptr(s string) *string { return &s }

func TestReadUnconfigured(t *testing.T) {
	svc := NewService(&memStore{}, &fakeAssets{})

	_, err := svc.Read(context.Background())
	if !svc.IsNotConfigured(err) {
		t.Fatalf("expected not-configured, got %v", err)
	}
}

func TestUpdatePartialMerge(t *testing.T) {
	svc := NewService(&memStore{}, &fakeAssets{})
	ctx := context.Background()

	if _, err := svc.Update(ctx, Update{Badge: strptr("X"), Title: strptr("Hi")}, nil, nil); err != nil {
		t.Fatalf("first update: %v", err)
	}

	h, err := svc.Update(ctx, Update{Badge: strptr("Y")}, nil, nil)
	if err != nil {
		t.Fatalf("second update: %v", err)
	}

	if h.Badge != "Y" {
		t.Errorf("badge = %q, want latest value Y", h.Badge)
	}
	if h.Title != "Hi" {
		t.Errorf("title = %q, want previously-set value intact", h.Title)
	}
}

func TestUpdateTextOnlyLeavesAssetsUntouched(t *testing.T) {
	assets := &fakeAssets{}
	store := &memStore{h: &Hero{ID: "hero-1", ProfilePic: "https://cdn.test/uploads/old.png"}}
	svc := NewService(store, assets)

	h, err := svc.Update(context.Background(), Update{Title: strptr("New title")}, nil, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if h.ProfilePic != "https://cdn.test/uploads/old.png" {
		t.Errorf("profilePic = %q, want unchanged", h.ProfilePic)
	}
	if len(assets.uploaded) != 0 || len(assets.deleted) != 0 {
		t.Errorf("no asset calls expected, got uploads=%v deletes=%v", assets.uploaded, assets.deleted)
	}
}

func TestUpdateReplacesImageAndDeletesOld(t *testing.T) {
	assets := &fakeAssets{}
	store := &memStore{h: &Hero{ID: "hero-1", ProfilePic: "https://cdn.test/uploads/old.png"}}
	svc := NewService(store, assets)

	file := &form.File{Name: "new.png", Data: []byte("png")}
	h, err := svc.Update(context.Background(), Update{}, file, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if h.ProfilePic != "https://cdn.test/uploads/new.png" {
		t.Errorf("profilePic = %q", h.ProfilePic)
	}
	if len(assets.deleted) != 1 || assets.deleted[0] != "https://cdn.test/uploads/old.png" {
		t.Errorf("deleted = %v, want the superseded asset", assets.deleted)
	}
}

func TestUpdateUploadFailureKeepsExistingURL(t *testing.T) {
	assets := &fakeAssets{failUpload: true}
	store := &memStore{h: &Hero{ID: "hero-1", ProfilePic: "https://cdn.test/uploads/old.png"}}
	svc := NewService(store, assets)

	file := &form.File{Name: "new.png", Data: []byte("png")}
	h, err := svc.Update(context.Background(), Update{Badge: strptr("B")}, file, nil)
	if err != nil {
		t.Fatalf("update must not fail on upload error: %v", err)
	}

	if h.ProfilePic != "https://cdn.test/uploads/old.png" {
		t.Errorf("profilePic = %q, want byte-for-byte unchanged", h.ProfilePic)
	}
	if len(assets.deleted) != 0 {
		t.Errorf("old asset must not be deleted when upload failed, got %v", assets.deleted)
	}
	if h.Badge != "B" {
		t.Errorf("text fields should still merge, badge = %q", h.Badge)
	}
}

func TestUpdateDeleteFailureIsNonFatal(t *testing.T) {
	assets := &fakeAssets{deleteErr: errors.New("sha fetch failed")}
	store := &memStore{h: &Hero{ID: "hero-1", ResumeURL: "https://cdn.test/uploads/old.pdf"}}
	svc := NewService(store, assets)

	file := &form.File{Name: "resume.pdf", Data: []byte("pdf")}
	h, err := svc.Update(context.Background(), Update{}, nil, file)
	if err != nil {
		t.Fatalf("update must not fail on delete error: %v", err)
	}
	if h.ResumeURL != "https://cdn.test/uploads/resume.pdf" {
		t.Errorf("resumeUrl = %q, want the new upload", h.ResumeURL)
	}
}

func TestUpdateCreatesSingletonOnFirstWrite(t *testing.T) {
	store := &memStore{}
	svc := NewService(store, &fakeAssets{})

	h, err := svc.Update(context.Background(), Update{Title: strptr("Hello")}, nil, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if h.ID == "" || h.Title != "Hello" {
		t.Errorf("record = %+v, want created singleton", h)
	}

	got, err := svc.Read(context.Background())
	if err != nil {
		t.Fatalf("read after first write: %v", err)
	}
	if got.ID != h.ID {
		t.Errorf("read a different record: %q vs %q", got.ID, h.ID)
	}
}
