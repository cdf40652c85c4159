package post

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testHandler() (*Handler, *memStore) {
	store := &memStore{}
	return NewHandler(NewService(store, &fakeAssets{})), store
}

func TestHandlerListEnvelope(t *testing.T) {
	h, _ := testHandler()

	r := httptest.NewRequest("GET", "/api/posts", nil)
	w := httptest.NewRecorder()
	h.Get(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Posts []Post `json:"posts"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Posts == nil {
		t.Error(`empty collection must still encode as {"posts": []}`)
	}
}

func TestHandlerCreate(t *testing.T) {
	h, _ := testHandler()

	payload := `{"title":"Hello","slug":"hello","content":"some words here","tags":"go,web"}`
	r := httptest.NewRequest("POST", "/api/posts", strings.NewReader(payload))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Create(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var body struct {
		Post *Post `json:"post"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Post == nil || body.Post.Slug != "hello" || body.Post.ReadTime != 1 {
		t.Errorf("post = %+v", body.Post)
	}
	if len(body.Post.Tags) != 2 {
		t.Errorf("tags = %v, want split from comma string", body.Post.Tags)
	}
}

func TestHandlerCreateDuplicateSlug(t *testing.T) {
	h, _ := testHandler()

	for i, wantStatus := range []int{http.StatusCreated, http.StatusBadRequest} {
		r := httptest.NewRequest("POST", "/api/posts", strings.NewReader(`{"title":"T","slug":"dup","content":"c"}`))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h.Create(w, r)
		if w.Code != wantStatus {
			t.Fatalf("attempt %d: status = %d, want %d", i, w.Code, wantStatus)
		}
		if wantStatus == http.StatusBadRequest {
			var body struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &body)
			if !strings.Contains(body.Error, "Slug already exists") {
				t.Errorf("error = %q, want a slug-specific message", body.Error)
			}
		}
	}
}

func TestHandlerCreateMissingFields(t *testing.T) {
	h, _ := testHandler()

	r := httptest.NewRequest("POST", "/api/posts", strings.NewReader(`{"slug":"x"}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Create(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandlerGetBySlugNotFound(t *testing.T) {
	h, _ := testHandler()

	r := httptest.NewRequest("GET", "/api/posts?slug=missing", nil)
	w := httptest.NewRecorder()
	h.Get(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Error == "" {
		t.Error("expected an error message")
	}
}

func TestHandlerSearchQuery(t *testing.T) {
	h, _ := testHandler()

	for _, payload := range []string{
		`{"title":"AI Tracker","slug":"ai-tracker","content":"c"}`,
		`{"title":"Web Shop","slug":"web-shop","content":"c"}`,
	} {
		r := httptest.NewRequest("POST", "/api/posts", strings.NewReader(payload))
		r.Header.Set("Content-Type", "application/json")
		h.Create(httptest.NewRecorder(), r)
	}

	r := httptest.NewRequest("GET", "/api/posts?q=ai", nil)
	w := httptest.NewRecorder()
	h.Get(w, r)

	var body struct {
		Posts []Post `json:"posts"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Posts) != 1 || body.Posts[0].Title != "AI Tracker" {
		t.Errorf("search results = %+v", body.Posts)
	}
}

func TestHandlerRenderedProjection(t *testing.T) {
	h, _ := testHandler()

	r := httptest.NewRequest("POST", "/api/posts", strings.NewReader(`{"title":"T","slug":"t","content":"# Heading"}`))
	r.Header.Set("Content-Type", "application/json")
	h.Create(httptest.NewRecorder(), r)

	r = httptest.NewRequest("GET", "/api/posts?slug=t&format=html", nil)
	w := httptest.NewRecorder()
	h.Get(w, r)

	var body struct {
		Post *Post `json:"post"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(body.Post.ContentHTML, "<h1>") {
		t.Errorf("contentHtml = %q", body.Post.ContentHTML)
	}
	if body.Post.DateLabel == "" {
		t.Error("expected a date label on the rendered projection")
	}
}
