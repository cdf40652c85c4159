package form

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestParseJSON(t *testing.T) {
	body := `{"title":"Hello","tags":["go"," web ",""],"skills":"Python, Go ,","featured":true}`
	r := httptest.NewRequest("POST", "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	p, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if v, ok := p.Get("title"); !ok || v != "Hello" {
		t.Errorf("Get(title) = %q, %v", v, ok)
	}
	if p.Has("missing") {
		t.Error("Has(missing) should be false")
	}

	tags, ok := p.List("tags")
	if !ok || !reflect.DeepEqual(tags, []string{"go", "web"}) {
		t.Errorf("List(tags) = %v, %v", tags, ok)
	}

	skills, ok := p.List("skills")
	if !ok || !reflect.DeepEqual(skills, []string{"Python", "Go"}) {
		t.Errorf("List(skills) = %v, %v", skills, ok)
	}

	if v, ok := p.Get("featured"); !ok || v != "true" {
		t.Errorf("Get(featured) = %q, %v", v, ok)
	}
}

func TestParseJSONEmptyBody(t *testing.T) {
	r := httptest.NewRequest("PUT", "/", strings.NewReader(""))
	r.Header.Set("Content-Type", "application/json")

	p, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Has("anything") {
		t.Error("empty body should carry no fields")
	}
}

func TestParseMultipart(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("title", "My Post")
	_ = w.WriteField("tags", "go, http")
	fw, _ := w.CreateFormFile("image", "cover photo.png")
	_, _ = fw.Write([]byte("fake-png-bytes"))
	_ = w.Close()

	r := httptest.NewRequest("POST", "/", &buf)
	r.Header.Set("Content-Type", w.FormDataContentType())

	p, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if v, ok := p.Get("title"); !ok || v != "My Post" {
		t.Errorf("Get(title) = %q, %v", v, ok)
	}

	tags, ok := p.List("tags")
	if !ok || !reflect.DeepEqual(tags, []string{"go", "http"}) {
		t.Errorf("List(tags) = %v", tags)
	}

	f, ok := p.File("image")
	if !ok {
		t.Fatal("expected a file part")
	}
	if f.Name != "cover photo.png" || string(f.Data) != "fake-png-bytes" {
		t.Errorf("file = %q (%d bytes)", f.Name, len(f.Data))
	}
	if _, ok := p.File("resume"); ok {
		t.Error("File(resume) should be absent")
	}
}

func TestParseMultipartSkipsEmptyFilePart(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_, _ = w.CreateFormFile("image", "undefined")
	_ = w.Close()

	r := httptest.NewRequest("POST", "/", &buf)
	r.Header.Set("Content-Type", w.FormDataContentType())

	p, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := p.File("image"); ok {
		t.Error("empty file part should be skipped")
	}
}

func TestHasDistinguishesEmptyFromAbsent(t *testing.T) {
	r := httptest.NewRequest("PUT", "/", strings.NewReader(`{"badge":""}`))
	r.Header.Set("Content-Type", "application/json")

	p, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !p.Has("badge") {
		t.Error("supplied-empty field should register as present")
	}
	if v, ok := p.Get("badge"); !ok || v != "" {
		t.Errorf("Get(badge) = %q, %v", v, ok)
	}
}
