// Package form normalizes write-request payloads. Admin submissions arrive
// either as JSON bodies or as multipart forms (when a file rides along);
// Parse decodes whichever shape was sent into a single Payload so no handler
// branches on payload shape below its boundary.
package form

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
)

// maxMemory caps the in-memory portion of multipart parsing at 32 MiB.
const maxMemory = 32 << 20

// File is an uploaded file extracted from a multipart form.
type File struct {
	Name string
	Data []byte
}

// Payload is the normalized view of a write request body.
type Payload struct {
	values map[string]any
	files  map[string]*File
}

// Parse decodes the request body. Multipart bodies are parsed as forms,
// anything else as a JSON object.
func Parse(r *http.Request) (*Payload, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(ct, "multipart/") {
		return parseMultipart(r)
	}
	return parseJSON(r)
}

func parseJSON(r *http.Request) (*Payload, error) {
	values := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode json body: %w", err)
	}
	return &Payload{values: values, files: map[string]*File{}}, nil
}

func parseMultipart(r *http.Request) (*Payload, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}

	p := &Payload{values: map[string]any{}, files: map[string]*File{}}
	for name, vals := range r.MultipartForm.Value {
		if len(vals) > 0 {
			p.values[name] = vals[0]
		}
	}
	for name, headers := range r.MultipartForm.File {
		if len(headers) == 0 {
			continue
		}
		f, err := readFile(headers[0])
		if err != nil {
			return nil, err
		}
		if f != nil {
			p.files[name] = f
		}
	}
	return p, nil
}

// readFile reads one multipart file part. Empty parts (no filename or zero
// bytes, the browser's way of submitting an untouched file input) are skipped.
func readFile(h *multipart.FileHeader) (*File, error) {
	if h.Filename == "" || h.Filename == "undefined" || h.Size == 0 {
		return nil, nil
	}
	src, err := h.Open()
	if err != nil {
		return nil, fmt.Errorf("open file part %q: %w", h.Filename, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read file part %q: %w", h.Filename, err)
	}
	return &File{Name: h.Filename, Data: data}, nil
}

// Has reports whether the field was present in the request at all,
// distinguishing "not supplied" from "supplied empty" for merge updates.
func (p *Payload) Has(name string) bool {
	_, ok := p.values[name]
	return ok
}

// Get returns the field as a string. Non-string JSON scalars are stringified.
func (p *Payload) Get(name string) (string, bool) {
	v, ok := p.values[name]
	if !ok || v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

// Value returns the raw decoded field for structured sub-objects.
func (p *Payload) Value(name string) (any, bool) {
	v, ok := p.values[name]
	return v, ok
}

// List returns the field as an ordered list of trimmed, non-empty strings.
// JSON arrays pass through; plain strings are split on commas. Malformed
// entries are dropped only when empty after trimming.
func (p *Payload) List(name string) ([]string, bool) {
	v, ok := p.values[name]
	if !ok {
		return nil, false
	}

	var parts []string
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			parts = append(parts, fmt.Sprint(item))
		}
	case string:
		parts = strings.Split(t, ",")
	default:
		parts = []string{fmt.Sprint(v)}
	}

	out := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, true
}

// File returns the uploaded file for the given field, if one was submitted.
func (p *Payload) File(name string) (*File, bool) {
	f, ok := p.files[name]
	return f, ok
}
