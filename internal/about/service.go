package about

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Store is the persistence surface the service needs.
type Store interface {
	GetSingleton(ctx context.Context) (*About, error)
	Upsert(ctx context.Context, upd Update) (*About, error)
}

// Service contains business logic for the about page.
type Service struct {
	store Store
}

// NewService creates a new about Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Read returns the about record with skill metadata resolved, or
// ErrNotConfigured when none exists yet.
func (s *Service) Read(ctx context.Context) (*About, error) {
	a, err := s.store.GetSingleton(ctx)
	if err != nil {
		return nil, err
	}
	a.SkillDetails = resolveSkills(a.Skills)
	return a, nil
}

// IsNotConfigured returns true when the error means no record exists yet.
func (s *Service) IsNotConfigured(err error) bool {
	return errors.Is(err, ErrNotConfigured)
}

// Update merges the supplied fields into the singleton record.
func (s *Service) Update(ctx context.Context, upd Update) (*About, error) {
	a, err := s.store.Upsert(ctx, upd)
	if err != nil {
		return nil, err
	}
	a.SkillDetails = resolveSkills(a.Skills)
	return a, nil
}

// NormalizeSkills trims entries and drops empties, preserving order. Accepts
// the already-split list from the payload layer.
func NormalizeSkills(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ParseEducation accepts the education field in either submission shape: a
// decoded JSON array, or a JSON-encoded string (the multipart form case).
// Entries with no degree and no institution are dropped; nothing else is
// silently discarded.
func ParseEducation(v any) ([]Education, error) {
	var raw []byte
	switch t := v.(type) {
	case string:
		raw = []byte(t)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode education: %w", err)
		}
		raw = b
	}

	var entries []Education
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("education must be a list of {degree, institution, year}: %w", err)
	}

	out := make([]Education, 0, len(entries))
	for _, e := range entries {
		e.Degree = strings.TrimSpace(e.Degree)
		e.Institution = strings.TrimSpace(e.Institution)
		e.Year = strings.TrimSpace(e.Year)
		if e.Degree == "" && e.Institution == "" {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
