// Package about manages the about-page record: bio, skills, and education.
package about

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Education is one entry in the education history.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// About is the single about-page record. SkillDetails is computed at read
// time from the skill catalog and never stored.
type About struct {
	ID           string      `json:"id"`
	Bio          string      `json:"bio"`
	Skills       []string    `json:"skills"`
	Education    []Education `json:"education"`
	SkillDetails []Skill     `json:"skillDetails,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Update carries the fields supplied by a write request. Nil means "not
// supplied, keep the stored value".
type Update struct {
	Bio       *string
	Skills    []string
	Education []Education
}

// ErrNotConfigured is returned when no about record exists yet.
var ErrNotConfigured = errors.New("about not configured")

// Repository handles about persistence. At most one logical row exists.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetSingleton fetches the about record, if one has been created.
func (r *Repository) GetSingleton(ctx context.Context) (*About, error) {
	a := &About{}
	var education []byte
	err := r.db.QueryRow(ctx,
		`SELECT id, bio, skills, education, created_at, updated_at
		 FROM abouts ORDER BY created_at LIMIT 1`,
	).Scan(&a.ID, &a.Bio, &a.Skills, &education, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("get about: %w", err)
	}
	if err := json.Unmarshal(education, &a.Education); err != nil {
		return nil, fmt.Errorf("decode education: %w", err)
	}
	return a, nil
}

// Upsert merges the supplied fields into the singleton record, creating it
// first if absent.
func (r *Repository) Upsert(ctx context.Context, upd Update) (*About, error) {
	var id string
	err := r.db.QueryRow(ctx,
		`SELECT id FROM abouts ORDER BY created_at LIMIT 1`,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		err = r.db.QueryRow(ctx,
			`INSERT INTO abouts DEFAULT VALUES RETURNING id`,
		).Scan(&id)
	}
	if err != nil {
		return nil, fmt.Errorf("locate about row: %w", err)
	}

	var educationJSON []byte
	if upd.Education != nil {
		educationJSON, err = json.Marshal(upd.Education)
		if err != nil {
			return nil, fmt.Errorf("encode education: %w", err)
		}
	}

	a := &About{}
	var education []byte
	err = r.db.QueryRow(ctx,
		`UPDATE abouts SET
			bio        = COALESCE($2, bio),
			skills     = COALESCE($3, skills),
			education  = COALESCE($4, education),
			updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, bio, skills, education, created_at, updated_at`,
		id, upd.Bio, upd.Skills, educationJSON,
	).Scan(&a.ID, &a.Bio, &a.Skills, &education, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert about: %w", err)
	}
	if err := json.Unmarshal(education, &a.Education); err != nil {
		return nil, fmt.Errorf("decode education: %w", err)
	}
	return a, nil
}
