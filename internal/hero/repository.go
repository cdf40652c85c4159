// Package hero manages the home-page hero section: a singleton record with
// optional profile picture and resume assets.
package hero

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Hero is the single home-page hero record.
type Hero struct {
	ID             string    `json:"id"`
	Badge          string    `json:"badge"`
	Title          string    `json:"title"`
	Subtitle       string    `json:"subtitle"`
	ProfilePic     string    `json:"profilePic"`
	ResumeURL      string    `json:"resumeUrl"`
	SocialGithub   string    `json:"socialGithub"`
	SocialLinkedin string    `json:"socialLinkedin"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Update carries the fields supplied by a write request. Nil means "not
// supplied, keep the stored value".
type Update struct {
	Badge          *string
	Title          *string
	Subtitle       *string
	ProfilePic     *string
	ResumeURL      *string
	SocialGithub   *string
	SocialLinkedin *string
}

// ErrNotConfigured is returned when no hero record exists yet. This is a
// normal state for a fresh deployment, not a failure.
var ErrNotConfigured = errors.New("hero not configured")

// Repository handles hero persistence. The table holds at most one logical
// row; every operation targets the first row found.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const heroColumns = `id, badge, title, subtitle, profile_pic, resume_url,
	social_github, social_linkedin, created_at, updated_at`

// GetSingleton fetches the hero record, if one has been created.
func (r *Repository) GetSingleton(ctx context.Context) (*Hero, error) {
	h := &Hero{}
	err := r.db.QueryRow(ctx,
		`SELECT `+heroColumns+` FROM heroes ORDER BY created_at LIMIT 1`,
	).Scan(&h.ID, &h.Badge, &h.Title, &h.Subtitle, &h.ProfilePic, &h.ResumeURL,
		&h.SocialGithub, &h.SocialLinkedin, &h.CreatedAt, &h.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("get hero: %w", err)
	}
	return h, nil
}

// Upsert merges the supplied fields into the singleton record, creating it
// first if absent. Unsupplied fields keep their stored values.
func (r *Repository) Upsert(ctx context.Context, upd Update) (*Hero, error) {
	var id string
	err := r.db.QueryRow(ctx,
		`SELECT id FROM heroes ORDER BY created_at LIMIT 1`,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		err = r.db.QueryRow(ctx,
			`INSERT INTO heroes DEFAULT VALUES RETURNING id`,
		).Scan(&id)
	}
	if err != nil {
		return nil, fmt.Errorf("locate hero row: %w", err)
	}

	h := &Hero{}
	err = r.db.QueryRow(ctx,
		`UPDATE heroes SET
			badge           = COALESCE($2, badge),
			title           = COALESCE($3, title),
			subtitle        = COALESCE($4, subtitle),
			profile_pic     = COALESCE($5, profile_pic),
			resume_url      = COALESCE($6, resume_url),
			social_github   = COALESCE($7, social_github),
			social_linkedin = COALESCE($8, social_linkedin),
			updated_at      = NOW()
		 WHERE id = $1
		 RETURNING `+heroColumns,
		id, upd.Badge, upd.Title, upd.Subtitle, upd.ProfilePic, upd.ResumeURL,
		upd.SocialGithub, upd.SocialLinkedin,
	).Scan(&h.ID, &h.Badge, &h.Title, &h.Subtitle, &h.ProfilePic, &h.ResumeURL,
		&h.SocialGithub, &h.SocialLinkedin, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert hero: %w", err)
	}
	return h, nil
}
