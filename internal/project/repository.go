// Package project manages portfolio projects and their persistence.
package project

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Project is a portfolio project record.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Tags        []string  `json:"tags"`
	GithubLink  string    `json:"githubLink"`
	LiveLink    string    `json:"liveLink"`
	AppLink     string    `json:"appLink"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Update carries the fields supplied by a write request. Nil means "not
// supplied, keep the stored value".
type Update struct {
	Title       *string
	Slug        *string
	Description *string
	Image       *string
	Tags        []string
	GithubLink  *string
	LiveLink    *string
	AppLink     *string
	Featured    *bool
}

// ErrNotFound is returned when a project does not exist.
var ErrNotFound = errors.New("project not found")

// ErrSlugTaken is returned when the slug is already used by another project.
var ErrSlugTaken = errors.New("slug already exists")

// Repository handles all project database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const projectColumns = `id, title, slug, description, image, tags,
	github_link, live_link, app_link, featured, created_at, updated_at`

func scanProject(row pgx.Row) (*Project, error) {
	p := &Project{}
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.Image, &p.Tags,
		&p.GithubLink, &p.LiveLink, &p.AppLink, &p.Featured, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List returns all projects, newest first.
func (r *Repository) List(ctx context.Context) ([]Project, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// GetByID fetches a project by its UUID.
func (r *Repository) GetByID(ctx context.Context, id string) (*Project, error) {
	p, err := scanProject(r.db.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id,
	))
	if isNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project by id: %w", err)
	}
	return p, nil
}

// GetBySlug fetches a project by its slug.
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*Project, error) {
	p, err := scanProject(r.db.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE slug = $1`, slug,
	))
	if isNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project by slug: %w", err)
	}
	return p, nil
}

// Insert creates a new project and returns the stored record.
func (r *Repository) Insert(ctx context.Context, p Project) (*Project, error) {
	stored, err := scanProject(r.db.QueryRow(ctx,
		`INSERT INTO projects (title, slug, description, image, tags,
			github_link, live_link, app_link, featured)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+projectColumns,
		p.Title, p.Slug, p.Description, p.Image, p.Tags,
		p.GithubLink, p.LiveLink, p.AppLink, p.Featured,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return stored, nil
}

// Update merges the supplied fields into the project and returns the result.
func (r *Repository) Update(ctx context.Context, id string, upd Update) (*Project, error) {
	p, err := scanProject(r.db.QueryRow(ctx,
		`UPDATE projects SET
			title       = COALESCE($2, title),
			slug        = COALESCE($3, slug),
			description = COALESCE($4, description),
			image       = COALESCE($5, image),
			tags        = COALESCE($6, tags),
			github_link = COALESCE($7, github_link),
			live_link   = COALESCE($8, live_link),
			app_link    = COALESCE($9, app_link),
			featured    = COALESCE($10, featured),
			updated_at  = NOW()
		 WHERE id = $1
		 RETURNING `+projectColumns,
		id, upd.Title, upd.Slug, upd.Description, upd.Image, upd.Tags,
		upd.GithubLink, upd.LiveLink, upd.AppLink, upd.Featured,
	))
	if isNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	return p, nil
}

// Delete removes a project. Returns ErrNotFound when no row matched.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		if isInvalidID(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// isNoRows also treats a malformed UUID as "no such row" so lookups by a
// garbage id surface as 404 rather than 500.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || isInvalidID(err)
}

// isInvalidID checks for PostgreSQL invalid_text_representation (code 22P02).
func isInvalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

// isUniqueViolation checks whether an error is a PostgreSQL unique_violation (code 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
