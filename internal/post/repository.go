// Package post manages blog posts and their persistence.
package post

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Post is a blog post record. ContentHTML and DateLabel are read-time
// projections, populated only when the rendered format is requested.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	CoverImage  string    `json:"coverImage"`
	Tags        []string  `json:"tags"`
	ReadTime    int       `json:"readTime"`
	Published   bool      `json:"published"`
	ContentHTML string    `json:"contentHtml,omitempty"`
	DateLabel   string    `json:"dateLabel,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Update carries the fields supplied by a write request. Nil means "not
// supplied, keep the stored value".
type Update struct {
	Title      *string
	Slug       *string
	Excerpt    *string
	Content    *string
	CoverImage *string
	Tags       []string
	ReadTime   *int
	Published  *bool
}

// ErrNotFound is returned when a post does not exist.
var ErrNotFound = errors.New("post not found")

// ErrSlugTaken is returned when the slug is already used by another post.
var ErrSlugTaken = errors.New("slug already exists")

// Repository handles all post database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const postColumns = `id, title, slug, excerpt, content, cover_image, tags,
	read_time, published, created_at, updated_at`

func scanPost(row pgx.Row) (*Post, error) {
	p := &Post{}
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.CoverImage,
		&p.Tags, &p.ReadTime, &p.Published, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List returns all posts, newest first.
func (r *Repository) List(ctx context.Context) ([]Post, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+postColumns+` FROM posts ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// GetByID fetches a post by its UUID.
func (r *Repository) GetByID(ctx context.Context, id string) (*Post, error) {
	p, err := scanPost(r.db.QueryRow(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = $1`, id,
	))
	if isNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post by id: %w", err)
	}
	return p, nil
}

// GetBySlug fetches a post by its slug.
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	p, err := scanPost(r.db.QueryRow(ctx,
		`SELECT `+postColumns+` FROM posts WHERE slug = $1`, slug,
	))
	if isNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post by slug: %w", err)
	}
	return p, nil
}

// Insert creates a new post and returns the stored record.
func (r *Repository) Insert(ctx context.Context, p Post) (*Post, error) {
	stored, err := scanPost(r.db.QueryRow(ctx,
		`INSERT INTO posts (title, slug, excerpt, content, cover_image, tags,
			read_time, published)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+postColumns,
		p.Title, p.Slug, p.Excerpt, p.Content, p.CoverImage, p.Tags,
		p.ReadTime, p.Published,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return stored, nil
}

// Update merges the supplied fields into the post and returns the result.
func (r *Repository) Update(ctx context.Context, id string, upd Update) (*Post, error) {
	p, err := scanPost(r.db.QueryRow(ctx,
		`UPDATE posts SET
			title       = COALESCE($2, title),
			slug        = COALESCE($3, slug),
			excerpt     = COALESCE($4, excerpt),
			content     = COALESCE($5, content),
			cover_image = COALESCE($6, cover_image),
			tags        = COALESCE($7, tags),
			read_time   = COALESCE($8, read_time),
			published   = COALESCE($9, published),
			updated_at  = NOW()
		 WHERE id = $1
		 RETURNING `+postColumns,
		id, upd.Title, upd.Slug, upd.Excerpt, upd.Content, upd.CoverImage,
		upd.Tags, upd.ReadTime, upd.Published,
	))
	if isNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return p, nil
}

// Delete removes a post. Returns ErrNotFound when no row matched.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		if isInvalidID(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

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
