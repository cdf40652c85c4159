// Package contact manages visitor messages from the contact form.
package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Message is one visitor message.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// ErrNotFound is returned when a message does not exist.
var ErrNotFound = errors.New("message not found")

// Repository handles message persistence.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new contact Repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert stores a new message.
func (r *Repository) Insert(ctx context.Context, name, email, message string) (*Message, error) {
	m := &Message{}
	err := r.db.QueryRow(ctx,
		`INSERT INTO contacts (name, email, message)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, email, message, read, created_at`,
		name, email, message,
	).Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.Read, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return m, nil
}

// List returns all messages, newest first.
func (r *Repository) List(ctx context.Context) ([]Message, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, email, message, read, created_at
		 FROM contacts ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := []Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.Read, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// MarkRead flags a message as read.
func (r *Repository) MarkRead(ctx context.Context, id string) (*Message, error) {
	m := &Message{}
	err := r.db.QueryRow(ctx,
		`UPDATE contacts SET read = TRUE WHERE id = $1
		 RETURNING id, name, email, message, read, created_at`,
		id,
	).Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.Read, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mark message read: %w", err)
	}
	return m, nil
}

// Delete removes a message. Returns ErrNotFound when no row matched.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		if isInvalidID(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// isInvalidID checks for PostgreSQL invalid_text_representation (code 22P02).
func isInvalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
