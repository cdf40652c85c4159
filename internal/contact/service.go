package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrValidation wraps all input-validation failures.
var ErrValidation = errors.New("validation failed")

// Store is the persistence surface the service needs.
type Store interface {
	Insert(ctx context.Context, name, email, message string) (*Message, error)
	List(ctx context.Context) ([]Message, error)
	MarkRead(ctx context.Context, id string) (*Message, error)
	Delete(ctx context.Context, id string) error
}

// Service contains business logic for contact messages.
type Service struct {
	store Store
}

// NewService creates a new contact Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Submit validates and stores a visitor message.
func (s *Service) Submit(ctx context.Context, name, email, message string) (*Message, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: name, email, and message are required", ErrValidation)
	}
	return s.store.Insert(ctx, name, email, message)
}

// List returns all messages, newest first.
func (s *Service) List(ctx context.Context) ([]Message, error) {
	return s.store.List(ctx)
}

// MarkRead flags a message as read.
func (s *Service) MarkRead(ctx context.Context, id string) (*Message, error) {
	return s.store.MarkRead(ctx, id)
}

// Delete removes a message.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// IsNotFound returns true when the error indicates a missing message.
func (s *Service) IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
