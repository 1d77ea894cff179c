package todo

import (
	"context"
	"errors"
	"time"

	"tally/internal/identity"
)

// Service implements the owner-scoped todo operations. Every operation takes
// an already-resolved principal; unauthenticated callers never reach here.
type Service struct {
	store Store
}

// NewService builds a todo Service.
func NewService(store Store) (*Service, error) {
	if store == nil {
		return nil, errors.New("todo: nil store")
	}
	return &Service{store: store}, nil
}

// List returns the principal's todos, newest first.
func (s *Service) List(ctx context.Context, principal identity.User) ([]Todo, error) {
	return s.store.TodosByOwner(ctx, principal.ID)
}

// Create validates and persists a new todo owned by the principal.
func (s *Service) Create(ctx context.Context, principal identity.User, title string) (Todo, error) {
	const op = "todo.Create"

	title = SanitizeTitle(title)
	if err := validateTitle(op, title); err != nil {
		return Todo{}, err
	}

	return s.store.CreateTodo(ctx, CreateTodoInput{
		UserID: principal.ID,
		Title:  title,
		Now:    time.Now().UTC(),
	})
}

// Get fetches a single todo after the ownership guard.
func (s *Service) Get(ctx context.Context, principal identity.User, id string) (Todo, error) {
	t, err := s.fetchAuthorized(ctx, principal, id)
	if err != nil {
		return Todo{}, err
	}
	return *t, nil
}

// Update applies a partial update to a todo the principal owns.
//
// The fetched row is guarded, then mutated in place: lookup, guard and write
// all key on the same id within this one request. Re-applying identical
// values leaves title/completed unchanged but still advances UpdatedAt.
func (s *Service) Update(ctx context.Context, principal identity.User, id string, in UpdateInput) (Todo, error) {
	const op = "todo.Update"

	t, err := s.fetchAuthorized(ctx, principal, id)
	if err != nil {
		return Todo{}, err
	}

	if in.Title != nil {
		title := SanitizeTitle(*in.Title)
		if err := validateTitle(op, title); err != nil {
			return Todo{}, err
		}
		t.Title = title
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
	t.UpdatedAt = time.Now().UTC()

	return s.store.UpdateTodo(ctx, *t)
}

// Delete removes a todo the principal owns. Permanent, no soft-delete.
func (s *Service) Delete(ctx context.Context, principal identity.User, id string) error {
	_, err := s.fetchAuthorized(ctx, principal, id)
	if err != nil {
		return err
	}
	return s.store.DeleteTodo(ctx, id)
}

// fetchAuthorized is the mandatory lookup + guard sequence: existence first,
// ownership second, and the returned row is the one the caller mutates.
func (s *Service) fetchAuthorized(ctx context.Context, principal identity.User, id string) (*Todo, error) {
	t, err := s.store.TodoByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(principal, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
