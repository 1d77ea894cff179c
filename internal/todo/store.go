package todo

import "context"

// Store is the todo persistence interface.
//
// Lookups report a missing row as ErrNotFound, distinct from transport
// errors. TodosByOwner returns rows ordered by creation time descending.
type Store interface {
	CreateTodo(ctx context.Context, in CreateTodoInput) (Todo, error)
	TodoByID(ctx context.Context, id string) (Todo, error)
	TodosByOwner(ctx context.Context, ownerID string) ([]Todo, error)

	// UpdateTodo replaces the stored row's mutable fields (title, completed,
	// updated_at) keyed by id. Last write wins on concurrent updates.
	UpdateTodo(ctx context.Context, t Todo) (Todo, error)

	// DeleteTodo removes the row permanently.
	DeleteTodo(ctx context.Context, id string) error
}
