package todo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"tally/internal/identity/ids"
)

// MemoryStore is an in-process Store used by the console demo and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	byID map[string]Todo
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]Todo)}
}

// CreateTodo inserts a new todo.
func (s *MemoryStore) CreateTodo(ctx context.Context, in CreateTodoInput) (Todo, error) {
	const op = "todo.CreateTodo"

	if err := ctx.Err(); err != nil {
		return Todo{}, err
	}
	if strings.TrimSpace(in.UserID) == "" {
		return Todo{}, invalid(op, "missing user_id")
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	id, err := ids.NewULID(now)
	if err != nil {
		return Todo{}, err
	}

	t := Todo{
		ID:        id,
		UserID:    in.UserID,
		Title:     in.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.byID[id] = t
	s.mu.Unlock()

	return t, nil
}

// TodoByID fetches a single todo.
func (s *MemoryStore) TodoByID(ctx context.Context, id string) (Todo, error) {
	const op = "todo.TodoByID"

	if err := ctx.Err(); err != nil {
		return Todo{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.byID[id]
	if !ok {
		return Todo{}, notFound(op)
	}
	return t, nil
}

// TodosByOwner lists an owner's todos, newest first.
func (s *MemoryStore) TodosByOwner(ctx context.Context, ownerID string) ([]Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	out := make([]Todo, 0, len(s.byID))
	for _, t := range s.byID {
		if t.UserID == ownerID {
			out = append(out, t)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		// ULIDs embed the mint time, so id order breaks created_at ties.
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// UpdateTodo replaces the stored row keyed by t.ID.
func (s *MemoryStore) UpdateTodo(ctx context.Context, t Todo) (Todo, error) {
	const op = "todo.UpdateTodo"

	if err := ctx.Err(); err != nil {
		return Todo{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.byID[t.ID]
	if !ok {
		return Todo{}, notFound(op)
	}

	cur.Title = t.Title
	cur.Completed = t.Completed
	cur.UpdatedAt = t.UpdatedAt
	s.byID[t.ID] = cur
	return cur, nil
}

// DeleteTodo removes a todo permanently.
func (s *MemoryStore) DeleteTodo(ctx context.Context, id string) error {
	const op = "todo.DeleteTodo"

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return notFound(op)
	}
	delete(s.byID, id)
	return nil
}
