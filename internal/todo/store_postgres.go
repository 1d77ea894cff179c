package todo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tally/internal/identity/ids"
)

// PostgresStore implements Store over PostgreSQL.
// The pgx pool is owned by the caller; this store must not close it.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, errors.New("todo: nil pool")
	}
	return &PostgresStore{pool: pool}, nil
}

const todoColumns = `id, user_id, title, completed, created_at, updated_at`

// CreateTodo inserts a new todo row.
func (s *PostgresStore) CreateTodo(ctx context.Context, in CreateTodoInput) (Todo, error) {
	const op = "todo.CreateTodo"

	if s == nil || s.pool == nil {
		return Todo{}, invalid(op, "nil store")
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

	_, err = s.pool.Exec(ctx,
		`INSERT INTO todos (id, user_id, title, completed, created_at, updated_at)
		 VALUES ($1, $2, $3, false, $4, $4)`,
		id, in.UserID, in.Title, now,
	)
	if err != nil {
		return Todo{}, err
	}

	return Todo{
		ID:        id,
		UserID:    in.UserID,
		Title:     in.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// TodoByID fetches a single todo row.
func (s *PostgresStore) TodoByID(ctx context.Context, id string) (Todo, error) {
	const op = "todo.TodoByID"

	if s == nil || s.pool == nil {
		return Todo{}, invalid(op, "nil store")
	}

	row := s.pool.QueryRow(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = $1`, id)
	return scanTodo(op, row)
}

// TodosByOwner lists an owner's todos, newest first.
func (s *PostgresStore) TodosByOwner(ctx context.Context, ownerID string) ([]Todo, error) {
	const op = "todo.TodosByOwner"

	if s == nil || s.pool == nil {
		return nil, invalid(op, "nil store")
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+todoColumns+` FROM todos
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Todo, 0, 16)
	for rows.Next() {
		var t Todo
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateTodo replaces the mutable fields of the row keyed by t.ID.
func (s *PostgresStore) UpdateTodo(ctx context.Context, t Todo) (Todo, error) {
	const op = "todo.UpdateTodo"

	if s == nil || s.pool == nil {
		return Todo{}, invalid(op, "nil store")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE todos SET title = $2, completed = $3, updated_at = $4 WHERE id = $1`,
		t.ID, t.Title, t.Completed, t.UpdatedAt,
	)
	if err != nil {
		return Todo{}, err
	}
	if tag.RowsAffected() == 0 {
		return Todo{}, notFound(op)
	}
	return t, nil
}

// DeleteTodo removes the row permanently.
func (s *PostgresStore) DeleteTodo(ctx context.Context, id string) error {
	const op = "todo.DeleteTodo"

	if s == nil || s.pool == nil {
		return invalid(op, "nil store")
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notFound(op)
	}
	return nil
}

func scanTodo(op string, row pgx.Row) (Todo, error) {
	var t Todo
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Todo{}, notFound(op)
		}
		return Todo{}, err
	}
	return t, nil
}
