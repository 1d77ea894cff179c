package identity

import "context"

// Store is the principal persistence interface consumed by the account
// service and the session resolver.
//
// Every lookup reports a missing row as ErrNotFound, distinct from transport
// errors, so callers can fail closed without guessing.
type Store interface {
	// CreateUser persists a new principal. A duplicate normalized email is
	// reported as a ConflictError with Field "email".
	CreateUser(ctx context.Context, in CreateUserInput) (User, error)

	// UserByEmail looks up a principal by normalized email.
	UserByEmail(ctx context.Context, email string) (User, error)

	// UserByID looks up a principal by id.
	UserByID(ctx context.Context, id string) (User, error)
}
