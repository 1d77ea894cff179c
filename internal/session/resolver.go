package session

import (
	"context"
	"fmt"
	"time"

	"tally/internal/identity"
)

// Resolver turns an inbound token into an authenticated principal,
// failing closed.
//
// The three-stage check (token present, token valid, principal exists) stops
// at the first failure and collapses every failure into ErrUnauthenticated,
// so a caller can never learn whether a token was missing, expired, forged,
// or belonged to a since-deleted account. Only store transport failures are
// reported as a different (internal) error.
type Resolver struct {
	codec *Codec
	store identity.Store
}

// NewResolver builds a Resolver over a codec and a principal store.
func NewResolver(codec *Codec, store identity.Store) *Resolver {
	return &Resolver{codec: codec, store: store}
}

// Resolve authenticates the caller. token may be empty (no credential sent).
func (r *Resolver) Resolve(ctx context.Context, token string) (identity.User, error) {
	if token == "" {
		return identity.User{}, ErrUnauthenticated
	}

	subject, err := r.codec.Validate(token, time.Now().UTC())
	if err != nil {
		return identity.User{}, ErrUnauthenticated
	}

	u, err := r.store.UserByID(ctx, subject)
	if err != nil {
		if identity.IsNotFound(err) {
			return identity.User{}, ErrUnauthenticated
		}
		return identity.User{}, fmt.Errorf("session.Resolve: %w", err)
	}
	return u, nil
}
