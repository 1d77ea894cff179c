package todo

import "tally/internal/identity"

// Authorize decides whether principal may act on t.
//
// A nil t means the lookup found nothing: ErrNotFound. A different owner is
// ErrForbidden. Existence is decided before ownership so a forbidden answer
// always refers to a row that actually exists, and the caller must pass the
// very row it is about to mutate, not a stale cached copy.
func Authorize(principal identity.User, t *Todo) error {
	const op = "todo.Authorize"

	if t == nil {
		return notFound(op)
	}
	if t.UserID != principal.ID {
		return OpError{Op: op, Kind: ErrForbidden}
	}
	return nil
}
