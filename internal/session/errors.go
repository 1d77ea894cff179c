package session

import "errors"

var (
	// ErrInvalidToken is returned for every token verification failure:
	// bad signature, wrong algorithm, expired, missing subject, or garbage.
	// The cause is deliberately not distinguishable by the caller.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUnauthenticated is the resolver's single failure classification.
	// Missing token, invalid token and deleted principal all look the same.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrConfig is returned for invalid configuration.
	ErrConfig = errors.New("invalid session config")
)
