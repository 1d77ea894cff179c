package todo

import (
	"time"

	"tally/internal/identity"
)

// MaxTitleLen bounds the title after sanitization.
const MaxTitleLen = 500

// Todo is an owned, mutable item. UserID is set at creation and never
// changes afterward.
type Todo struct {
	ID        string
	UserID    string
	Title     string
	Completed bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateTodoInput describes a todo insert as the store sees it.
type CreateTodoInput struct {
	UserID string
	Title  string
	Now    time.Time
}

// UpdateInput is a partial update: only non-nil fields are applied.
type UpdateInput struct {
	Title     *string
	Completed *bool
}

// SanitizeTitle strips control characters and surrounding whitespace.
func SanitizeTitle(s string) string {
	return identity.SanitizeText(s)
}

func validateTitle(op, title string) error {
	if title == "" {
		return OpError{Op: op, Kind: ErrInvalidInput, Msg: "title must not be empty"}
	}
	if len(title) > MaxTitleLen {
		return OpError{Op: op, Kind: ErrInvalidInput, Msg: "title must be between 1 and 500 characters"}
	}
	return nil
}
