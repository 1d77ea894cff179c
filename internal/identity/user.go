package identity

import "time"

// User is tally's canonical security principal.
// PasswordHash is stored server-side and must never leave this process.
type User struct {
	ID           string
	FullName     string
	Email        string // normalized (trimmed, lower-cased)
	PasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicUser is the outward-facing view of a principal.
// It deliberately has no password field of any kind.
type PublicUser struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Public returns the outward-facing view of u.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// CreateUserInput describes a registration request as the store sees it.
// All fields are already sanitized, normalized and validated by the caller.
type CreateUserInput struct {
	FullName     string
	Email        string
	PasswordHash string
	Now          time.Time
}
