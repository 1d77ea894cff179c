// Package account implements registration and credential verification,
// composed from the identity credential hasher and the session token codec.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tally/internal/identity"
	"tally/internal/session"
)

// ErrInvalidCredentials is the single undifferentiated signin failure.
// Unknown email and wrong password produce this exact error; callers must
// not be able to tell which part was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Field bounds, applied after sanitization.
const (
	MaxFullNameLen = 100
	MaxEmailLen    = 255
)

// RegisterInput carries raw, untrusted signup fields.
type RegisterInput struct {
	FullName       string
	Email          string
	Password       string
	RetypePassword string
}

// CredentialsInput carries raw, untrusted signin fields.
type CredentialsInput struct {
	Email    string
	Password string
}

// Service implements account operations over a principal store.
type Service struct {
	store identity.Store
	codec *session.Codec

	// dummyHash keeps signin timing flat when the email is unknown:
	// the password is always compared against some bcrypt digest.
	dummyHash string
}

// NewService builds an account Service.
func NewService(store identity.Store, codec *session.Codec) (*Service, error) {
	if store == nil {
		return nil, errors.New("account: nil store")
	}
	if codec == nil {
		return nil, errors.New("account: nil codec")
	}

	dummy, err := identity.HashPassword("dummy-password-for-timing-only")
	if err != nil {
		return nil, fmt.Errorf("account: dummy hash: %w", err)
	}

	return &Service{store: store, codec: codec, dummyHash: dummy}, nil
}

// Register creates a principal and mints its first session token.
//
// Validation order: sanitize fields, check passwords match, check password
// length bounds, then let the store enforce email uniqueness. Everything is
// checked before the (slow) hash and before any write.
func (s *Service) Register(ctx context.Context, in RegisterInput) (identity.PublicUser, string, error) {
	const op = "account.Register"

	fullName := identity.SanitizeText(in.FullName)
	email := identity.NormalizeEmail(in.Email)
	password := strings.TrimSpace(in.Password)
	retype := strings.TrimSpace(in.RetypePassword)

	if fullName == "" {
		return identity.PublicUser{}, "", identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "full name is required"}
	}
	if len(fullName) > MaxFullNameLen {
		return identity.PublicUser{}, "", identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "full name too long"}
	}
	if email == "" || len(email) > MaxEmailLen || !identity.ValidEmail(email) {
		return identity.PublicUser{}, "", identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "invalid email format"}
	}
	if password != retype {
		return identity.PublicUser{}, "", identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "passwords do not match"}
	}
	if !identity.ValidPasswordLength(password) {
		return identity.PublicUser{}, "", identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "password must be between 8 and 72 characters"}
	}

	hash, err := identity.HashPassword(password)
	if err != nil {
		return identity.PublicUser{}, "", fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	u, err := s.store.CreateUser(ctx, identity.CreateUserInput{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		Now:          now,
	})
	if err != nil {
		// ConflictError passes through untouched for the 409 mapping.
		return identity.PublicUser{}, "", err
	}

	token, err := s.codec.Issue(u.ID, now)
	if err != nil {
		return identity.PublicUser{}, "", fmt.Errorf("%s: %w", op, err)
	}

	return u.Public(), token, nil
}

// Authenticate verifies credentials and mints a fresh session token.
func (s *Service) Authenticate(ctx context.Context, in CredentialsInput) (identity.PublicUser, string, error) {
	const op = "account.Authenticate"

	email := identity.NormalizeEmail(in.Email)
	password := strings.TrimSpace(in.Password)

	if email == "" || password == "" {
		return identity.PublicUser{}, "", identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "email and password are required"}
	}

	u, err := s.store.UserByEmail(ctx, email)
	switch {
	case identity.IsNotFound(err):
		// Burn a comparison so unknown email costs the same as wrong password.
		identity.VerifyPassword(password, s.dummyHash)
		return identity.PublicUser{}, "", ErrInvalidCredentials
	case err != nil:
		return identity.PublicUser{}, "", fmt.Errorf("%s: %w", op, err)
	}

	if !identity.VerifyPassword(password, u.PasswordHash) {
		return identity.PublicUser{}, "", ErrInvalidCredentials
	}

	token, err := s.codec.Issue(u.ID, time.Now().UTC())
	if err != nil {
		return identity.PublicUser{}, "", fmt.Errorf("%s: %w", op, err)
	}

	return u.Public(), token, nil
}
