package account

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tally/internal/identity"
	"tally/internal/session"
)

func newTestService(t *testing.T) (*Service, *session.Resolver, *identity.MemoryStore) {
	t.Helper()

	cfg := session.DefaultConfig()
	cfg.Secret = []byte("0123456789abcdef0123456789abcdef")
	codec, err := session.NewCodec(cfg)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	store := identity.NewMemoryStore()
	svc, err := NewService(store, codec)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, session.NewResolver(codec, store), store
}

func validSignup() RegisterInput {
	return RegisterInput{
		FullName:       "Alice Doe",
		Email:          "Alice@Example.com",
		Password:       "password",
		RetypePassword: "password",
	}
}

func TestRegisterTokenResolvesToCreatedPrincipal(t *testing.T) {
	svc, resolver, _ := newTestService(t)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, validSignup())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a non-empty token")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}

	principal, err := resolver.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if principal.ID != user.ID {
		t.Fatalf("token subject %q, want %q", principal.ID, user.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	cases := map[string]RegisterInput{
		"short password": func() RegisterInput {
			in := validSignup()
			in.Password, in.RetypePassword = "short1!", "short1!"
			return in
		}(),
		"long password": func() RegisterInput {
			in := validSignup()
			p := strings.Repeat("x", 73)
			in.Password, in.RetypePassword = p, p
			return in
		}(),
		"mismatch": func() RegisterInput {
			in := validSignup()
			in.RetypePassword = "different1"
			return in
		}(),
		"bad email": func() RegisterInput {
			in := validSignup()
			in.Email = "not-an-email"
			return in
		}(),
		"empty name": func() RegisterInput {
			in := validSignup()
			in.FullName = "  \x01 "
			return in
		}(),
	}

	for name, in := range cases {
		if _, _, err := svc.Register(ctx, in); !identity.IsInvalidInput(err) {
			t.Fatalf("%s: got %v, want invalid input", name, err)
		}
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, validSignup()); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	// Same mailbox, different case: still a conflict, not a generic error.
	in := validSignup()
	in.Email = "ALICE@example.COM"
	_, _, err := svc.Register(ctx, in)
	if !identity.IsConflict(err) {
		t.Fatalf("got %v, want conflict", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, _, err := svc.Register(ctx, validSignup())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, token, err := svc.Authenticate(ctx, CredentialsInput{
		Email:    "alice@example.com",
		Password: "password",
	})
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.ID != created.ID || token == "" {
		t.Fatalf("unexpected result: id=%q token empty=%v", user.ID, token == "")
	}
}

func TestAuthenticateFailureIsIndistinguishable(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, validSignup()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, wrongPassword := svc.Authenticate(ctx, CredentialsInput{
		Email:    "alice@example.com",
		Password: "not-the-password",
	})
	_, _, unknownEmail := svc.Authenticate(ctx, CredentialsInput{
		Email:    "nobody@example.com",
		Password: "password",
	})

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v", unknownEmail)
	}
	// Identical classification and identical message by cause.
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("failure causes are distinguishable: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestAuthenticateMissingFields(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for name, in := range map[string]CredentialsInput{
		"no email":    {Password: "password"},
		"no password": {Email: "alice@example.com"},
	} {
		if _, _, err := svc.Authenticate(ctx, in); !identity.IsInvalidInput(err) {
			t.Fatalf("%s: got %v, want invalid input", name, err)
		}
	}
}

func TestPasswordHashNeverExposed(t *testing.T) {
	svc, _, store := newTestService(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, validSignup())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	stored, err := store.UserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("UserByID: %v", err)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "password" {
		t.Fatalf("stored hash looks wrong")
	}
	if stored.Public() != user {
		t.Fatalf("public view mismatch")
	}
	if time.Since(stored.CreatedAt) > time.Minute {
		t.Fatalf("created_at not stamped")
	}
}
