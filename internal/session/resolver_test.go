package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"tally/internal/identity"
)

func newTestResolver(t *testing.T) (*Resolver, *Codec, *identity.MemoryStore) {
	t.Helper()
	codec, err := NewCodec(testConfig())
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	store := identity.NewMemoryStore()
	return NewResolver(codec, store), codec, store
}

func TestResolverHappyPath(t *testing.T) {
	resolver, codec, store := newTestResolver(t)
	ctx := context.Background()

	u, err := store.CreateUser(ctx, identity.CreateUserInput{
		FullName:     "Alice",
		Email:        "alice@example.com",
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	tok, err := codec.Issue(u.ID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	got, err := resolver.Resolve(ctx, tok)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("resolved %q, want %q", got.ID, u.ID)
	}
}

func TestResolverFailsClosed(t *testing.T) {
	resolver, codec, _ := newTestResolver(t)
	ctx := context.Background()

	// Token for a subject that was never created (account deleted after
	// issuance looks the same).
	orphan, err := codec.Issue("01HZZZZZZZZZZZZZZZZZZZZZZZ", time.Now().UTC())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Every failure mode maps to the same classification.
	for name, tok := range map[string]string{
		"absent":  "",
		"garbage": "not-a-token",
		"orphan":  orphan,
	} {
		if _, err := resolver.Resolve(ctx, tok); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("%s: got %v, want ErrUnauthenticated", name, err)
		}
	}
}
