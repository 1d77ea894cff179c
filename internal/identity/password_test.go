package identity

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	digest, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if digest == "correct horse battery" {
		t.Fatalf("digest must not equal plaintext")
	}
	if !VerifyPassword("correct horse battery", digest) {
		t.Fatalf("expected verification to succeed")
	}
	if VerifyPassword("wrong password!", digest) {
		t.Fatalf("expected verification to fail")
	}
}

func TestHashPasswordBounds(t *testing.T) {
	if _, err := HashPassword("short1!"); !IsInvalidInput(err) {
		t.Fatalf("7-byte password: got %v, want invalid input", err)
	}
	if _, err := HashPassword(strings.Repeat("x", 73)); !IsInvalidInput(err) {
		t.Fatalf("73-byte password: got %v, want invalid input", err)
	}
	if _, err := HashPassword(strings.Repeat("x", 72)); err != nil {
		t.Fatalf("72-byte password: %v", err)
	}
}

func TestVerifyPasswordMalformedDigest(t *testing.T) {
	// Malformed digests report false, never panic or error out.
	if VerifyPassword("whatever123", "not-a-bcrypt-digest") {
		t.Fatalf("expected false for malformed digest")
	}
	if VerifyPassword("whatever123", "") {
		t.Fatalf("expected false for empty digest")
	}
}
