package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Secret = []byte("0123456789abcdef0123456789abcdef")
	return cfg
}

func TestCodecIssueAndValidate(t *testing.T) {
	codec, err := NewCodec(testConfig())
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	now := time.Now().UTC()
	tok, err := codec.Issue("01HZZZZZZZZZZZZZZZZZZZZZZZ", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	subject, err := codec.Validate(tok, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if subject != "01HZZZZZZZZZZZZZZZZZZZZZZZ" {
		t.Fatalf("subject = %q", subject)
	}
}

func TestCodecExpiryBoundary(t *testing.T) {
	cfg := testConfig()
	codec, err := NewCodec(cfg)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	now := time.Now().UTC()
	tok, err := codec.Issue("subject-1", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Just inside the lifetime: accepted.
	if _, err := codec.Validate(tok, now.Add(cfg.TTL-time.Second)); err != nil {
		t.Fatalf("expected valid just before expiry, got %v", err)
	}
	// Just past the lifetime: rejected.
	if _, err := codec.Validate(tok, now.Add(cfg.TTL+time.Second)); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken just after expiry, got %v", err)
	}
}

func TestCodecRejectsForeignSignature(t *testing.T) {
	codec, err := NewCodec(testConfig())
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	other := testConfig()
	other.Secret = []byte("ffffffffffffffffffffffffffffffff")
	otherCodec, err := NewCodec(other)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	now := time.Now().UTC()
	tok, err := otherCodec.Issue("subject-1", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := codec.Validate(tok, now); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

func TestCodecRejectsWrongAlgorithm(t *testing.T) {
	cfg := testConfig()
	codec, err := NewCodec(cfg)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   "subject-1",
		Issuer:    cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}

	// Same secret, different algorithm: must be rejected outright.
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString(cfg.Secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := codec.Validate(tok, now); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for HS384 token, got %v", err)
	}
}

func TestCodecRejectsMissingSubject(t *testing.T) {
	cfg := testConfig()
	codec, err := NewCodec(cfg)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cfg.Secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := codec.Validate(tok, now); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for missing subject, got %v", err)
	}
}

func TestCodecRejectsGarbage(t *testing.T) {
	codec, err := NewCodec(testConfig())
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	for _, tok := range []string{"", "   ", "not.a.jwt", "a.b"} {
		if _, err := codec.Validate(tok, time.Now().UTC()); err != ErrInvalidToken {
			t.Fatalf("Validate(%q): got %v, want ErrInvalidToken", tok, err)
		}
	}
}

func TestNewCodecRequiresSecret(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Secret = []byte("too-short")
	if _, err := NewCodec(cfg); err != ErrConfig {
		t.Fatalf("expected ErrConfig for short secret, got %v", err)
	}
}
