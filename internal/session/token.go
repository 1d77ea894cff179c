package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// signingMethod is the fixed token algorithm. Verification rejects any token
// claiming a different algorithm, which closes the classic downgrade/confusion
// attacks ("none", RS256-as-HS256).
var signingMethod = jwt.SigningMethodHS256

// Codec issues and verifies session tokens.
type Codec struct {
	cfg Config
}

// NewCodec builds a Codec from config. The secret must be present and at
// least MinSecretLen bytes.
func NewCodec(cfg Config) (*Codec, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Codec{cfg: cfg}, nil
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration { return c.cfg.TTL }

// Issue mints a signed token for the given subject, expiring at now + TTL.
func (c *Codec) Issue(subject string, now time.Time) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", ErrInvalidToken
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    c.cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.cfg.TTL)),
	}

	return jwt.NewWithClaims(signingMethod, claims).SignedString(c.cfg.Secret)
}

// Validate verifies a token at the given instant and returns its subject.
//
// It returns ErrInvalidToken (and nothing more specific) when the signature
// does not verify, the algorithm differs from the configured one, the token
// is expired at now, the subject claim is absent, or decoding fails. No part
// of an unverified payload is ever trusted.
func (c *Codec) Validate(token string, now time.Time) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", ErrInvalidToken
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) {
			return c.cfg.Secret, nil
		},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithIssuer(c.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return "", ErrInvalidToken
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return "", ErrInvalidToken
	}
	return subject, nil
}
