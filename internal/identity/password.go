package identity

import "golang.org/x/crypto/bcrypt"

// Password length policy, in bytes of the trimmed plaintext.
// The upper bound is bcrypt's input limit; callers must reject out-of-bounds
// passwords with a validation error before ever calling HashPassword.
const (
	PasswordMinLen = 8
	PasswordMaxLen = 72
)

// ValidPasswordLength reports whether the plaintext is within policy bounds.
func ValidPasswordLength(plain string) bool {
	return len(plain) >= PasswordMinLen && len(plain) <= PasswordMaxLen
}

// HashPassword returns a salted bcrypt digest of the plaintext.
// The salt is embedded in the digest; no extra state is needed to verify.
func HashPassword(plain string) (string, error) {
	if !ValidPasswordLength(plain) {
		return "", invalid("identity.HashPassword", "password length out of bounds")
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword checks a plaintext against a bcrypt digest.
// It returns false (never an error) on mismatch or on a malformed digest.
func VerifyPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
