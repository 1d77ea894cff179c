package identity

import (
	"regexp"
	"strings"
)

// SanitizeText strips control characters (keeping tab, newline and carriage
// return) and trims surrounding whitespace. Every free-text field crossing the
// service boundary goes through this before validation.
func SanitizeText(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// NormalizeEmail performs case-insensitive canonicalization.
func NormalizeEmail(s string) string {
	return strings.ToLower(SanitizeText(s))
}

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether s looks like an email address. The check is a
// shape check, not RFC 5322 parsing; deliverability is not this layer's job.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}
