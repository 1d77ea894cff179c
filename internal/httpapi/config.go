package httpapi

import (
	"net/http"
	"time"
)

// Config carries the HTTP-layer policy knobs.
//
// Cookie hardening is a deployment policy: production runs Secure +
// SameSite=None for the cross-site frontend, development runs plain
// SameSite=Lax over HTTP.
type Config struct {
	CookieName     string
	CookiePath     string
	CookieSecure   bool
	CookieSameSite http.SameSite

	// CookieMaxAge tracks the session token lifetime so the cookie
	// and the credential inside it expire together.
	CookieMaxAge time.Duration

	MaxBodyBytes int64
}

// DefaultConfig returns the development cookie policy.
func DefaultConfig() Config {
	return Config{
		CookieName:     "session",
		CookiePath:     "/",
		CookieSecure:   false,
		CookieSameSite: http.SameSiteLaxMode,
		CookieMaxAge:   7 * 24 * time.Hour,
		MaxBodyBytes:   1 << 20,
	}
}

// ProductionConfig returns the cross-site production cookie policy.
func ProductionConfig() Config {
	cfg := DefaultConfig()
	cfg.CookieSecure = true
	cfg.CookieSameSite = http.SameSiteNoneMode
	return cfg
}
