package session

import (
	"os"
	"strings"
	"time"
)

// MinSecretLen is the minimum signing secret size in bytes (HMAC-SHA256).
const MinSecretLen = 32

// Config defines the runtime configuration for session tokens.
//
// The signing secret, lifetime and algorithm are established once at startup
// and read-only thereafter; nothing in this package mutates them per call.
type Config struct {
	// Secret is the server-held HMAC signing key (raw bytes, min 32).
	Secret []byte

	// TTL is the token lifetime from issuance.
	TTL time.Duration

	// Issuer is the value set in the "iss" claim.
	Issuer string
}

// DefaultConfig returns the default configuration minus the secret, which has
// no safe default and must come from the environment.
func DefaultConfig() Config {
	return Config{
		TTL:    7 * 24 * time.Hour,
		Issuer: "tally",
	}
}

// LoadConfigFromEnv loads session configuration from environment variables.
//
// Required:
//   - TALLY_SESSION_SECRET (>= 32 bytes)
//
// Optional:
//   - TALLY_SESSION_TTL (Go duration string)
//   - TALLY_SESSION_ISSUER
//
// Returns ErrConfig if configuration is invalid.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	secret := os.Getenv("TALLY_SESSION_SECRET")
	if len(secret) < MinSecretLen {
		return Config{}, ErrConfig
	}
	cfg.Secret = []byte(secret)

	if v := strings.TrimSpace(os.Getenv("TALLY_SESSION_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.TTL = d
	}
	if v := strings.TrimSpace(os.Getenv("TALLY_SESSION_ISSUER")); v != "" {
		cfg.Issuer = v
	}

	return cfg, nil
}

func (c Config) validate() error {
	if len(c.Secret) < MinSecretLen {
		return ErrConfig
	}
	if c.TTL <= 0 {
		return ErrConfig
	}
	if strings.TrimSpace(c.Issuer) == "" {
		return ErrConfig
	}
	return nil
}
