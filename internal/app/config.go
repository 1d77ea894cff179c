package app

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr string

	// Environment is "development" or "production"; it selects the cookie
	// hardening policy, nothing else.
	Environment string

	LogLevel  string
	LogPretty bool

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int

	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	// CORSOrigins are the exact origins allowed to make credentialed
	// cross-site requests (comma-separated in the env var).
	CORSOrigins []string
}

// LoadConfig loads Config from environment variables with defaults.
// A .env file in the working directory is read first when present.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr:    EnvString("TALLY_HTTP_ADDR", "0.0.0.0:8080"),
		Environment: strings.ToLower(EnvString("TALLY_ENV", "development")),
		LogLevel:    EnvString("TALLY_LOG_LEVEL", "info"),
		LogPretty:   EnvBool("TALLY_LOG_PRETTY", false),

		ReadHeaderTimeout: EnvDuration("TALLY_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       EnvDuration("TALLY_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      EnvDuration("TALLY_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       EnvDuration("TALLY_HTTP_IDLE_TIMEOUT", 60*time.Second),

		MaxHeaderBytes: EnvInt("TALLY_HTTP_MAX_HEADER_BYTES", 1<<20),

		DatabaseURL: EnvString("TALLY_DATABASE_URL", ""),
		DBMaxConns:  EnvInt32("TALLY_DB_MAX_CONNS", 10),
		DBMinConns:  EnvInt32("TALLY_DB_MIN_CONNS", 0),

		CORSOrigins: splitOrigins(EnvString("TALLY_CORS_ORIGINS", "http://localhost:3000")),
	}
}

// IsProduction reports whether the production cookie policy applies.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
