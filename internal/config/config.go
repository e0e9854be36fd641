// Package config reads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const minJWTSecretLen = 32

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Env             string // "development" | "production"
	Port            string
	ShutdownTimeout time.Duration

	LogLevel  string
	LogPretty bool

	// Postgres; empty DatabaseURL selects the in-memory stores.
	DatabaseURL    string
	DBMaxOpenConns int

	// Redis catalog cache; empty RedisAddr disables it.
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CatalogCacheTTL time.Duration

	JWTSecret         string
	AdminPasswordHash string
	AdminTokenTTL     time.Duration

	MetricsToken string
}

// Development is opt-in: only STOREFRONT_ENV=development relaxes secrets.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// Load reads a .env file in development and then the process environment.
func Load() (*Config, error) {
	env := os.Getenv("STOREFRONT_ENV")
	if env == "" || env == "development" {
		// a missing .env is fine
		_ = godotenv.Load()
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary variable source.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	p := parser{lookup: lookup}

	cfg := &Config{
		Env:             p.str("STOREFRONT_ENV", "production"),
		Port:            p.str("PORT", "8080"),
		ShutdownTimeout: p.duration("SHUTDOWN_TIMEOUT", 10*time.Second),

		LogLevel:  p.str("LOG_LEVEL", "info"),
		LogPretty: p.boolVal("LOG_PRETTY", false),

		DatabaseURL:    p.str("DATABASE_URL", ""),
		DBMaxOpenConns: p.intVal("DB_MAX_OPEN_CONNS", 10),

		RedisAddr:       p.str("REDIS_ADDR", ""),
		RedisPassword:   p.str("REDIS_PASSWORD", ""),
		RedisDB:         p.intVal("REDIS_DB", 0),
		CatalogCacheTTL: p.duration("CATALOG_CACHE_TTL", 60*time.Second),

		JWTSecret:         p.str("JWT_SECRET", ""),
		AdminPasswordHash: p.str("ADMIN_PASSWORD_HASH", ""),
		AdminTokenTTL:     p.duration("ADMIN_TOKEN_TTL", 12*time.Hour),

		MetricsToken: p.str("METRICS_TOKEN", ""),
	}

	if len(p.errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, errors.Join(p.errs...))
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Development() {
		if c.JWTSecret == "" {
			c.JWTSecret = "dev-secret-dev-secret-dev-secret!"
		}
		return nil
	}
	if len(c.JWTSecret) < minJWTSecretLen {
		return fmt.Errorf("%w: JWT_SECRET must be at least %d chars", ErrInvalid, minJWTSecretLen)
	}
	if c.AdminPasswordHash == "" {
		return fmt.Errorf("%w: ADMIN_PASSWORD_HASH is required", ErrInvalid)
	}
	return nil
}

type parser struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (p *parser) str(k, def string) string {
	if v, ok := p.lookup(k); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (p *parser) intVal(k string, def int) int {
	v := p.str(k, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", k, err))
		return def
	}
	return n
}

func (p *parser) boolVal(k string, def bool) bool {
	v := p.str(k, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", k, err))
		return def
	}
	return b
}

func (p *parser) duration(k string, def time.Duration) time.Duration {
	v := p.str(k, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", k, err))
		return def
	}
	return d
}
