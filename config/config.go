// Package config reads runtime settings from the environment, optionally
// seeded from a .env file.
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

type Config struct {
	Port    string
	GinMode string

	DB DBConfig

	JWTSecret     string
	TokenTTL      time.Duration
	ResetTokenTTL time.Duration
	PublicBaseURL string // empty means derive from the request host

	SMTP SMTPConfig

	CORSOrigins []string
	SeedData    bool
}

type DBConfig struct {
	Driver     string // "postgres" or "sqlite"
	URL        string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

// DSN builds the postgres connection string, preferring DATABASE_URL.
func (d DBConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Enabled is false when any setting needed to reach a server is missing.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.Port > 0 && s.User != "" && s.Password != ""
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

// Load reads .env if present and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so tests can supply their own.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:          get("PORT", "8080"),
		GinMode:       get("GIN_MODE", ""),
		JWTSecret:     getenv("JWT_SECRET"),
		PublicBaseURL: strings.TrimRight(get("PUBLIC_BASE_URL", ""), "/"),
		DB: DBConfig{
			Driver:     strings.ToLower(get("DB_DRIVER", "postgres")),
			URL:        get("DATABASE_URL", ""),
			Host:       get("DB_HOST", "localhost"),
			Port:       get("DB_PORT", "5432"),
			User:       get("DB_USER", "postgres"),
			Password:   getenv("DB_PASSWORD"),
			Name:       get("DB_NAME", "glamourcosmetics"),
			SSLMode:    get("DB_SSLMODE", "disable"),
			SQLitePath: get("SQLITE_PATH", "database.sqlite"),
		},
		SMTP: SMTPConfig{
			Host:     get("SMTP_HOST", ""),
			User:     get("SMTP_USER", ""),
			Password: getenv("SMTP_PASS"),
			From:     get("SMTP_FROM", "no-reply@example.com"),
		},
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	switch cfg.DB.Driver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}

	var err error
	if cfg.TokenTTL, err = time.ParseDuration(get("TOKEN_TTL", "168h")); err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if cfg.ResetTokenTTL, err = time.ParseDuration(get("RESET_TOKEN_TTL", "60m")); err != nil {
		return nil, fmt.Errorf("invalid RESET_TOKEN_TTL: %w", err)
	}
	if cfg.SMTP.Port, err = strconv.Atoi(get("SMTP_PORT", "587")); err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	if cfg.SeedData, err = strconv.ParseBool(get("SEED_DATA", "false")); err != nil {
		return nil, fmt.Errorf("invalid SEED_DATA: %w", err)
	}

	for _, o := range strings.Split(get("CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	return cfg, nil
}
