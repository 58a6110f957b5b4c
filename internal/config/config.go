package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hongminglow/labubu-portal/internal/calculator"
	"github.com/hongminglow/labubu-portal/internal/remote"
)

// Session storage backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Default upstream service URLs.
const (
	DefaultAuthURL      = "https://functions.poehali.dev/feeb1c64-e0bd-49f0-85dd-f32b777141fd"
	DefaultLoansURL     = "https://functions.poehali.dev/f988b207-088e-4ea8-b22f-973a9f06acc9"
	DefaultReferralsURL = "https://functions.poehali.dev/7722ad06-a755-46eb-afe3-8cd3338d341c"
	DefaultCardURL      = "https://functions.poehali.dev/6b4c4b2a-e3ab-4a14-a254-adfab3583370"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port          string
	Upstreams     remote.Endpoints
	PublicBaseURL string
	CORSOrigins   []string

	SessionBackend string
	SessionTTL     time.Duration
	SessionCookie  string
	DatabaseURL    string
	RedisAddr      string
	RedisPassword  string

	SignupEnabled bool
	DailyRate     float64
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port: fallback(os.Getenv("PORT"), "8080"),
		Upstreams: remote.Endpoints{
			Auth:      fallback(os.Getenv("AUTH_API_URL"), DefaultAuthURL),
			Loans:     fallback(os.Getenv("LOANS_API_URL"), DefaultLoansURL),
			Referrals: fallback(os.Getenv("REFERRALS_API_URL"), DefaultReferralsURL),
			Card:      fallback(os.Getenv("CARD_API_URL"), DefaultCardURL),
		},
		CORSOrigins:    parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		SessionBackend: strings.ToLower(fallback(os.Getenv("SESSION_BACKEND"), BackendMemory)),
		SessionCookie:  fallback(os.Getenv("SESSION_COOKIE"), "portal_sid"),
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisAddr:      fallback(os.Getenv("REDIS_ADDR"), "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		SignupEnabled:  parseBool(os.Getenv("SIGNUP_ENABLED")),
		DailyRate:      calculator.DefaultDailyRate,
	}
	cfg.PublicBaseURL = strings.TrimRight(fallback(os.Getenv("PUBLIC_BASE_URL"), "http://localhost:"+cfg.Port), "/")

	hours := fallback(os.Getenv("SESSION_TTL_HOURS"), "720")
	if ttlHours, err := strconv.Atoi(hours); err == nil && ttlHours > 0 {
		cfg.SessionTTL = time.Duration(ttlHours) * time.Hour
	} else {
		cfg.SessionTTL = 720 * time.Hour
	}

	if raw := strings.TrimSpace(os.Getenv("DAILY_RATE")); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil || rate <= 0 {
			return Config{}, fmt.Errorf("DAILY_RATE must be a positive number, got %q", raw)
		}
		cfg.DailyRate = rate
	}

	switch cfg.SessionBackend {
	case BackendMemory, BackendRedis:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required for the postgres session backend")
		}
	default:
		return Config{}, fmt.Errorf("unknown SESSION_BACKEND %q", cfg.SessionBackend)
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// DurableSessions reports whether sessions survive a restart of the portal.
func (c Config) DurableSessions() bool {
	return c.SessionBackend != BackendMemory
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseBool(value string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	return err == nil && b
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
