// Package config loads and validates process configuration.
//
// Configuration comes from the environment, optionally seeded from a .env
// file (godotenv) for local development — real environments set variables
// directly. Validation happens once, at startup: a broken configuration is
// a fatal startup error, never a runtime surprise.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// minJWTSecretLen is the floor for the HS256 signing secret. Shorter
// secrets make the token scheme brute-forceable.
const minJWTSecretLen = 32

// Config is the validated process configuration.
type Config struct {
	Port        int
	Environment string   // "development", "production", or "test"
	DBPath      string   // SQLite database file, or ":memory:"
	JWTSecret   string   // HS256 signing secret, >= 32 chars
	CORSOrigins []string // allowed CORS origins
}

// Load reads configuration from the environment (after loading .env if
// present) and validates it.
//
// Required: JWT_SECRET (>= 32 characters).
// Optional with defaults: PORT (3001), ENVIRONMENT ("development"),
// DB_PATH ("data/auth.db"), CORS_ORIGIN ("http://localhost:3000",
// comma-separated list accepted).
func Load() (Config, error) {
	// Missing .env is fine — production sets real env vars.
	_ = godotenv.Load()

	cfg := Config{
		Port:        3001,
		Environment: envOr("ENVIRONMENT", "development"),
		DBPath:      envOr("DB_PATH", "data/auth.db"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid PORT %q: %w", portStr, err)
		}
		cfg.Port = port
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("config: JWT_SECRET is required")
	}
	if len(cfg.JWTSecret) < minJWTSecretLen {
		return Config{}, fmt.Errorf("config: JWT_SECRET must be at least %d characters", minJWTSecretLen)
	}

	switch cfg.Environment {
	case "development", "production", "test":
	default:
		return Config{}, fmt.Errorf("config: invalid ENVIRONMENT %q", cfg.Environment)
	}

	cfg.CORSOrigins = splitOrigins(envOr("CORS_ORIGIN", "http://localhost:3000"))

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitOrigins parses a comma-separated origin list, trimming whitespace
// and trailing slashes ("https://a.com/" and "https://a.com" are the same
// origin to a browser, but not to a string comparison).
func splitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if o := strings.TrimRight(strings.TrimSpace(part), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
