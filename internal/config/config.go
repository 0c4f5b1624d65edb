package config

import (
	"errors"
	"os"
)

// JWTSecret signs every session and reset token. There is deliberately no
// fallback value: starting with a guessable secret is worse than not starting.
var JWTSecret string

// Load reads process configuration from the environment. It must run before
// anything issues or verifies tokens.
func Load() error {
	JWTSecret = os.Getenv("JWT_SECRET")
	if JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	return nil
}

// DatabaseURL returns the postgres DSN, with a local-dev fallback.
func DatabaseURL() string {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=educonnect port=5432 sslmode=disable"
	}
	return dsn
}

// Port returns the HTTP listen port.
func Port() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return port
}
