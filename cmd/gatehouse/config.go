package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the process configuration, loaded from the environment (and
// optionally a .env file).
type Config struct {
	// Address to serve on
	Addr string

	// Secret used to sign the auth token cookie.  Required - startup fails
	// fast when it is absent instead of falling back to an embedded default.
	SessionSecret string

	// Google Cloud project for the Datastore-backed credential store.  When
	// empty the server falls back to the in-memory store (dev only).
	DatastoreProject string

	// Optional Redis address for the session store.  When empty sessions
	// live in process memory.
	RedisAddr string
}

// LoadConfig reads configuration from the environment.  A .env file in the
// working directory is loaded first if present.
func LoadConfig() (*Config, error) {
	// Missing .env is fine - the environment may be set directly
	_ = godotenv.Load()

	cfg := &Config{
		Addr:             getEnv("GATEHOUSE_ADDR", ":3000"),
		SessionSecret:    os.Getenv("GATEHOUSE_SESSION_SECRET"),
		DatastoreProject: os.Getenv("DATASTORE_PROJECT_ID"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
	}

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("GATEHOUSE_SESSION_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
