// Package config supplies the active profile and app settings to the
// composition root. It reads .env (if present) plus environment variables;
// the container core never touches the environment itself.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/portico-di/portico/framework/container"
)

// Config is the typed bootstrap configuration.
type Config struct {
	App AppConfig
}

type AppConfig struct {
	Name    string
	Profile container.Profile // active deployment profile
	Debug   bool
	Port    string
	Eager   bool // construct all singletons at finalize
}

// Load reads .env (if present) and populates a Config from environment
// variables. Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name:    env("APP_NAME", "portico"),
			Profile: container.NewProfile(env("PORTICO_PROFILE", string(container.Development))),
			Debug:   envBool("APP_DEBUG", true),
			Port:    env("APP_PORT", "8000"),
			Eager:   envBool("PORTICO_EAGER", false),
		},
	}
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
