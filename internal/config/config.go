package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string

	JWTSecret     string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string

	LayoutPath string
	ExportDir  string
	ChromePath string

	SeedOnStart bool
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "3000"),
		Environment: getEnv("ENVIRONMENT", "development"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		TokenTTL:      time.Duration(getIntEnv("TOKEN_TTL_MINUTES", 720)) * time.Minute,
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		LayoutPath: getEnv("LAYOUT_PATH", ""),
		ExportDir:  getEnv("EXPORT_DIR", "portfolio-data/exports"),
		ChromePath: getEnv("CHROME_PATH", ""),

		SeedOnStart: getBoolEnv("SEED_ON_START", false),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AuthEnabled reports whether admin login is configured. Without it every
// write is rejected by the access policy.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != "" && c.AdminPassword != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
