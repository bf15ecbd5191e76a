package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration. It is constructed once at startup
// and handed to components explicitly; nothing reads the environment after Load.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	HTTPAddr string
	LogLevel string

	// DatabaseURL accepts a sqlite file path, sqlite://path, mysql://... or
	// postgres://... URL. See pkg/db.
	DatabaseURL string

	AllowedOrigins []string

	// DevEndpoints enables the seed/cleanup style endpoints outside production.
	DevEndpoints bool
}

// Load loads configuration from environment variables and an optional .env file.
func Load() Config {
	_ = godotenv.Load()

	environment := getenv("ENVIRONMENT", "development")

	return Config{
		AppName:        getenv("APP_SERVICE", "serendigo-pos"),
		AppVersion:     getenv("APP_VERSION", "0.1.0"),
		Environment:    environment,
		HTTPAddr:       getenv("HTTP_ADDR", ":8080"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		DatabaseURL:    getenv("DATABASE_URL", defaultDatabaseURL()),
		AllowedOrigins: splitCSV(getenv("ALLOWED_ORIGINS", "http://localhost:3000")),
		DevEndpoints:   getenvBool("DEV_ENDPOINTS", environment != "production"),
	}
}

// defaultDatabaseURL prefers an existing local sqlite file so a fresh checkout
// keeps working against data produced by earlier runs.
func defaultDatabaseURL() string {
	if _, err := os.Stat("serendigo.db"); err == nil {
		return "sqlite://serendigo.db"
	}
	return "sqlite://dev.db"
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
