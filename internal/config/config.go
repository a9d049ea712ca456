package config

import (
	"os"
	"strconv"
	"time"
)

// Backend modes
const (
	BackendREST     = "rest"     // remote REST API (default)
	BackendPostgres = "postgres" // self-hosted PostgreSQL store
	BackendMemory   = "memory"   // in-process store for local development
)

// File placement policies for files inside folders
const (
	PlacementRoot       = "root"       // files only listed at root
	PlacementMembership = "membership" // files listed in the folder whose "files" array names them
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	JWKSURL     string
	JWTSecret   string // HS256 secret, used only when JWKSURL is empty
	// Backend
	Backend     string
	APIBaseURL  string
	APITimeout  time.Duration
	DatabaseURL string
	// DemoCompanyID is the company loaded into the memory backend and seeded into PostgreSQL
	DemoCompanyID string
	// Document library
	SnapshotTTL   time.Duration
	FilePlacement string
	DateLayout    string
	// SessionIdleTimeout evicts sessions unused for this long (0 keeps them until logout)
	SessionIdleTimeout time.Duration
	// Logging
	LogDir      string
	LogMaxFiles int
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),
		JWKSURL:     getEnv("JWKS_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		// Backend
		Backend:       getEnv("BACKEND", BackendREST),
		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:8000"),
		APITimeout:    getDuration("API_TIMEOUT", 15*time.Second),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		DemoCompanyID: getEnv("DEMO_COMPANY_ID", "demo-company"),
		// Document library
		SnapshotTTL:   getDuration("SNAPSHOT_TTL", 30*time.Second),
		FilePlacement: getEnv("FILE_PLACEMENT", PlacementRoot),
		DateLayout:    getEnv("DATE_LAYOUT", "1/2/2006"),
		// Sessions
		SessionIdleTimeout: getDuration("SESSION_IDLE_TIMEOUT", 12*time.Hour),
		// Logging
		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getInt("LOG_MAX_FILES", 10),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration parses Go duration syntax ("30s", "2m"); invalid values fall back to the default
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
