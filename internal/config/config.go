package config

import (
	"fmt"
	"os"
	"strconv"
)

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// GetDSN builds the lib/pq connection string.
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// Config is the healthdash service configuration, env-var driven.
type Config struct {
	HTTP struct {
		Addr string
	}

	// RepoBackend selects the dataset store: "postgres" (direct lib/pq)
	// or "supabase" (PostgREST endpoint of the reference deployment).
	RepoBackend string
	Database    DatabaseConfig
	Supabase    struct {
		URL    string
		APIKey string
	}

	Redis struct {
		Enabled  bool
		Addr     string
		Password string
		DB       int
	}

	Log struct {
		Level  string
		Format string
	}

	// Dashboard login, a static credential check (auth hardening is out of
	// scope; this only gates the UI).
	Dashboard struct {
		User     string
		Password string
	}
}

// Load reads configuration from environment variables with local-dev defaults.
func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.RepoBackend = getEnv("REPO_BACKEND", "postgres")
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "healthdash")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "10"), 10)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	cfg.Supabase.URL = getEnv("SUPABASE_URL", "")
	cfg.Supabase.APIKey = getEnv("SUPABASE_KEY", "")

	cfg.Redis.Enabled = getEnv("REDIS_ENABLED", "true") == "true"
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.Dashboard.User = getEnv("DASH_USER", "admin")
	cfg.Dashboard.Password = getEnv("DASH_PASSWORD", "ChangeMe123!")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
