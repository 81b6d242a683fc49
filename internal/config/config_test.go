package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "postgres", cfg.RepoBackend)
	assert.Equal(t, "healthdash", cfg.Database.Database)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Redis.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("REPO_BACKEND", "supabase")
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("DB_PORT", "15432")
	t.Setenv("REDIS_ENABLED", "false")

	cfg := Load()
	assert.Equal(t, "supabase", cfg.RepoBackend)
	assert.Equal(t, "https://example.supabase.co", cfg.Supabase.URL)
	assert.Equal(t, 15432, cfg.Database.Port)
	assert.False(t, cfg.Redis.Enabled)
}

func TestGetDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5432, User: "u", Password: "p",
		Database: "healthdash", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=u password=p dbname=healthdash sslmode=disable",
		cfg.GetDSN(),
	)
}

func TestParseInt_FallsBackOnGarbage(t *testing.T) {
	assert.Equal(t, 7, parseInt("not-a-number", 7))
	assert.Equal(t, 42, parseInt("42", 7))
}
