package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Retry.Attempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Retry.WaitMultiplier)
	assert.Equal(t, 5*time.Second, cfg.Retry.MaxWait)
	assert.True(t, cfg.Search.RefreshConcurrent)
	assert.Equal(t, 20, cfg.Search.DefaultLimit)
	assert.Equal(t, "./docs/swagger.json", cfg.HTTP.SwaggerFile)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("DB_RETRY_ATTEMPTS", "5")
	t.Setenv("DB_RETRY_WAIT_MULTIPLIER", "0.25")
	t.Setenv("SEARCH_REFRESH_CONCURRENT", "false")
	t.Setenv("DB_STATEMENT_TIMEOUT_SECONDS", "15")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Retry.Attempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Retry.WaitMultiplier)
	assert.False(t, cfg.Search.RefreshConcurrent)
	assert.Equal(t, 15*time.Second, cfg.DB.StatementTimeout)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("DB_RETRY_ATTEMPTS", "0")
	_, err := Load()
	assert.Error(t, err)
}

func TestConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "proveo", Password: "p@ss:w/rd", DBName: "proveo", SSLMode: "disable"}
	assert.Equal(t, "postgres://proveo:p%40ss%3Aw%2Frd@db:5432/proveo?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
