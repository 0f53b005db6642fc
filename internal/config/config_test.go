package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigToml = `
[development]
environment = "development"
host = "localhost"
port = 8080
log_level = "trace"
log_to_stdout = true
postgres_host = "localhost"
postgres_port = "5432"
postgres_db_name = "trainingsmart_db"
redis_host = "localhost"
redis_port = "6379"
prometheus_metrics_host = "localhost"
prometheus_metrics_port = "2112"
ingest_rate_limit_allowed_per_min = 60
login_rate_limit_allowed_per_min = 5
score_cache_ttl_seconds = 300

[production]
environment = "production"
host = "0.0.0.0"
port = 9000
log_level = "debug"
logs_path = "/var/log/trainingsmart/service"
postgres_host = "db-host"
postgres_port = "5432"
postgres_db_name = "trainingsmart_db"
redis_host = "redis-host"
redis_port = "6379"
prometheus_metrics_host = "0.0.0.0"
prometheus_metrics_port = "2112"
ingest_rate_limit_allowed_per_min = 120
login_rate_limit_allowed_per_min = 5
score_cache_ttl_seconds = 600
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigToml), 0o600))
	return path
}

func TestLoad_Development(t *testing.T) {
	cfg, err := Load("dev", writeTestConfig(t))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "trace", cfg.LogLevel)
	assert.True(t, cfg.LogToStdout)
	assert.Equal(t, "trainingsmart_db", cfg.PostgresDBName)
	assert.Equal(t, 60, cfg.IngestRateLimitAllowedPerMin)
	assert.Equal(t, 300, cfg.ScoreCacheTTLSeconds)
}

func TestLoad_Production(t *testing.T) {
	cfg, err := Load("production", writeTestConfig(t))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "/var/log/trainingsmart/service", cfg.LogsPath)
	assert.Equal(t, 120, cfg.IngestRateLimitAllowedPerMin)
}

func TestLoad_UnknownEnv(t *testing.T) {
	cfg, err := Load("staging", writeTestConfig(t))
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "unknown env")
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load("dev", "/nonexistent/config.toml")
	require.Error(t, err)
	assert.Nil(t, cfg)
}
