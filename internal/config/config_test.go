package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, 30, cfg.Server.RequestTimeoutSec)
	require.Equal(t, 100, cfg.FRED.MaxRequestsPerMinute)
	require.Equal(t, 10, cfg.FRED.Burst)
	require.Equal(t, 300, cfg.FRED.CacheTTLSeconds)
	require.Equal(t, "data", cfg.Output.Dir)
	require.Equal(t, "info", cfg.LogLevel)
	require.Empty(t, cfg.FRED.APIKey)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
        "server": {"port": "9090", "request_timeout_sec": 15},
        "fred": {"max_requests_per_minute": 60},
        "output": {"dir": "/tmp/out"},
        "catalog_path": "catalog.yaml",
        "audit": {"sqlite_path": "audit.db"},
        "log_level": "debug"
    }`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Server.Port)
	require.Equal(t, 15, cfg.Server.RequestTimeoutSec)
	require.Equal(t, 60, cfg.FRED.MaxRequestsPerMinute)
	require.Equal(t, "/tmp/out", cfg.Output.Dir)
	require.Equal(t, "catalog.yaml", cfg.CatalogPath)
	require.Equal(t, "audit.db", cfg.Audit.SQLitePath)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("REQUEST_TIMEOUT_SEC", "45")
	t.Setenv("FRED_API_KEY", "secret")
	t.Setenv("FRED_BASE_URL", "http://localhost:9999/fred")
	t.Setenv("FRED_MAX_RPM", "50")
	t.Setenv("FRED_MIN_INTERVAL_SEC", "1")
	t.Setenv("FRED_BURST", "5")
	t.Setenv("FRED_CACHE_TTL_SEC", "0")
	t.Setenv("DATA_DIR", "/srv/data")
	t.Setenv("CATALOG_FILE", "series.yaml")
	t.Setenv("AUDIT_SQLITE_PATH", "/srv/audit.db")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	require.Equal(t, "7070", cfg.Server.Port)
	require.Equal(t, 45, cfg.Server.RequestTimeoutSec)
	require.Equal(t, "secret", cfg.FRED.APIKey)
	require.Equal(t, "http://localhost:9999/fred", cfg.FRED.BaseURL)
	require.Equal(t, 50, cfg.FRED.MaxRequestsPerMinute)
	require.Equal(t, 1, cfg.FRED.MinRequestIntervalSec)
	require.Equal(t, 5, cfg.FRED.Burst)
	require.Equal(t, 0, cfg.FRED.CacheTTLSeconds)
	require.Equal(t, "/srv/data", cfg.Output.Dir)
	require.Equal(t, "series.yaml", cfg.CatalogPath)
	require.Equal(t, "/srv/audit.db", cfg.Audit.SQLitePath)
	require.Equal(t, "warn", cfg.LogLevel)
}

func TestEnvIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT_SEC", "not-a-number")
	t.Setenv("FRED_BURST", "-3")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	require.Equal(t, 30, cfg.Server.RequestTimeoutSec)
	require.Equal(t, 10, cfg.FRED.Burst)
}
