package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "data/activities.json", cfg.Storage.DataFile)
	assert.Equal(t, "src/static", cfg.Storage.StaticDir)
	assert.False(t, cfg.Storage.SeedDemo)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("SERVER_REQUEST_TIMEOUT", "5s")
	t.Setenv("DATA_FILE", "/tmp/acts.json")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("APP_ENVIRONMENT", "production")
	t.Setenv("SEED_DEMO", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "/tmp/acts.json", cfg.Storage.DataFile)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.Storage.SeedDemo)
}

func TestLoadEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("STORAGE_STATIC_DIR=web\nLOG_LEVEL=debug\nSERVER_ADDR=:7000\n"), 0o600))

	// Process environment wins over the file.
	t.Setenv("SERVER_ADDR", ":6000")
	t.Cleanup(func() {
		_ = os.Unsetenv("STORAGE_STATIC_DIR")
		_ = os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "web", cfg.Storage.StaticDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, ":6000", cfg.Server.Addr)
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.format")
}

func TestValidate(t *testing.T) {
	cfg := Config{
		Server:  Server{Addr: "", ShutdownTimeout: time.Second, RequestTimeout: 0},
		Storage: Storage{DataFile: " "},
		Logging: Logging{Format: "json"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.addr is required")
	assert.Contains(t, err.Error(), "server.request_timeout must be positive")
	assert.Contains(t, err.Error(), "storage.data_file is required")
}
