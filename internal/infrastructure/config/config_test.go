package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)

	assert.Equal(t, DriverDisk, cfg.Storage.Driver)
	assert.Equal(t, []string{"localhost:2379"}, cfg.Storage.Etcd.Endpoints)
	assert.Equal(t, 1920, cfg.Desktop.ViewportWidth)
	assert.Equal(t, 1080, cfg.Desktop.ViewportHeight)

	require.NoError(t, cfg.Validate())
}

func TestLoadMatchesDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":               "9000",
		"HOST":               "127.0.0.1",
		"LOG_LEVEL":          "debug",
		"LOG_DEV":            "true",
		"RATE_LIMIT_RPS":     "500",
		"RATE_LIMIT_BURST":   "1000",
		"RATE_LIMIT_ENABLED": "false",
		"STORAGE_DRIVER":     "etcd",
		"ETCD_ENDPOINTS":     "etcd-0:2379,etcd-1:2379",
		"ETCD_PREFIX":        "/desk",
		"ETCD_DIAL_TIMEOUT":  "2s",
		"POSTGRES_PORT":      "6543",
		"VIEWPORT_WIDTH":     "1280",
		"VIEWPORT_HEIGHT":    "720",

		"STORAGE_BREAKER_FAILURES": "3",
		"STORAGE_BREAKER_COOLDOWN": "1m",
		"CORS_ORIGINS":            "http://localhost:5173,https://desk.example.com",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, DriverEtcd, cfg.Storage.Driver)
	assert.Equal(t, []string{"etcd-0:2379", "etcd-1:2379"}, cfg.Storage.Etcd.Endpoints)
	assert.Equal(t, "/desk", cfg.Storage.Etcd.Prefix)
	assert.Equal(t, 2*time.Second, cfg.Storage.Etcd.DialTimeout)
	assert.Equal(t, 6543, cfg.Storage.Postgres.Port)
	assert.Equal(t, 1280, cfg.Desktop.ViewportWidth)
	assert.Equal(t, 720, cfg.Desktop.ViewportHeight)
	assert.Equal(t, uint32(3), cfg.Storage.Breaker.Failures)
	assert.Equal(t, time.Minute, cfg.Storage.Breaker.Cooldown)
	assert.Equal(t, []string{"http://localhost:5173", "https://desk.example.com"}, cfg.Server.AllowedOrigins)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "floppy")

	_, err := Load()
	assert.Error(t, err)

	cfg := LoadOrDefault()
	assert.Equal(t, DriverDisk, cfg.Storage.Driver)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"memory driver", func(c *Config) { c.Storage.Driver = DriverMemory }, false},
		{"disk without dir", func(c *Config) { c.Storage.Dir = "" }, true},
		{"etcd without endpoints", func(c *Config) {
			c.Storage.Driver = DriverEtcd
			c.Storage.Etcd.Endpoints = nil
		}, true},
		{"zero viewport", func(c *Config) { c.Desktop.ViewportWidth = 0 }, true},
		{"breaker without threshold", func(c *Config) { c.Storage.Breaker.Failures = 0 }, true},
		{"explicit origins", func(c *Config) {
			c.Server.AllowedOrigins = []string{"http://localhost:5173"}
		}, false},
		{"origin without scheme", func(c *Config) {
			c.Server.AllowedOrigins = []string{"localhost:5173"}
		}, true},
		{"breaker disabled", func(c *Config) {
			c.Storage.Breaker.Enabled = false
			c.Storage.Breaker.Cooldown = 0
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostgresConnectionString(t *testing.T) {
	p := Default().Storage.Postgres
	assert.Equal(t,
		"host=localhost port=5432 user=webdesk password=webdesk dbname=webdesk sslmode=disable",
		p.ConnectionString())
}
