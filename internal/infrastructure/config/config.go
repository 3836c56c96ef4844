package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverDisk     = "disk"
	DriverPostgres = "postgres"
	DriverEtcd     = "etcd"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Storage   StorageConfig
	Desktop   DesktopConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// AllowedOrigins lists the browser origins that may drive the desk.
	// "*" admits any origin.
	AllowedOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// StorageConfig selects and configures the durable key-value driver.
type StorageConfig struct {
	Driver   string `envconfig:"STORAGE_DRIVER" default:"disk"`
	Dir      string `envconfig:"STORAGE_DIR" default:"/tmp/webdesk-storage"`
	Postgres PostgresConfig
	Etcd     EtcdConfig
	Breaker  BreakerConfig
}

// BreakerConfig guards the remote drivers (postgres, etcd) with a circuit
// breaker so an unreachable server fails requests fast.
type BreakerConfig struct {
	Enabled  bool          `envconfig:"STORAGE_BREAKER_ENABLED" default:"true"`
	Failures uint32        `envconfig:"STORAGE_BREAKER_FAILURES" default:"5"`
	Cooldown time.Duration `envconfig:"STORAGE_BREAKER_COOLDOWN" default:"30s"`
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" default:"webdesk"`
	Password string `envconfig:"POSTGRES_PASSWORD" default:"webdesk"`
	Database string `envconfig:"POSTGRES_DB" default:"webdesk"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
}

// EtcdConfig holds etcd connection settings.
type EtcdConfig struct {
	Endpoints   []string      `envconfig:"ETCD_ENDPOINTS" default:"localhost:2379"`
	Prefix      string        `envconfig:"ETCD_PREFIX" default:"/webdesk"`
	DialTimeout time.Duration `envconfig:"ETCD_DIAL_TIMEOUT" default:"5s"`
}

// DesktopConfig holds window registry and catalogue settings.
type DesktopConfig struct {
	ViewportWidth  int    `envconfig:"VIEWPORT_WIDTH" default:"1920"`
	ViewportHeight int    `envconfig:"VIEWPORT_HEIGHT" default:"1080"`
	AppsManifest   string `envconfig:"DESKTOP_APPS_MANIFEST"`
	SeedDir        string `envconfig:"DESKTOP_SEED_DIR"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8000",
			Host:           "0.0.0.0",
			AllowedOrigins: []string{"*"},
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Storage: StorageConfig{
			Driver: DriverDisk,
			Dir:    "/tmp/webdesk-storage",
			Postgres: PostgresConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "webdesk",
				Password: "webdesk",
				Database: "webdesk",
				SSLMode:  "disable",
			},
			Etcd: EtcdConfig{
				Endpoints:   []string{"localhost:2379"},
				Prefix:      "/webdesk",
				DialTimeout: 5 * time.Second,
			},
			Breaker: BreakerConfig{
				Enabled:  true,
				Failures: 5,
				Cooldown: 30 * time.Second,
			},
		},
		Desktop: DesktopConfig{
			ViewportWidth:  1920,
			ViewportHeight: 1080,
		},
	}
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverDisk, DriverPostgres, DriverEtcd:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == DriverDisk && c.Storage.Dir == "" {
		return fmt.Errorf("STORAGE_DIR is required for the disk driver")
	}
	if c.Storage.Driver == DriverEtcd && len(c.Storage.Etcd.Endpoints) == 0 {
		return fmt.Errorf("ETCD_ENDPOINTS is required for the etcd driver")
	}
	if c.Storage.Breaker.Enabled && (c.Storage.Breaker.Failures == 0 || c.Storage.Breaker.Cooldown <= 0) {
		return fmt.Errorf("storage breaker needs positive failures and cooldown")
	}
	for _, origin := range c.Server.AllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("CORS_ORIGINS entry %q must be \"*\" or an http(s) origin", origin)
		}
	}
	if c.Desktop.ViewportWidth <= 0 || c.Desktop.ViewportHeight <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.Desktop.ViewportWidth, c.Desktop.ViewportHeight)
	}
	return nil
}

// ConnectionString returns a lib/pq connection string.
func (p PostgresConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}
