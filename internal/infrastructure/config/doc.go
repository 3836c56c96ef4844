// Package config provides 12-factor configuration for the desktop backend.
//
// Configuration is loaded from environment variables with sensible
// defaults. CLI flags in cmd/server can override the most common ones.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Logging: log level and output format
//   - RateLimit: per-IP rate limiting
//   - Storage: durable key-value driver for the virtual disk and preferences
//   - Desktop: default viewport, extra app manifest, seed directory
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Serving on %s:%s with %s storage\n", cfg.Server.Host, cfg.Server.Port, cfg.Storage.Driver)
//
// Environment Variables:
//   - PORT, HOST
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - STORAGE_DRIVER (memory, disk, postgres, etcd), STORAGE_DIR
//   - POSTGRES_HOST, POSTGRES_PORT, POSTGRES_USER, POSTGRES_PASSWORD, POSTGRES_DB, POSTGRES_SSLMODE
//   - ETCD_ENDPOINTS, ETCD_PREFIX, ETCD_DIAL_TIMEOUT
//   - VIEWPORT_WIDTH, VIEWPORT_HEIGHT, DESKTOP_APPS_MANIFEST, DESKTOP_SEED_DIR
package config
