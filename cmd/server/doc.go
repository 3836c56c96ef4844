// Package main is the entry point for the WebDesk backend server.
//
// The server hosts the state behind a browser desktop: the window and app
// registry, the virtual path store and the user's preferences.
//
// Architecture:
//
//	Browser desktop → Go Backend → Storage driver (disk, PostgreSQL, etcd)
//	                ← WebSocket window snapshots and notifications
//
// Configuration:
//   - Environment variables (12-factor), see internal/infrastructure/config
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -storage disk -storage-dir /var/lib/webdesk
//
//	# Development mode (colored logs, debug level)
//	./server -dev -storage memory
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
