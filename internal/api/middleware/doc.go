// Package middleware provides the HTTP middleware stack of the desktop backend.
//
// Middleware stack includes:
//   - CORS: cross-origin access for the browser client
//   - RateLimit: per-IP token bucket rate limiting with idle client eviction
//   - RequestID: request correlation ids and structured access logs
//
// Example Usage:
//
//	router.Use(middleware.RequestID(logger))
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
