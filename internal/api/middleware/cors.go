package middleware

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// deskMethods are the verbs used by the desk routes.
var deskMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodOptions,
}

// deskHeaders are the request headers the browser client sends. Files are
// written as JSON bodies, so no upload or auth headers are needed.
var deskHeaders = []string{
	"Content-Type",
	"Accept",
	"Origin",
	"Cache-Control",
	"X-Requested-With",
	RequestIDHeader,
}

// CORSConfig lists the browser origins allowed to drive the desk.
// An empty list or "*" admits every origin with credentials disabled;
// explicit origins also allow credentials.
type CORSConfig struct {
	Origins []string
	MaxAge  time.Duration
}

// DefaultCORSConfig admits any origin, for a client served from a dev server.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		Origins: []string{"*"},
		MaxAge:  12 * time.Hour,
	}
}

func (c CORSConfig) anyOrigin() bool {
	return len(c.Origins) == 0 || slices.Contains(c.Origins, "*")
}

// AllowsOrigin reports whether a page served from origin may use the desk.
// Requests without an Origin header (deskctl, same-origin pages) always pass.
// The WebSocket upgrade applies the same check.
func (c CORSConfig) AllowsOrigin(origin string) bool {
	if origin == "" || c.anyOrigin() {
		return true
	}
	return slices.Contains(c.Origins, origin)
}

// CORS answers preflights and tags responses for the configured origins.
// The request id header is exposed so the client can quote it in reports.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods:  deskMethods,
		AllowHeaders:  deskHeaders,
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        cfg.MaxAge,
	}
	if cfg.anyOrigin() {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = cfg.Origins
		cc.AllowCredentials = true
	}
	return cors.New(cc)
}
