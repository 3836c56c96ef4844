package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/notify"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/preferences"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/window"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
)

// Version is reported by the root endpoint.
const Version = "0.3.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *window.Registry
	files    *vfs.Store
	prefs    *preferences.Service
	bus      *notify.Bus
	launcher *notify.Launcher
	logger   *zap.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(
	registry *window.Registry,
	files *vfs.Store,
	prefs *preferences.Service,
	bus *notify.Bus,
	logger *zap.Logger,
) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		registry: registry,
		files:    files,
		prefs:    prefs,
		bus:      bus,
		launcher: notify.NewLauncher(bus, registry),
		logger:   logger,
	}
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "WebDesk Backend (Go)",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"registry": h.registry.Stats(),
	})
}

// log returns the request-scoped logger set by the request id middleware.
func (h *Handlers) log(c *gin.Context) *zap.Logger {
	return logging.FromContext(c.Request.Context(), h.logger)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   "Invalid request: " + err.Error(),
	})
}
