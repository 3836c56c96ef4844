package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/notify"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/preferences"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/window"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/monitoring"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = (pongWait * 9) / 10
	outboxSize   = 64
	maxReadBytes = 64 * 1024
)

// SessionHeader carries the connection's session id in the upgrade response.
const SessionHeader = "X-Session-ID"

func newUpgrader(allowOrigin func(string) bool) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			return allowOrigin(r.Header.Get("Origin"))
		},
	}
}

func anyOrigin(string) bool { return true }

// Handler manages WebSocket connections
type Handler struct {
	registry *window.Registry
	bus      *notify.Bus
	prefs    *preferences.Service
	metrics  *monitoring.Metrics
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a new WebSocket handler. prefs may be nil.
func NewHandler(registry *window.Registry, bus *notify.Bus, prefs *preferences.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		registry: registry,
		bus:      bus,
		prefs:    prefs,
		logger:   logger,
		upgrader: newUpgrader(anyOrigin),
	}
}

// WithOriginCheck restricts upgrades to origins accepted by allow, normally
// the CORS policy's AllowsOrigin.
func (h *Handler) WithOriginCheck(allow func(origin string) bool) *Handler {
	h.upgrader = newUpgrader(allow)
	return h
}

// WithMetrics adds connection and message metrics
func (h *Handler) WithMetrics(metrics *monitoring.Metrics) *Handler {
	h.metrics = metrics
	return h
}

// HandleConnection handles WebSocket upgrade and messages
func (h *Handler) HandleConnection(c *gin.Context) {
	sessionID := uuid.NewString()
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, http.Header{SessionHeader: []string{sessionID}})
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	logger := h.logger.With(zap.String("session_id", sessionID))

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	cl := newClient(h, conn, logger)
	logger.Debug("WebSocket client connected", zap.String("remote", conn.RemoteAddr().String()))

	unsubscribe := h.registry.Subscribe(cl.markWindowsChanged)
	defer unsubscribe()
	if h.prefs != nil {
		unsubscribeTheme := h.prefs.Subscribe(func(theme preferences.Theme) {
			cl.enqueue(ThemeMessage{Type: TypeTheme, Theme: theme})
		})
		defer unsubscribeTheme()
	}
	defer cl.detachAll()

	cl.markWindowsChanged()
	go cl.writePump()
	cl.readPump()

	logger.Debug("WebSocket client disconnected")
}

func (h *Handler) windowsSnapshot() WindowsMessage {
	msg := WindowsMessage{Type: TypeWindows, Windows: h.registry.Windows()}
	if current, ok := h.registry.CurrentWindow(); ok {
		msg.Current = &current
	}
	return msg
}

func (h *Handler) recordMessage(direction, msgType string) {
	if h.metrics != nil {
		h.metrics.RecordWSMessage(direction, msgType)
	}
}
