package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/notify"
)

// client is one connection. Only writePump writes to conn.
type client struct {
	h      *Handler
	conn   *websocket.Conn
	logger *zap.Logger

	// windowsChanged coalesces registry notifications; the writer always
	// sends the latest snapshot.
	windowsChanged chan struct{}
	outbox         chan any
	done           chan struct{}

	mu       sync.Mutex
	attached map[string]func()
}

func newClient(h *Handler, conn *websocket.Conn, logger *zap.Logger) *client {
	return &client{
		h:              h,
		conn:           conn,
		logger:         logger,
		windowsChanged: make(chan struct{}, 1),
		outbox:         make(chan any, outboxSize),
		done:           make(chan struct{}),
		attached:       make(map[string]func()),
	}
}

func (cl *client) markWindowsChanged() {
	select {
	case cl.windowsChanged <- struct{}{}:
	default:
	}
}

// enqueue queues msg for the writer, dropping it when the client is too slow.
func (cl *client) enqueue(msg any) {
	select {
	case <-cl.done:
	case cl.outbox <- msg:
	default:
		cl.logger.Warn("Dropping message for slow WebSocket client")
	}
}

// readPump reads client commands until the connection fails, then closes
// the connection and stops the writer.
func (cl *client) readPump() {
	defer close(cl.done)
	defer cl.conn.Close()

	cl.conn.SetReadLimit(maxReadBytes)
	cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg ClientMessage
		if err := cl.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				cl.logger.Debug("WebSocket read error", zap.Error(err))
			}
			return
		}
		cl.h.recordMessage("in", msg.Type)

		switch msg.Type {
		case TypeAttach:
			if msg.App == "" {
				cl.enqueue(status(TypeError, "", "attach requires an app"))
				continue
			}
			cl.attach(msg.App)
			cl.enqueue(status(TypeAttached, msg.App, ""))
		case TypeDetach:
			cl.detach(msg.App)
		case TypePing:
			cl.enqueue(status(TypePong, "", ""))
		default:
			cl.enqueue(status(TypeError, "", "unknown message type"))
		}
	}
}

// writePump serialises every write to the connection.
func (cl *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-cl.windowsChanged:
			if !cl.write(TypeWindows, cl.h.windowsSnapshot()) {
				return
			}
		case msg := <-cl.outbox:
			if !cl.write(messageType(msg), msg) {
				return
			}
		case <-ticker.C:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-cl.done:
			return
		}
	}
}

func (cl *client) write(msgType string, msg any) bool {
	cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := cl.conn.WriteJSON(msg); err != nil {
		cl.logger.Debug("WebSocket write error", zap.Error(err))
		cl.conn.Close()
		return false
	}
	cl.h.recordMessage("out", msgType)
	return true
}

func (cl *client) attach(app string) {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, ok := cl.attached[app]; ok {
		return
	}
	cl.attached[app] = cl.h.bus.Attach(app, func(m notify.Message) {
		cl.enqueue(NotificationMessage{Type: TypeNotification, Target: m.Target, Payload: m.Payload})
	})
}

func (cl *client) detach(app string) {
	cl.mu.Lock()
	detach, ok := cl.attached[app]
	delete(cl.attached, app)
	cl.mu.Unlock()

	if ok {
		detach()
	}
}

func (cl *client) detachAll() {
	cl.mu.Lock()
	attached := cl.attached
	cl.attached = make(map[string]func())
	cl.mu.Unlock()

	for _, detach := range attached {
		detach()
	}
}

func messageType(msg any) string {
	switch m := msg.(type) {
	case StatusMessage:
		return m.Type
	case NotificationMessage:
		return m.Type
	case ThemeMessage:
		return m.Type
	default:
		return "unknown"
	}
}
