package ws

import (
	"time"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/notify"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/preferences"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/window"
)

// Message types exchanged with clients.
const (
	TypeWindows      = "windows"
	TypeNotification = "notification"
	TypeTheme        = "theme"
	TypeAttach       = "attach"
	TypeAttached     = "attached"
	TypeDetach       = "detach"
	TypePing         = "ping"
	TypePong         = "pong"
	TypeError        = "error"
)

// ClientMessage is sent by the client.
type ClientMessage struct {
	Type string `json:"type"`
	App  string `json:"app,omitempty"`
}

// WindowsMessage carries the full window list.
type WindowsMessage struct {
	Type    string          `json:"type"`
	Windows []window.Window `json:"windows"`
	Current *string         `json:"current"`
}

// NotificationMessage forwards a cross-app message to an attached client.
type NotificationMessage struct {
	Type    string         `json:"type"`
	Target  string         `json:"target"`
	Payload notify.Payload `json:"payload"`
}

// ThemeMessage announces a theme change.
type ThemeMessage struct {
	Type  string            `json:"type"`
	Theme preferences.Theme `json:"theme"`
}

// StatusMessage acknowledges a client command or reports an error.
type StatusMessage struct {
	Type      string `json:"type"`
	App       string `json:"app,omitempty"`
	Message   string `json:"message,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func status(msgType, app, message string) StatusMessage {
	return StatusMessage{Type: msgType, App: app, Message: message, Timestamp: time.Now().Unix()}
}
