package window

// Size defaults applied to zero-valued settings fields at registration.
const (
	DefaultMinWidth       = 250
	DefaultMinHeight      = 150
	DefaultWidth          = 600
	DefaultHeight         = 400
	DefaultViewportWidth  = 1920
	DefaultViewportHeight = 1080
)

// Settings describes how an application's windows look and size.
type Settings struct {
	Title         string `json:"title"`
	Icon          string `json:"icon"`
	MinWidth      int    `json:"minWidth"`
	MinHeight     int    `json:"minHeight"`
	DefaultWidth  int    `json:"defaultWidth"`
	DefaultHeight int    `json:"defaultHeight"`
}

// withDefaults fills unset size fields.
func (s Settings) withDefaults() Settings {
	if s.MinWidth <= 0 {
		s.MinWidth = DefaultMinWidth
	}
	if s.MinHeight <= 0 {
		s.MinHeight = DefaultMinHeight
	}
	if s.DefaultWidth <= 0 {
		s.DefaultWidth = DefaultWidth
	}
	if s.DefaultHeight <= 0 {
		s.DefaultHeight = DefaultHeight
	}
	return s
}

// Content is what a client needs to mount an application's body.
type Content struct {
	Component string         `json:"component"`
	Bundle    string         `json:"bundle,omitempty"`
	Props     map[string]any `json:"props,omitempty"`
}

// ContentFactory produces fresh content for a new window.
type ContentFactory func() Content

// App is a registered application.
type App struct {
	Name     string         `json:"name"`
	Settings Settings       `json:"settings"`
	Factory  ContentFactory `json:"-"`
}

// Window is a live window instance. Values returned by the registry are copies.
type Window struct {
	ID        string `json:"id"`
	App       string `json:"app"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Title     string `json:"title"`
	Icon      string `json:"icon"`
	Minimized bool   `json:"isMinimized"`
}

// StatePatch carries the fields of a window state update. Nil fields are
// left unchanged.
type StatePatch struct {
	X         *int
	Y         *int
	Width     *int
	Height    *int
	Minimized *bool
}

// Viewport is the visible desktop area reported by the client.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// EventKind names the mutation that triggered a notification.
type EventKind string

const (
	EventAppRegistered      EventKind = "app_registered"
	EventWindowOpened       EventKind = "window_opened"
	EventWindowRegistered   EventKind = "window_registered"
	EventWindowUnregistered EventKind = "window_unregistered"
	EventWindowUpdated      EventKind = "window_updated"
	EventFocusChanged       EventKind = "focus_changed"
	EventViewportChanged    EventKind = "viewport_changed"
	EventReset              EventKind = "reset"
)

// Event is delivered to SubscribeEvents listeners after a mutation.
type Event struct {
	Kind     EventKind `json:"kind"`
	WindowID string    `json:"windowId,omitempty"`
	App      string    `json:"app,omitempty"`
}

// Stats summarizes registry state.
type Stats struct {
	Windows          int    `json:"windows"`
	MinimizedWindows int    `json:"minimized_windows"`
	RegisteredApps   int    `json:"registered_apps"`
	CurrentWindow    string `json:"current_window,omitempty"`
}
