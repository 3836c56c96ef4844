package notify

// WindowOpener opens a window for an app, reporting false for unknown apps.
type WindowOpener interface {
	OpenWindow(name string) (string, bool)
}

// Launcher opens files in other apps.
type Launcher struct {
	bus    *Bus
	opener WindowOpener
}

// NewLauncher creates a launcher over a bus and a window registry
func NewLauncher(bus *Bus, opener WindowOpener) *Launcher {
	return &Launcher{bus: bus, opener: opener}
}

// OpenResult describes what OpenFile did.
type OpenResult struct {
	WindowID  string `json:"windowId,omitempty"`
	Opened    bool   `json:"opened"`
	Delivered bool   `json:"delivered"`
}

// OpenFile sends the path to app and then opens a new window for it.
// Already-attached instances receive the path; the new window does not.
func (l *Launcher) OpenFile(path, app string) OpenResult {
	delivered := l.bus.Send(Message{Target: app, Payload: Payload{Path: path}})
	windowID, opened := l.opener.OpenWindow(app)
	return OpenResult{WindowID: windowID, Opened: opened, Delivered: delivered}
}
