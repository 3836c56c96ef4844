package window

import (
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
)

// Windows returns copies of all windows in insertion order
func (r *Registry) Windows() []Window {
	r.mu.RLock()
	defer r.mu.RUnlock()

	windows := make([]Window, 0, len(r.order))
	for _, windowID := range r.order {
		windows = append(windows, *r.windows[windowID])
	}
	return windows
}

// Window returns a copy of one window
func (r *Registry) Window(windowID string) (Window, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.windows[windowID]
	if !ok {
		return Window{}, false
	}
	return *w, true
}

// CurrentWindow returns the focused window id, if any
func (r *Registry) CurrentWindow() (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current, r.current != ""
}

// Viewport returns the last reported viewport
func (r *Registry) Viewport() Viewport {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.viewport
}

// RegisteredApps returns a copy of the app catalogue
func (r *Registry) RegisteredApps() map[string]App {
	r.mu.RLock()
	defer r.mu.RUnlock()

	apps := make(map[string]App, len(r.apps))
	for name, app := range r.apps {
		apps[name] = app
	}
	return apps
}

// AppSettings resolves a window id to its owning app's settings
func (r *Registry) AppSettings(windowID string) (Settings, bool) {
	app, ok := r.owningApp(windowID)
	if !ok {
		return Settings{}, false
	}
	return app.Settings, true
}

// AppContent builds fresh content for the app owning a window id. The
// factory runs outside the registry lock.
func (r *Registry) AppContent(windowID string) (Content, bool) {
	app, ok := r.owningApp(windowID)
	if !ok {
		return Content{}, false
	}
	return app.Factory(), true
}

// owningApp takes the text before the id's last separator as the app name.
// Ids without a separator are looked up as app names directly.
func (r *Registry) owningApp(windowID string) (App, bool) {
	name, ok := id.Owner(windowID)
	if !ok {
		name = windowID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.apps[name]
	return app, ok
}

// Stats returns registry statistics
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var minimized int
	for _, w := range r.windows {
		if w.Minimized {
			minimized++
		}
	}
	return Stats{
		Windows:          len(r.windows),
		MinimizedWindows: minimized,
		RegisteredApps:   len(r.apps),
		CurrentWindow:    r.current,
	}
}
