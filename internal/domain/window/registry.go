package window

import (
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/pubsub"
)

// Registry tracks registered apps and live windows
type Registry struct {
	mu       sync.RWMutex
	apps     map[string]App     // Protected by mu
	windows  map[string]*Window // Protected by mu
	order    []string           // Insertion order of windows, protected by mu
	current  string             // Focused window id, "" for none, protected by mu
	viewport Viewport           // Protected by mu

	events  *pubsub.Topic[Event]
	ids     *id.Generator
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// NewRegistry creates an empty registry
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		apps:     make(map[string]App),
		windows:  make(map[string]*Window),
		viewport: Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight},
		events:   pubsub.NewTopic[Event](),
		ids:      id.Default(),
		logger:   logger,
	}
}

// WithMetrics adds metrics tracking to the registry
func (r *Registry) WithMetrics(metrics *monitoring.Metrics) *Registry {
	r.metrics = metrics
	return r
}

// WithIDGenerator replaces the window id generator
func (r *Registry) WithIDGenerator(gen *id.Generator) *Registry {
	r.ids = gen
	return r
}

// Subscribe registers a change listener and returns its unsubscribe function
func (r *Registry) Subscribe(listener func()) func() {
	return r.events.Subscribe(func(Event) { listener() })
}

// SubscribeEvents registers a listener that also receives the mutation kind
func (r *Registry) SubscribeEvents(listener func(Event)) func() {
	return r.events.Subscribe(listener)
}

// RegisterApp adds or replaces an application. The last registration wins.
func (r *Registry) RegisterApp(name string, factory ContentFactory, settings Settings) {
	if name == "" {
		r.logger.Debug("Ignoring app registration without a name")
		return
	}
	if factory == nil {
		factory = func() Content { return Content{Component: name} }
	}

	r.mu.Lock()
	if _, exists := r.apps[name]; exists {
		r.logger.Debug("Replacing registered app", zap.String("app", name))
	}
	r.apps[name] = App{Name: name, Settings: settings.withDefaults(), Factory: factory}
	appCount := len(r.apps)
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.SetRegistryApps(appCount)
	}
	r.notify(Event{Kind: EventAppRegistered, App: name})
}

// OpenWindow opens a focused window for a registered app, centred in the
// viewport. It reports false when the app is unknown.
func (r *Registry) OpenWindow(name string) (string, bool) {
	if name == "" {
		r.logger.Debug("Open requested without an app name")
		return "", false
	}

	r.mu.Lock()
	app, ok := r.apps[name]
	if !ok {
		r.mu.Unlock()
		r.logger.Debug("Open requested for unknown app", zap.String("app", name))
		return "", false
	}

	windowID := r.ids.NewWindow(name).String()
	s := app.Settings
	w := &Window{
		ID:     windowID,
		App:    name,
		X:      centre(r.viewport.Width, s.DefaultWidth),
		Y:      centre(r.viewport.Height, s.DefaultHeight),
		Width:  s.DefaultWidth,
		Height: s.DefaultHeight,
		Title:  s.Title,
		Icon:   s.Icon,
	}
	r.insert(w)
	r.current = windowID
	count := len(r.windows)
	r.mu.Unlock()

	r.logger.Debug("Window opened", zap.String("app", name), zap.String("window_id", windowID))
	if r.metrics != nil {
		r.metrics.IncWindowsOpened(name)
		r.metrics.SetWindowsOpen(count)
	}
	r.notify(Event{Kind: EventWindowOpened, WindowID: windowID, App: name})
	return windowID, true
}

func centre(available, size int) int {
	pos := (available - size) / 2
	if pos < 0 {
		return 0
	}
	return pos
}

// RegisterWindow declares a window that was created outside OpenWindow.
// An existing window with the same id is replaced in place. The window is
// focused only when nothing else is. An empty id is ignored.
func (r *Registry) RegisterWindow(windowID string, x, y, width, height int, title, icon string) {
	if windowID == "" {
		r.logger.Debug("Ignoring window registration without an id")
		return
	}

	owner, ok := id.Owner(windowID)
	if !ok {
		owner = windowID
	}

	r.mu.Lock()
	w := &Window{
		ID:     windowID,
		App:    owner,
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Title:  title,
		Icon:   icon,
	}
	if _, exists := r.windows[windowID]; exists {
		r.windows[windowID] = w
	} else {
		r.insert(w)
	}
	if r.current == "" {
		r.current = windowID
	}
	count := len(r.windows)
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.SetWindowsOpen(count)
	}
	r.notify(Event{Kind: EventWindowRegistered, WindowID: windowID, App: owner})
}

// insert adds a new window (must hold lock)
func (r *Registry) insert(w *Window) {
	r.windows[w.ID] = w
	r.order = append(r.order, w.ID)
}

// UnregisterWindow destroys a window. Listeners are notified even when the
// id is unknown.
func (r *Registry) UnregisterWindow(windowID string) {
	r.mu.Lock()
	w, ok := r.windows[windowID]
	if ok {
		delete(r.windows, windowID)
		r.removeFromOrder(windowID)
		if r.current == windowID {
			r.current = ""
			if n := len(r.order); n > 0 {
				r.current = r.order[n-1]
			}
		}
	}
	count := len(r.windows)
	r.mu.Unlock()

	ev := Event{Kind: EventWindowUnregistered, WindowID: windowID}
	if ok {
		ev.App = w.App
		if r.metrics != nil {
			r.metrics.SetWindowsOpen(count)
		}
	} else {
		r.logger.Debug("Unregister requested for unknown window", zap.String("window_id", windowID))
	}
	r.notify(ev)
}

// removeFromOrder drops an id from the insertion order (must hold lock)
func (r *Registry) removeFromOrder(windowID string) {
	for i, existing := range r.order {
		if existing == windowID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

// UpdateWindowState sets a window's geometry. Minimization changes only when
// minimized is non-nil. Unknown ids are ignored.
func (r *Registry) UpdateWindowState(windowID string, x, y, width, height int, minimized *bool) {
	r.PatchWindowState(windowID, StatePatch{X: &x, Y: &y, Width: &width, Height: &height, Minimized: minimized})
}

// PatchWindowState merges the non-nil fields of patch into a window.
// Unknown ids are ignored.
func (r *Registry) PatchWindowState(windowID string, patch StatePatch) {
	r.mu.Lock()
	w, ok := r.windows[windowID]
	if !ok {
		r.mu.Unlock()
		r.logger.Debug("Update requested for unknown window", zap.String("window_id", windowID))
		return
	}
	setIf(&w.X, patch.X)
	setIf(&w.Y, patch.Y)
	setIf(&w.Width, patch.Width)
	setIf(&w.Height, patch.Height)
	setIf(&w.Minimized, patch.Minimized)
	app := w.App
	r.mu.Unlock()

	r.notify(Event{Kind: EventWindowUpdated, WindowID: windowID, App: app})
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// SetCurrentWindow focuses a window. Unknown ids leave focus unchanged.
func (r *Registry) SetCurrentWindow(windowID string) {
	r.mu.Lock()
	w, ok := r.windows[windowID]
	if !ok {
		r.mu.Unlock()
		r.logger.Debug("Focus requested for unknown window", zap.String("window_id", windowID))
		return
	}
	r.current = windowID
	app := w.App
	r.mu.Unlock()

	r.notify(Event{Kind: EventFocusChanged, WindowID: windowID, App: app})
}

// SetViewport records the client's visible area. Non-positive sizes are ignored.
func (r *Registry) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		r.logger.Debug("Ignoring invalid viewport", zap.Int("width", width), zap.Int("height", height))
		return
	}

	r.mu.Lock()
	r.viewport = Viewport{Width: width, Height: height}
	r.mu.Unlock()

	r.notify(Event{Kind: EventViewportChanged})
}

// Reset removes every app and window
func (r *Registry) Reset() {
	r.mu.Lock()
	r.apps = make(map[string]App)
	r.windows = make(map[string]*Window)
	r.order = nil
	r.current = ""
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.SetRegistryApps(0)
		r.metrics.SetWindowsOpen(0)
	}
	r.notify(Event{Kind: EventReset})
}

func (r *Registry) notify(ev Event) {
	r.events.Publish(ev)
}
