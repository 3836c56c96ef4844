package http

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/window"
)

// ListApps lists registered applications sorted by name
func (h *Handlers) ListApps(c *gin.Context) {
	apps := h.registry.RegisteredApps()
	list := make([]window.App, 0, len(apps))
	for _, app := range apps {
		list = append(list, app)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })

	c.JSON(http.StatusOK, gin.H{
		"apps":  list,
		"count": len(list),
	})
}

// OpenApp opens a new window of an application
func (h *Handlers) OpenApp(c *gin.Context) {
	name := c.Param("name")

	windowID, ok := h.registry.OpenWindow(name)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"error":   "unknown app: " + name,
		})
		return
	}

	w, _ := h.registry.Window(windowID)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"window_id": windowID,
		"window":    w,
	})
}

// ListWindows lists windows in insertion order with the focused id
func (h *Handlers) ListWindows(c *gin.Context) {
	current, _ := h.registry.CurrentWindow()
	c.JSON(http.StatusOK, gin.H{
		"windows": h.registry.Windows(),
		"current": current,
		"stats":   h.registry.Stats(),
	})
}

type registerWindowRequest struct {
	ID     string `json:"id" binding:"required"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
	Icon   string `json:"icon"`
}

// RegisterWindow records a window created by the client
func (h *Handlers) RegisterWindow(c *gin.Context) {
	var req registerWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	h.registry.RegisterWindow(req.ID, req.X, req.Y, req.Width, req.Height, req.Title, req.Icon)
	w, _ := h.registry.Window(req.ID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"window":  w,
	})
}

// CurrentWindow returns the focused window id, or null
func (h *Handlers) CurrentWindow(c *gin.Context) {
	current, ok := h.registry.CurrentWindow()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"current": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"current": current})
}

// FocusWindow brings a window to the foreground
func (h *Handlers) FocusWindow(c *gin.Context) {
	windowID := c.Param("id")

	_, exists := h.registry.Window(windowID)
	h.registry.SetCurrentWindow(windowID)

	c.JSON(http.StatusOK, gin.H{
		"success":   exists,
		"window_id": windowID,
	})
}

// windowStateRequest fields are all optional; omitted ones keep their value.
type windowStateRequest struct {
	X           *int  `json:"x"`
	Y           *int  `json:"y"`
	Width       *int  `json:"width"`
	Height      *int  `json:"height"`
	IsMinimized *bool `json:"isMinimized"`
}

// UpdateWindowState merges the supplied geometry and minimized flag
func (h *Handlers) UpdateWindowState(c *gin.Context) {
	windowID := c.Param("id")

	var req windowStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	h.registry.PatchWindowState(windowID, window.StatePatch{
		X:         req.X,
		Y:         req.Y,
		Width:     req.Width,
		Height:    req.Height,
		Minimized: req.IsMinimized,
	})
	w, exists := h.registry.Window(windowID)
	if !exists {
		c.JSON(http.StatusOK, gin.H{"success": false, "window_id": windowID})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"window_id": windowID,
		"window":    w,
	})
}

// CloseWindow removes a window
func (h *Handlers) CloseWindow(c *gin.Context) {
	windowID := c.Param("id")

	_, exists := h.registry.Window(windowID)
	h.registry.UnregisterWindow(windowID)

	current, _ := h.registry.CurrentWindow()
	c.JSON(http.StatusOK, gin.H{
		"success":   exists,
		"window_id": windowID,
		"current":   current,
	})
}

// WindowSettings returns the settings of the app owning a window
func (h *Handlers) WindowSettings(c *gin.Context) {
	windowID := c.Param("id")

	settings, ok := h.registry.AppSettings(windowID)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"success": false, "settings": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "settings": settings})
}

// WindowContent returns fresh content for a window's app
func (h *Handlers) WindowContent(c *gin.Context) {
	windowID := c.Param("id")

	content, ok := h.registry.AppContent(windowID)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"success": false, "content": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "content": content})
}

type viewportRequest struct {
	Width  int `json:"width" binding:"required,gt=0"`
	Height int `json:"height" binding:"required,gt=0"`
}

// SetViewport records the client's viewport used to centre new windows
func (h *Handlers) SetViewport(c *gin.Context) {
	var req viewportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	h.registry.SetViewport(req.Width, req.Height)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"viewport": h.registry.Viewport(),
	})
}
