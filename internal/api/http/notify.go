package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/notify"
)

// Notify sends a best-effort message to the listeners of an app
func (h *Handlers) Notify(c *gin.Context) {
	var req notify.Message
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	delivered := h.bus.Send(req)
	c.JSON(http.StatusOK, gin.H{
		"success":   delivered,
		"delivered": delivered,
		"target":    req.Target,
	})
}

type openFileRequest struct {
	Path string `json:"path" binding:"required"`
	App  string `json:"app" binding:"required"`
}

// OpenFile hands a path to an app and opens a window for it
func (h *Handlers) OpenFile(c *gin.Context) {
	var req openFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result := h.launcher.OpenFile(req.Path, req.App)
	c.JSON(http.StatusOK, gin.H{
		"success": result.Opened,
		"result":  result,
	})
}
