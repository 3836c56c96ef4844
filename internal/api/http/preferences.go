package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/preferences"
)

// ListThemes lists the built-in themes
func (h *Handlers) ListThemes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"themes": h.prefs.Themes()})
}

// CurrentTheme returns the selected theme
func (h *Handlers) CurrentTheme(c *gin.Context) {
	theme, err := h.prefs.CurrentTheme(c.Request.Context())
	if err != nil {
		h.log(c).Error("Failed to load theme preference", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

type setThemeRequest struct {
	ID string `json:"id" binding:"required"`
}

// SetTheme selects and persists a theme
func (h *Handlers) SetTheme(c *gin.Context) {
	var req setThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	theme, err := h.prefs.SetTheme(c.Request.Context(), req.ID)
	switch {
	case errors.Is(err, preferences.ErrUnknownTheme):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	case err != nil:
		h.log(c).Error("Failed to save theme preference", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "theme": theme})
}
