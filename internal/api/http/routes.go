package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every handler on router.
func RegisterRoutes(router gin.IRouter, h *Handlers) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)

	// Applications
	router.GET("/apps", h.ListApps)
	router.POST("/apps/:name/open", h.OpenApp)

	// Windows
	router.GET("/windows", h.ListWindows)
	router.POST("/windows", h.RegisterWindow)
	router.GET("/windows/current", h.CurrentWindow)
	router.POST("/windows/:id/focus", h.FocusWindow)
	router.PUT("/windows/:id/state", h.UpdateWindowState)
	router.DELETE("/windows/:id", h.CloseWindow)
	router.GET("/windows/:id/settings", h.WindowSettings)
	router.GET("/windows/:id/content", h.WindowContent)
	router.PUT("/viewport", h.SetViewport)

	// Virtual path store
	fs := router.Group("/fs")
	fs.GET("/readdir", h.Readdir)
	fs.GET("/list", h.List)
	fs.GET("/stat", h.Stat)
	fs.GET("/file", h.ReadFile)
	fs.PUT("/file", h.WriteFile)
	fs.DELETE("/file", h.Unlink)
	fs.POST("/mkdir", h.Mkdir)
	fs.GET("/glob", h.Glob)
	fs.POST("/reset", h.ResetFiles)

	// Preferences
	router.GET("/themes", h.ListThemes)
	router.GET("/preferences/theme", h.CurrentTheme)
	router.PUT("/preferences/theme", h.SetTheme)

	// Cross-app notifications
	router.POST("/notify", h.Notify)
	router.POST("/open-file", h.OpenFile)
}
