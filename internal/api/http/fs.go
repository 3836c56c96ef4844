package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/vfs"
)

type pathQuery struct {
	Path string `form:"path" binding:"required"`
}

type writeFileRequest struct {
	Path    string `json:"path" binding:"required"`
	Content string `json:"content"`
}

type pathRequest struct {
	Path string `json:"path" binding:"required"`
}

// fsError maps a path store error to a status code
func (h *Handlers) fsError(c *gin.Context, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, vfs.ErrInvalidPath):
		status = http.StatusBadRequest
	case errors.Is(err, vfs.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, vfs.ErrBackend):
		status = http.StatusBadGateway
		h.log(c).Error("Storage backend failure", zap.String("op", op), zap.Error(err))
	}

	c.JSON(status, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

func bindPathQuery(c *gin.Context) (string, bool) {
	var q pathQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return "", false
	}
	return q.Path, true
}

// Readdir lists the stored direct children of a directory
func (h *Handlers) Readdir(c *gin.Context) {
	p, ok := bindPathQuery(c)
	if !ok {
		return
	}

	children, err := h.files.Readdir(c.Request.Context(), p)
	if err != nil {
		h.fsError(c, "readdir", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"path":     vfs.Clean(p),
		"children": children,
	})
}

// List lists directory children with metadata
func (h *Handlers) List(c *gin.Context) {
	p, ok := bindPathQuery(c)
	if !ok {
		return
	}

	entries, err := h.files.List(c.Request.Context(), p)
	if err != nil {
		h.fsError(c, "list", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"path":    vfs.Clean(p),
		"entries": entries,
	})
}

// Stat describes a path. Inferred directories are reported with
// exists=false and listable=true.
func (h *Handlers) Stat(c *gin.Context) {
	p, ok := bindPathQuery(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	st, err := h.files.Stat(ctx, p)
	if err != nil {
		h.fsError(c, "stat", err)
		return
	}
	if st != nil {
		c.JSON(http.StatusOK, gin.H{"exists": true, "listable": st.IsDirectory, "stat": st})
		return
	}

	resolved, err := h.files.Resolve(ctx, p)
	if err != nil {
		h.fsError(c, "stat", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"exists":   false,
		"listable": resolved != nil && resolved.IsDirectory,
		"stat":     resolved,
	})
}

// ReadFile returns the content of a file
func (h *Handlers) ReadFile(c *gin.Context) {
	p, ok := bindPathQuery(c)
	if !ok {
		return
	}

	content, err := h.files.ReadFile(c.Request.Context(), p)
	if err != nil {
		h.fsError(c, "read", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"path":    vfs.Clean(p),
		"content": content,
	})
}

// WriteFile creates or replaces a file
func (h *Handlers) WriteFile(c *gin.Context) {
	var req writeFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.files.WriteFile(c.Request.Context(), req.Path, req.Content); err != nil {
		h.fsError(c, "write", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"path":    vfs.Clean(req.Path),
	})
}

// Mkdir creates a directory entry
func (h *Handlers) Mkdir(c *gin.Context) {
	var req pathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.files.Mkdir(c.Request.Context(), req.Path); err != nil {
		h.fsError(c, "mkdir", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"path":    vfs.Clean(req.Path),
	})
}

// Unlink removes the entry at a path
func (h *Handlers) Unlink(c *gin.Context) {
	p, ok := bindPathQuery(c)
	if !ok {
		return
	}

	if err := h.files.Unlink(c.Request.Context(), p); err != nil {
		h.fsError(c, "unlink", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"path":    vfs.Clean(p),
	})
}

// Glob matches stored paths against a ** pattern
func (h *Handlers) Glob(c *gin.Context) {
	pattern := c.Query("pattern")
	if pattern == "" {
		badRequest(c, errors.New("pattern is required"))
		return
	}

	matches, err := h.files.Glob(c.Request.Context(), pattern)
	if err != nil {
		h.fsError(c, "glob", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pattern": pattern,
		"matches": matches,
	})
}

// ResetFiles wipes the whole path store. It requires confirm=true.
func (h *Handlers) ResetFiles(c *gin.Context) {
	if c.Query("confirm") != "true" {
		badRequest(c, errors.New("reset requires confirm=true"))
		return
	}

	if err := h.files.Reset(c.Request.Context()); err != nil {
		h.fsError(c, "reset", err)
		return
	}
	h.log(c).Warn("Path store reset")
	c.JSON(http.StatusOK, gin.H{"success": true})
}
