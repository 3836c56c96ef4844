// Package client is a small Go client for the desktop HTTP API, used by
// the deskctl command.
package client

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/notify"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/window"
)

// ErrNotFound is returned for 404 responses.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Is maps 404 responses to ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

type errorBody struct {
	Error string `json:"error"`
}

// Client talks to one server.
type Client struct {
	resty *resty.Client
}

// New creates a client for baseURL, e.g. http://localhost:8000
func New(baseURL string) *Client {
	r := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30*time.Second).
		SetHeader("User-Agent", "deskctl/1.0").
		SetError(&errorBody{})
	return &Client{resty: r}
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		msg := resp.Status()
		if body, ok := resp.Error().(*errorBody); ok && body.Error != "" {
			msg = body.Error
		}
		return &APIError{Status: resp.StatusCode(), Message: msg}
	}
	return nil
}

// Readdir lists the stored children of a directory
func (c *Client) Readdir(path string) ([]string, error) {
	var out struct {
		Children []string `json:"children"`
	}
	resp, err := c.resty.R().SetQueryParam("path", path).SetResult(&out).Get("/fs/readdir")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return out.Children, nil
}

// List lists a directory with metadata
func (c *Client) List(path string) ([]vfs.DirEntry, error) {
	var out struct {
		Entries []vfs.DirEntry `json:"entries"`
	}
	resp, err := c.resty.R().SetQueryParam("path", path).SetResult(&out).Get("/fs/list")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

// ReadFile returns a file's content
func (c *Client) ReadFile(path string) (string, error) {
	var out struct {
		Content string `json:"content"`
	}
	resp, err := c.resty.R().SetQueryParam("path", path).SetResult(&out).Get("/fs/file")
	if err := check(resp, err); err != nil {
		return "", err
	}
	return out.Content, nil
}

// WriteFile creates or replaces a file
func (c *Client) WriteFile(path, content string) error {
	resp, err := c.resty.R().
		SetBody(map[string]string{"path": path, "content": content}).
		Put("/fs/file")
	return check(resp, err)
}

// Mkdir creates a directory
func (c *Client) Mkdir(path string) error {
	resp, err := c.resty.R().SetBody(map[string]string{"path": path}).Post("/fs/mkdir")
	return check(resp, err)
}

// Unlink removes a path
func (c *Client) Unlink(path string) error {
	resp, err := c.resty.R().SetQueryParam("path", path).Delete("/fs/file")
	return check(resp, err)
}

// Windows returns the open windows and the focused window id
func (c *Client) Windows() ([]window.Window, string, error) {
	var out struct {
		Windows []window.Window `json:"windows"`
		Current string          `json:"current"`
	}
	resp, err := c.resty.R().SetResult(&out).Get("/windows")
	if err := check(resp, err); err != nil {
		return nil, "", err
	}
	return out.Windows, out.Current, nil
}

// OpenApp opens a window of app. ok is false for unknown apps.
func (c *Client) OpenApp(app string) (windowID string, ok bool, err error) {
	var out struct {
		Success  bool   `json:"success"`
		WindowID string `json:"window_id"`
	}
	resp, err := c.resty.R().SetPathParam("name", app).SetResult(&out).Post("/apps/{name}/open")
	if err := check(resp, err); err != nil {
		return "", false, err
	}
	return out.WindowID, out.Success, nil
}

// OpenFile hands path to app and opens a window for it
func (c *Client) OpenFile(path, app string) (notify.OpenResult, error) {
	var out struct {
		Result notify.OpenResult `json:"result"`
	}
	resp, err := c.resty.R().
		SetBody(map[string]string{"path": path, "app": app}).
		SetResult(&out).
		Post("/open-file")
	if err := check(resp, err); err != nil {
		return notify.OpenResult{}, err
	}
	return out.Result, nil
}
