package client

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "github.com/GriffinCanCode/WebDesk/backend/internal/api/http"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/notify"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/preferences"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/kvstore"
	"github.com/GriffinCanCode/WebDesk/backend/tests/helpers/testutil"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	files := vfs.NewStore(testutil.NewMemoryBackend(t, kvstore.CollectionFiles), nil)
	prefs := preferences.NewService(testutil.NewMemoryBackend(t, kvstore.CollectionPreferences), nil)
	router := gin.New()
	apihttp.RegisterRoutes(router, apihttp.NewHandlers(testutil.NewTestRegistry(t), files, prefs, notify.NewBus(nil), nil))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestFileCommands(t *testing.T) {
	c := newTestClient(t)

	require.NoError(t, c.Mkdir("/docs"))
	require.NoError(t, c.WriteFile("/docs/a.txt", "hello"))

	content, err := c.ReadFile("/docs/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", content)

	children, err := c.Readdir("/docs")
	require.NoError(t, err)
	assert.Equal(t, []string{"/docs/a.txt"}, children)

	entries, err := c.List("/")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "docs", entries[0].Name)

	require.NoError(t, c.Unlink("/docs/a.txt"))
	_, err = c.ReadFile("/docs/a.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAPIErrorCarriesMessage(t *testing.T) {
	c := newTestClient(t)

	err := c.WriteFile("/", "x")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.Contains(t, apiErr.Message, "invalid path")
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestWindowCommands(t *testing.T) {
	c := newTestClient(t)

	windowID, ok, err := c.OpenApp("notepad")
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = c.OpenApp("nope")
	require.NoError(t, err)
	assert.False(t, ok)

	result, err := c.OpenFile("/a.txt", "calculator")
	require.NoError(t, err)
	assert.True(t, result.Opened)
	assert.False(t, result.Delivered)

	windows, current, err := c.Windows()
	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, windowID, windows[0].ID)
	assert.Equal(t, result.WindowID, current)
}
