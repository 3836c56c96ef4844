package main

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "github.com/GriffinCanCode/WebDesk/backend/internal/api/http"
	"github.com/GriffinCanCode/WebDesk/backend/internal/client"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/notify"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/preferences"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/kvstore"
	"github.com/GriffinCanCode/WebDesk/backend/tests/helpers/testutil"
)

func newTestClient(t *testing.T) *client.Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	files := vfs.NewStore(testutil.NewMemoryBackend(t, kvstore.CollectionFiles), nil)
	prefs := preferences.NewService(testutil.NewMemoryBackend(t, kvstore.CollectionPreferences), nil)
	router := gin.New()
	apihttp.RegisterRoutes(router, apihttp.NewHandlers(testutil.NewTestRegistry(t), files, prefs, notify.NewBus(nil), nil))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return client.New(srv.URL)
}

func TestWriteCatLs(t *testing.T) {
	c := newTestClient(t)
	var out bytes.Buffer

	require.NoError(t, run(c, "mkdir", []string{"/docs"}, nil, &out))
	require.NoError(t, run(c, "write", []string{"/docs/a.txt", "hello", "world"}, nil, &out))
	require.NoError(t, run(c, "write", []string{"/docs/b.txt"}, strings.NewReader("from stdin"), &out))

	out.Reset()
	require.NoError(t, run(c, "cat", []string{"/docs/b.txt"}, nil, &out))
	assert.Equal(t, "from stdin", out.String())

	out.Reset()
	require.NoError(t, run(c, "ls", []string{"/docs"}, nil, &out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "a.txt"))

	require.NoError(t, run(c, "rm", []string{"/docs/a.txt"}, nil, &out))
	assert.Error(t, run(c, "cat", []string{"/docs/a.txt"}, nil, &out))
}

func TestOpenAndWindows(t *testing.T) {
	c := newTestClient(t)
	var out bytes.Buffer

	require.NoError(t, run(c, "open", []string{"notepad"}, nil, &out))
	windowID := strings.TrimSpace(out.String())
	assert.True(t, strings.HasPrefix(windowID, "notepad_"))

	assert.Error(t, run(c, "open", []string{"nope"}, nil, &out))
	assert.Error(t, run(c, "open", []string{"nope", "/a.txt"}, nil, &out))

	out.Reset()
	require.NoError(t, run(c, "windows", nil, nil, &out))
	assert.Contains(t, out.String(), "* "+windowID)
}

func TestUsageErrors(t *testing.T) {
	c := newTestClient(t)
	var out bytes.Buffer

	assert.ErrorIs(t, run(c, "cat", nil, nil, &out), errUsage)
	assert.ErrorIs(t, run(c, "open", nil, nil, &out), errUsage)
	assert.Error(t, run(c, "format", nil, nil, &out))
}
