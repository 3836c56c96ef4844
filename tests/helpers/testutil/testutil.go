// Package testutil provides testing utilities and helpers for backend tests.
package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/window"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/kvstore"
)

// ErrBackendDown is the failure returned by NewFailingBackend.
var ErrBackendDown = errors.New("backend unavailable")

// MockBackend is a mock implementation of kvstore.Backend for testing.
type MockBackend struct {
	mock.Mock
}

var _ kvstore.Backend = (*MockBackend)(nil)

// Put mocks the Put method.
func (m *MockBackend) Put(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// Get mocks the Get method.
func (m *MockBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}

// Delete mocks the Delete method.
func (m *MockBackend) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// Keys mocks the Keys method.
func (m *MockBackend) Keys(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Destroy mocks the Destroy method.
func (m *MockBackend) Destroy(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// NewFailingBackend creates a mock backend whose every operation fails
// with ErrBackendDown.
func NewFailingBackend(t *testing.T) *MockBackend {
	t.Helper()
	m := new(MockBackend)

	m.On("Put", mock.Anything, mock.Anything, mock.Anything).Return(ErrBackendDown).Maybe()
	m.On("Get", mock.Anything, mock.Anything).Return(nil, false, ErrBackendDown).Maybe()
	m.On("Delete", mock.Anything, mock.Anything).Return(ErrBackendDown).Maybe()
	m.On("Keys", mock.Anything).Return(nil, ErrBackendDown).Maybe()
	m.On("Destroy", mock.Anything).Return(ErrBackendDown).Maybe()

	return m
}

// NewMemoryBackend opens a fresh in-memory collection.
func NewMemoryBackend(t *testing.T, collection string) kvstore.Backend {
	t.Helper()

	driver := kvstore.NewMemory()
	t.Cleanup(func() { driver.Close() })

	backend, err := driver.Open(context.Background(), collection)
	if err != nil {
		t.Fatalf("failed to open %s: %v", collection, err)
	}
	return backend
}

// NewTestRegistry creates a window registry with a notepad and a calculator registered.
func NewTestRegistry(t *testing.T) *window.Registry {
	t.Helper()

	r := window.NewRegistry(nil)
	r.RegisterApp("notepad", func() window.Content {
		return window.Content{Component: "NotepadApp"}
	}, window.Settings{Title: "Notepad", DefaultWidth: 800, DefaultHeight: 600})
	r.RegisterApp("calculator", nil, window.Settings{Title: "Calculator", MinWidth: 380, MinHeight: 600})
	return r
}

// Bool returns a pointer to b, for tri-state arguments.
func Bool(b bool) *bool {
	return &b
}
