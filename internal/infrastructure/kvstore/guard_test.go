package kvstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/resilience"
)

var errUnreachable = errors.New("dial tcp: connection refused")

// flakyDriver wraps the memory driver and fails every call while down is set.
type flakyDriver struct {
	*Memory
	down  bool
	calls int
}

func (d *flakyDriver) Open(ctx context.Context, collection string) (Backend, error) {
	b, err := d.Memory.Open(ctx, collection)
	if err != nil {
		return nil, err
	}
	return &flakyBackend{Backend: b, d: d}, nil
}

type flakyBackend struct {
	Backend
	d *flakyDriver
}

func (b *flakyBackend) Put(ctx context.Context, key string, value []byte) error {
	b.d.calls++
	if b.d.down {
		return errUnreachable
	}
	return b.Backend.Put(ctx, key, value)
}

func (b *flakyBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b.d.calls++
	if b.d.down {
		return nil, false, errUnreachable
	}
	return b.Backend.Get(ctx, key)
}

func TestGuardedContract(t *testing.T) {
	testBackendContract(t, func(t *testing.T) Driver {
		return Guard(NewMemory(), resilience.New("memory", resilience.Settings{}))
	})
}

func TestGuardFailsFastWhileOpen(t *testing.T) {
	ctx := context.Background()
	flaky := &flakyDriver{Memory: NewMemory(), down: true}
	d := Guard(flaky, resilience.New("flaky", resilience.Settings{Failures: 2, Cooldown: time.Hour}))

	files, err := d.Open(ctx, CollectionFiles)
	require.NoError(t, err)
	prefs, err := d.Open(ctx, CollectionPreferences)
	require.NoError(t, err)

	assert.ErrorIs(t, files.Put(ctx, "a", []byte("1")), errUnreachable)
	_, _, err = prefs.Get(ctx, "theme")
	assert.ErrorIs(t, err, errUnreachable)
	assert.Equal(t, 2, flaky.calls)

	// Both collections share the open circuit.
	_, _, err = files.Get(ctx, "a")
	assert.ErrorIs(t, err, resilience.ErrOpen)
	assert.ErrorIs(t, prefs.Put(ctx, "theme", []byte("dark")), resilience.ErrOpen)
	assert.Equal(t, 2, flaky.calls)
}

func TestGuardNilBreaker(t *testing.T) {
	d := NewMemory()
	assert.Same(t, Driver(d), Guard(d, nil))
}
