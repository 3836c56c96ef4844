package resilience

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDown = errors.New("connection refused")

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(settings Settings) (*Breaker, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	b := New("test", settings)
	b.now = clock.now
	return b, clock
}

func fail() error    { return errDown }
func succeed() error { return nil }

func TestBreakerStateTransitions(t *testing.T) {
	tests := []struct {
		name          string
		calls         []func() error
		expectedState State
	}{
		{"stays closed on successes", []func() error{succeed, succeed, succeed}, StateClosed},
		{"stays closed below threshold", []func() error{fail, fail}, StateClosed},
		{"opens after consecutive failures", []func() error{fail, fail, fail}, StateOpen},
		{"success resets the streak", []func() error{fail, fail, succeed, fail, fail}, StateClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := newTestBreaker(Settings{Failures: 3, Cooldown: time.Minute})
			for _, call := range tt.calls {
				_ = b.Do(call)
			}
			assert.Equal(t, tt.expectedState, b.State())
		})
	}
}

func TestBreakerOpenRejectsWithoutCalling(t *testing.T) {
	b, _ := newTestBreaker(Settings{Failures: 2, Cooldown: time.Minute})
	_ = b.Do(fail)
	_ = b.Do(fail)

	called := false
	err := b.Do(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called)
}

func TestBreakerHalfOpenProbe(t *testing.T) {
	b, clock := newTestBreaker(Settings{Failures: 1, Cooldown: time.Minute})
	require.ErrorIs(t, b.Do(fail), errDown)
	require.Equal(t, StateOpen, b.State())

	clock.advance(time.Minute)
	assert.Equal(t, StateHalfOpen, b.State())

	// A failed trial reopens for another cooldown.
	assert.ErrorIs(t, b.Do(fail), errDown)
	assert.Equal(t, StateOpen, b.State())
	assert.ErrorIs(t, b.Do(succeed), ErrOpen)

	clock.advance(time.Minute)
	require.NoError(t, b.Do(succeed))
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerSingleProbe(t *testing.T) {
	b, clock := newTestBreaker(Settings{Failures: 1, Cooldown: time.Second})
	_ = b.Do(fail)
	clock.advance(time.Second)

	err := b.Do(func() error {
		// A second caller arriving during the trial is rejected.
		assert.ErrorIs(t, b.Do(succeed), ErrOpen)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerIgnoresCancellation(t *testing.T) {
	b, _ := newTestBreaker(Settings{Failures: 1, Cooldown: time.Minute})

	err := b.Do(func() error { return fmt.Errorf("query: %w", context.Canceled) })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerCustomIsFailure(t *testing.T) {
	errNotFound := errors.New("not found")
	b, _ := newTestBreaker(Settings{
		Failures: 1,
		Cooldown: time.Minute,
		IsFailure: func(err error) bool {
			return DefaultIsFailure(err) && !errors.Is(err, errNotFound)
		},
	})

	_ = b.Do(func() error { return errNotFound })
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerPanicCountsAsFailure(t *testing.T) {
	b, _ := newTestBreaker(Settings{Failures: 1, Cooldown: time.Minute})

	assert.Panics(t, func() {
		_ = b.Do(func() error { panic("boom") })
	})
	assert.Equal(t, StateOpen, b.State())
}

func TestBreakerCallbacks(t *testing.T) {
	var transitions []string
	b, clock := newTestBreaker(Settings{
		Failures: 2,
		Cooldown: 10 * time.Second,
		OnStateChange: func(name string, from, to State) {
			assert.Equal(t, "test", name)
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	_ = b.Do(fail)
	_ = b.Do(fail)
	clock.advance(10 * time.Second)
	_ = b.Do(succeed)

	assert.Equal(t, []string{"closed->open", "open->half-open", "half-open->closed"}, transitions)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "unknown", State(42).String())
}
