package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned without running the call while the circuit is open,
// or while a half-open trial is already in flight.
var ErrOpen = errors.New("circuit breaker is open")

var errPanic = errors.New("call panicked")

// State represents the circuit breaker state
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Settings configures the circuit breaker behavior
type Settings struct {
	// Failures is the number of consecutive failures that opens the circuit.
	Failures uint32
	// Cooldown is how long the circuit stays open before a trial.
	Cooldown time.Duration
	// IsFailure decides whether an error counts against the circuit.
	IsFailure func(err error) bool
	// OnStateChange is called outside the lock after every transition.
	OnStateChange func(name string, from, to State)
}

// Breaker implements the circuit breaker pattern
type Breaker struct {
	name     string
	settings Settings
	now      func() time.Time

	mu       sync.Mutex
	state    State
	failures uint32
	openedAt time.Time
	probing  bool
}

// New creates a new circuit breaker with the given settings
func New(name string, settings Settings) *Breaker {
	if settings.Failures == 0 {
		settings.Failures = 5
	}
	if settings.Cooldown <= 0 {
		settings.Cooldown = 30 * time.Second
	}
	if settings.IsFailure == nil {
		settings.IsFailure = DefaultIsFailure
	}
	return &Breaker{
		name:     name,
		settings: settings,
		now:      time.Now,
	}
}

// DefaultIsFailure counts every error except context cancellation.
func DefaultIsFailure(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled)
}

// Name returns the name of the circuit breaker
func (b *Breaker) Name() string {
	return b.name
}

// State returns the current state of the circuit breaker
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && b.cooledDown() {
		return StateHalfOpen
	}
	return b.state
}

// Do runs fn if the circuit admits it and records the outcome.
func (b *Breaker) Do(fn func() error) error {
	trial, err := b.admit()
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			b.record(trial, errPanic)
			panic(r)
		}
	}()

	err = fn()
	b.record(trial, err)
	return err
}

func (b *Breaker) cooledDown() bool {
	return !b.now().Before(b.openedAt.Add(b.settings.Cooldown))
}

// admit reports whether the call may run and whether it is the half-open trial.
func (b *Breaker) admit() (trial bool, err error) {
	b.mu.Lock()
	var from, to State
	changed := false
	defer func() {
		b.mu.Unlock()
		if changed {
			b.changed(from, to)
		}
	}()

	switch b.state {
	case StateClosed:
		return false, nil
	case StateOpen:
		if !b.cooledDown() {
			return false, ErrOpen
		}
		from, to, changed = StateOpen, StateHalfOpen, true
		b.state = StateHalfOpen
	}

	if b.probing {
		return false, ErrOpen
	}
	b.probing = true
	return true, nil
}

func (b *Breaker) record(trial bool, err error) {
	failed := b.settings.IsFailure(err)

	b.mu.Lock()
	from := b.state
	if trial {
		b.probing = false
	}

	switch {
	case !failed && err != nil:
		// Neither success nor failure; a cancelled trial leaves the circuit half-open.
	case !failed:
		b.failures = 0
		if trial {
			b.state = StateClosed
		}
	case trial:
		b.state = StateOpen
		b.openedAt = b.now()
	case b.state == StateClosed:
		b.failures++
		if b.failures >= b.settings.Failures {
			b.state = StateOpen
			b.openedAt = b.now()
			b.failures = 0
		}
	}
	to := b.state
	b.mu.Unlock()

	if from != to {
		b.changed(from, to)
	}
}

func (b *Breaker) changed(from, to State) {
	if b.settings.OnStateChange != nil {
		b.settings.OnStateChange(b.name, from, to)
	}
}
