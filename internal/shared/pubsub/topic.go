// Package pubsub provides a small typed publish/subscribe primitive used by
// the desktop engines to tell the presentation layer that state changed.
//
// Delivery is synchronous: Publish returns after every subscriber has run.
// Subscribers are called in registration order over a snapshot of the
// subscriber list taken when Publish starts, so a subscriber may subscribe
// or unsubscribe (itself or others) while being notified.
package pubsub

import "sync"

// Topic fans a value out to its subscribers
type Topic[T any] struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// NewTopic creates an empty topic
func NewTopic[T any]() *Topic[T] {
	return &Topic[T]{}
}

// Subscribe registers fn and returns a function that removes it. The
// returned function is idempotent.
func (t *Topic[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	t.mu.Lock()
	t.nextID++
	sid := t.nextID
	t.subs = append(t.subs, subscriber[T]{id: sid, fn: fn})
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { t.remove(sid) })
	}
}

func (t *Topic[T]) remove(sid uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, s := range t.subs {
		if s.id == sid {
			// Copy instead of shifting in place: in-flight Publish calls
			// iterate the old backing array.
			next := make([]subscriber[T], 0, len(t.subs)-1)
			next = append(next, t.subs[:i]...)
			t.subs = append(next, t.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers v to every current subscriber and reports how many
// subscribers it reached
func (t *Topic[T]) Publish(v T) int {
	t.mu.RLock()
	snapshot := t.subs
	t.mu.RUnlock()

	for _, s := range snapshot {
		s.fn(v)
	}
	return len(snapshot)
}

// Len returns the number of subscribers
func (t *Topic[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.subs)
}
