// Package keylock provides per-key reader/writer locks.
//
// Entries are created on first use and removed when the last holder
// releases them, so the lock table only holds keys that are in use.
package keylock

import "sync"

type entry struct {
	mu   sync.RWMutex
	refs int
}

// KeyLock hands out an RWMutex per key
type KeyLock struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewKeyLock creates an empty lock table
func NewKeyLock() *KeyLock {
	return &KeyLock{entries: make(map[string]*entry)}
}

func (kl *KeyLock) acquire(key string) *entry {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	e, ok := kl.entries[key]
	if !ok {
		e = &entry{}
		kl.entries[key] = e
	}
	e.refs++
	return e
}

func (kl *KeyLock) release(key string, e *entry) {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(kl.entries, key)
	}
}

// Lock takes the exclusive lock for key and returns its release function
func (kl *KeyLock) Lock(key string) (unlock func()) {
	e := kl.acquire(key)
	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()
			kl.release(key, e)
		})
	}
}

// RLock takes the shared lock for key and returns its release function
func (kl *KeyLock) RLock(key string) (unlock func()) {
	e := kl.acquire(key)
	e.mu.RLock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.RUnlock()
			kl.release(key, e)
		})
	}
}

// Len returns the number of keys currently held or waited on
func (kl *KeyLock) Len() int {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	return len(kl.entries)
}
