package keylock

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestKeyLock_AutoCleanup(t *testing.T) {
	kl := NewKeyLock()

	unlock := kl.Lock("/docs/a.txt")
	if kl.Len() != 1 {
		t.Fatalf("Expected 1 lock entry, got %d", kl.Len())
	}
	unlock()

	if kl.Len() != 0 {
		t.Fatalf("Expected 0 lock entries after unlock, got %d", kl.Len())
	}
}

func TestKeyLock_UnlockIsIdempotent(t *testing.T) {
	kl := NewKeyLock()

	unlock := kl.RLock("/a")
	unlock()
	unlock()

	if kl.Len() != 0 {
		t.Fatalf("Expected 0 lock entries, got %d", kl.Len())
	}
}

func TestKeyLock_MultipleKeys(t *testing.T) {
	kl := NewKeyLock()

	unlock1 := kl.Lock("/a")
	unlock2 := kl.Lock("/b")
	unlock3 := kl.RLock("/c")

	if kl.Len() != 3 {
		t.Fatalf("Expected 3 lock entries, got %d", kl.Len())
	}

	unlock1()
	unlock2()
	unlock3()

	if kl.Len() != 0 {
		t.Fatalf("Expected 0 lock entries, got %d", kl.Len())
	}
}

func TestKeyLock_ExclusionBetweenWriters(t *testing.T) {
	kl := NewKeyLock()
	var inside int32

	const writers = 50
	var wg sync.WaitGroup
	wg.Add(writers)

	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			unlock := kl.Lock("/shared")
			defer unlock()

			if n := atomic.AddInt32(&inside, 1); n != 1 {
				t.Errorf("Expected exclusive access, found %d holders", n)
			}
			time.Sleep(100 * time.Microsecond)
			atomic.AddInt32(&inside, -1)
		}()
	}

	wg.Wait()

	if kl.Len() != 0 {
		t.Fatalf("Expected 0 lock entries, got %d", kl.Len())
	}
}

func TestKeyLock_ConcurrentReaders(t *testing.T) {
	kl := NewKeyLock()

	unlock1 := kl.RLock("/shared")
	done := make(chan struct{})
	go func() {
		unlock2 := kl.RLock("/shared")
		unlock2()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second reader blocked behind first reader")
	}
	unlock1()
}
