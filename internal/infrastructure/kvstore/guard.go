package kvstore

import (
	"context"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/resilience"
)

// Guard routes every backend operation of d through breaker, so a failing
// remote store rejects calls with resilience.ErrOpen instead of waiting on
// each timeout. All collections of d share the breaker.
func Guard(d Driver, breaker *resilience.Breaker) Driver {
	if breaker == nil {
		return d
	}
	return &guardedDriver{Driver: d, breaker: breaker}
}

type guardedDriver struct {
	Driver
	breaker *resilience.Breaker
}

func (d *guardedDriver) Open(ctx context.Context, collection string) (Backend, error) {
	b, err := d.Driver.Open(ctx, collection)
	if err != nil {
		return nil, err
	}
	return &guardedBackend{next: b, breaker: d.breaker}, nil
}

type guardedBackend struct {
	next    Backend
	breaker *resilience.Breaker
}

func (b *guardedBackend) Put(ctx context.Context, key string, value []byte) error {
	return b.breaker.Do(func() error {
		return b.next.Put(ctx, key, value)
	})
}

func (b *guardedBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		v  []byte
		ok bool
	)
	err := b.breaker.Do(func() error {
		var err error
		v, ok, err = b.next.Get(ctx, key)
		return err
	})
	return v, ok, err
}

func (b *guardedBackend) Delete(ctx context.Context, key string) error {
	return b.breaker.Do(func() error {
		return b.next.Delete(ctx, key)
	})
}

func (b *guardedBackend) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := b.breaker.Do(func() error {
		var err error
		keys, err = b.next.Keys(ctx)
		return err
	})
	return keys, err
}

func (b *guardedBackend) Destroy(ctx context.Context) error {
	return b.breaker.Do(func() error {
		return b.next.Destroy(ctx)
	})
}
