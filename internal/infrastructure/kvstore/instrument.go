package kvstore

import (
	"context"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/monitoring"
)

// Instrument wraps a driver so every backend operation is counted and timed.
func Instrument(d Driver, metrics *monitoring.Metrics) Driver {
	if metrics == nil {
		return d
	}
	return &instrumentedDriver{Driver: d, metrics: metrics}
}

type instrumentedDriver struct {
	Driver
	metrics *monitoring.Metrics
}

func (d *instrumentedDriver) Open(ctx context.Context, collection string) (Backend, error) {
	b, err := d.Driver.Open(ctx, collection)
	if err != nil {
		return nil, err
	}
	return &instrumentedBackend{next: b, metrics: d.metrics, collection: collection}, nil
}

type instrumentedBackend struct {
	next       Backend
	metrics    *monitoring.Metrics
	collection string
}

func observe(timer *monitoring.Timer, err error) {
	if err != nil {
		timer.Stop("error")
		return
	}
	timer.Stop("success")
}

func (b *instrumentedBackend) Put(ctx context.Context, key string, value []byte) error {
	timer := monitoring.NewTimer(b.metrics, b.collection, "put")
	err := b.next.Put(ctx, key, value)
	observe(timer, err)
	return err
}

func (b *instrumentedBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	timer := monitoring.NewTimer(b.metrics, b.collection, "get")
	v, ok, err := b.next.Get(ctx, key)
	observe(timer, err)
	return v, ok, err
}

func (b *instrumentedBackend) Delete(ctx context.Context, key string) error {
	timer := monitoring.NewTimer(b.metrics, b.collection, "delete")
	err := b.next.Delete(ctx, key)
	observe(timer, err)
	return err
}

func (b *instrumentedBackend) Keys(ctx context.Context) ([]string, error) {
	timer := monitoring.NewTimer(b.metrics, b.collection, "keys")
	keys, err := b.next.Keys(ctx)
	observe(timer, err)
	return keys, err
}

func (b *instrumentedBackend) Destroy(ctx context.Context) error {
	timer := monitoring.NewTimer(b.metrics, b.collection, "destroy")
	err := b.next.Destroy(ctx)
	observe(timer, err)
	return err
}
