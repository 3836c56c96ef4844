package kvstore

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/monitoring"
)

func TestInstrumentedContract(t *testing.T) {
	testBackendContract(t, func(t *testing.T) Driver {
		return Instrument(NewMemory(), monitoring.NewMetrics())
	})
}

func TestInstrumentCountsOperations(t *testing.T) {
	ctx := context.Background()
	metrics := monitoring.NewMetrics()
	d := Instrument(NewMemory(), metrics)

	b, err := d.Open(ctx, CollectionFiles)
	require.NoError(t, err)

	require.NoError(t, b.Put(ctx, "a", []byte("1")))
	require.NoError(t, b.Put(ctx, "b", []byte("2")))
	_, _, err = b.Get(ctx, "a")
	require.NoError(t, err)
	_, err = b.Keys(ctx)
	require.NoError(t, err)

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.StorageOps.WithLabelValues(CollectionFiles, "put", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.StorageOps.WithLabelValues(CollectionFiles, "get", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.StorageOps.WithLabelValues(CollectionFiles, "keys", "success")))
}

func TestInstrumentNilMetrics(t *testing.T) {
	d := NewMemory()
	assert.Same(t, d, Instrument(d, nil))
}
