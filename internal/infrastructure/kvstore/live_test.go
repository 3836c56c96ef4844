//go:build integration
// +build integration

package kvstore

import (
	"context"
	"os"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/config"
)

// emptied wraps a driver constructor so every contract case starts from
// empty collections on a shared server.
func emptied(open func(t *testing.T) Driver) func(t *testing.T) Driver {
	return func(t *testing.T) Driver {
		t.Helper()
		ctx := context.Background()
		d := open(t)
		for _, collection := range []string{CollectionFiles, CollectionPreferences} {
			b, err := d.Open(ctx, collection)
			require.NoError(t, err)
			require.NoError(t, b.Destroy(ctx))
		}
		t.Cleanup(func() { d.Close() })
		return d
	}
}

// Run with POSTGRES_* pointing at a disposable database.
func TestPostgresContract(t *testing.T) {
	if os.Getenv("WEBDESK_TEST_POSTGRES") == "" {
		t.Skip("WEBDESK_TEST_POSTGRES not set")
	}
	cfg, err := config.Load()
	require.NoError(t, err)

	testBackendContract(t, emptied(func(t *testing.T) Driver {
		d, err := NewPostgres(context.Background(), cfg.Storage.Postgres)
		require.NoError(t, err)
		return d
	}))
}

// Run with ETCD_ENDPOINTS pointing at a reachable cluster.
func TestEtcdContract(t *testing.T) {
	if os.Getenv("WEBDESK_TEST_ETCD") == "" {
		t.Skip("WEBDESK_TEST_ETCD not set")
	}
	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.Storage.Etcd.Prefix = "/webdesk-test/" + ulid.Make().String()

	testBackendContract(t, emptied(func(t *testing.T) Driver {
		d, err := NewEtcd(cfg.Storage.Etcd)
		require.NoError(t, err)
		return d
	}))
}
