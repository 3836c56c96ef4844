package kvstore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/config"
)

// Etcd stores collections under <prefix>/<collection>/ in an etcd cluster.
type Etcd struct {
	client *clientv3.Client
	prefix string
}

// NewEtcd creates a client for the configured endpoints. The connection is
// established lazily by the client on first request.
func NewEtcd(cfg config.EtcdConfig) (*Etcd, error) {
	if len(cfg.Endpoints) == 0 {
		return nil, fmt.Errorf("at least one etcd endpoint is required")
	}

	client, err := clientv3.New(clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: cfg.DialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to etcd: %w", err)
	}

	return &Etcd{client: client, prefix: normalizePrefix(cfg.Prefix)}, nil
}

func normalizePrefix(prefix string) string {
	return strings.TrimRight(prefix, "/")
}

// collectionPrefix returns the key prefix for a collection, always ending in "/".
func collectionPrefix(prefix, collection string) string {
	return prefix + "/" + collection + "/"
}

// Open implements Driver.
func (e *Etcd) Open(_ context.Context, collection string) (Backend, error) {
	if err := validateCollection(collection); err != nil {
		return nil, err
	}
	if e.client == nil {
		return nil, ErrClosed
	}
	return &etcdBackend{client: e.client, prefix: collectionPrefix(e.prefix, collection)}, nil
}

// Close implements Driver.
func (e *Etcd) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

type etcdBackend struct {
	client *clientv3.Client
	prefix string
}

func (b *etcdBackend) Put(ctx context.Context, key string, value []byte) error {
	if _, err := b.client.Put(ctx, b.prefix+key, string(value)); err != nil {
		return fmt.Errorf("failed to put %s: %w", key, err)
	}
	return nil
}

func (b *etcdBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	resp, err := b.client.Get(ctx, b.prefix+key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	if len(resp.Kvs) == 0 {
		return nil, false, nil
	}
	return resp.Kvs[0].Value, true, nil
}

func (b *etcdBackend) Delete(ctx context.Context, key string) error {
	if _, err := b.client.Delete(ctx, b.prefix+key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (b *etcdBackend) Keys(ctx context.Context) ([]string, error) {
	resp, err := b.client.Get(ctx, b.prefix, clientv3.WithPrefix(), clientv3.WithKeysOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	keys := make([]string, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		keys = append(keys, strings.TrimPrefix(string(kv.Key), b.prefix))
	}
	sort.Strings(keys)
	return keys, nil
}

func (b *etcdBackend) Destroy(ctx context.Context) error {
	if _, err := b.client.Delete(ctx, b.prefix, clientv3.WithPrefix()); err != nil {
		return fmt.Errorf("failed to destroy collection: %w", err)
	}
	return nil
}
