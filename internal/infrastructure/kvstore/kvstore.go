package kvstore

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/config"
)

// Well-known collections
const (
	CollectionFiles       = "files"
	CollectionPreferences = "preferences"
)

var (
	// ErrClosed is returned by operations on a closed driver.
	ErrClosed = errors.New("kvstore: driver closed")

	// ErrInvalidCollection is returned when a collection name is empty or contains a slash.
	ErrInvalidCollection = errors.New("kvstore: invalid collection name")
)

// Driver owns the underlying storage and opens named collections.
type Driver interface {
	// Open returns the backend for a collection, creating it if necessary.
	// Opening the same collection twice yields views over the same data.
	Open(ctx context.Context, collection string) (Backend, error)
	Close() error
}

// Backend is a flat key-value collection.
type Backend interface {
	Put(ctx context.Context, key string, value []byte) error
	// Get reports false when the key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, key string) error
	// Keys returns every key in the collection, sorted.
	Keys(ctx context.Context) ([]string, error)
	// Destroy removes the collection and all its keys. The backend stays
	// usable and starts empty.
	Destroy(ctx context.Context) error
}

// Open creates the driver selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (Driver, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Driver {
	case config.DriverMemory:
		logger.Info("Using in-memory storage")
		return NewMemory(), nil
	case config.DriverDisk:
		logger.Info("Using disk storage", zap.String("dir", cfg.Dir))
		return NewDisk(cfg.Dir)
	case config.DriverPostgres:
		logger.Info("Using PostgreSQL storage",
			zap.String("host", cfg.Postgres.Host),
			zap.String("database", cfg.Postgres.Database))
		return NewPostgres(ctx, cfg.Postgres)
	case config.DriverEtcd:
		logger.Info("Using etcd storage",
			zap.Strings("endpoints", cfg.Etcd.Endpoints),
			zap.String("prefix", cfg.Etcd.Prefix))
		return NewEtcd(cfg.Etcd)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func validateCollection(name string) error {
	if name == "" {
		return ErrInvalidCollection
	}
	for i := 0; i < len(name); i++ {
		if name[i] == '/' {
			return fmt.Errorf("%w: %q", ErrInvalidCollection, name)
		}
	}
	return nil
}
