package kvstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/zstd"
)

const snapshotExt = ".json.zst"

// Disk persists each collection as a compressed JSON snapshot under a
// directory. Every mutation rewrites the snapshot through a temp file and
// rename, so a crash leaves either the old or the new state on disk.
type Disk struct {
	dir     string
	encoder *zstd.Encoder
	decoder *zstd.Decoder

	mu          sync.Mutex
	collections map[string]*diskBackend
	closed      bool
}

// NewDisk creates a disk driver rooted at dir, creating it if needed.
func NewDisk(dir string) (*Disk, error) {
	if dir == "" {
		return nil, fmt.Errorf("disk storage requires a directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	return &Disk{
		dir:         dir,
		encoder:     encoder,
		decoder:     decoder,
		collections: make(map[string]*diskBackend),
	}, nil
}

// Dir returns the storage directory.
func (d *Disk) Dir() string {
	return d.dir
}

// Open implements Driver. The snapshot is loaded on first open.
func (d *Disk) Open(_ context.Context, collection string) (Backend, error) {
	if err := validateCollection(collection); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, ErrClosed
	}
	if b, ok := d.collections[collection]; ok {
		return b, nil
	}

	b := &diskBackend{
		driver: d,
		path:   filepath.Join(d.dir, collection+snapshotExt),
	}
	data, err := b.load()
	if err != nil {
		return nil, err
	}
	b.data = data
	d.collections[collection] = b
	return b, nil
}

// Close implements Driver.
func (d *Disk) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	d.decoder.Close()
	return d.encoder.Close()
}

type diskBackend struct {
	driver *Disk
	path   string

	mu   sync.RWMutex
	data map[string][]byte
}

func (b *diskBackend) load() (map[string][]byte, error) {
	raw, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string][]byte), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", b.path, err)
	}

	plain, err := b.driver.decoder.DecodeAll(raw, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress snapshot %s: %w", b.path, err)
	}

	data := make(map[string][]byte)
	if err := sonic.Unmarshal(plain, &data); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", b.path, err)
	}
	return data, nil
}

// persist writes the current map. Callers hold b.mu.
func (b *diskBackend) persist() error {
	plain, err := sonic.Marshal(b.data)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	compressed := b.driver.encoder.EncodeAll(plain, nil)

	dir := filepath.Dir(b.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(compressed); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

func (b *diskBackend) Put(_ context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	prev, existed := b.data[key]
	b.data[key] = append([]byte(nil), value...)
	if err := b.persist(); err != nil {
		if existed {
			b.data[key] = prev
		} else {
			delete(b.data, key)
		}
		return err
	}
	return nil
}

func (b *diskBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (b *diskBackend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	prev, existed := b.data[key]
	if !existed {
		return nil
	}
	delete(b.data, key)
	if err := b.persist(); err != nil {
		b.data[key] = prev
		return err
	}
	return nil
}

func (b *diskBackend) Keys(_ context.Context) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return sortedKeys(b.data), nil
}

func (b *diskBackend) Destroy(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.Remove(b.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove snapshot: %w", err)
	}
	b.data = make(map[string][]byte)
	return nil
}
