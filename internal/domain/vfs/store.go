package vfs

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/kvstore"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/keylock"
)

// Store is the virtual path store
type Store struct {
	backend kvstore.Backend
	locks   *keylock.KeyLock
	logger  *zap.Logger
	now     func() time.Time
}

// NewStore creates a store over an opened backend collection
func NewStore(backend kvstore.Backend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		backend: backend,
		locks:   keylock.NewKeyLock(),
		logger:  logger,
		now:     time.Now,
	}
}

// WriteFile creates or replaces a file entry
func (s *Store) WriteFile(ctx context.Context, p, content string) error {
	p = Clean(p)
	if err := validate(p); err != nil {
		return err
	}
	if p == Root {
		return invalidPath(p, "cannot write to the root")
	}

	unlock := s.locks.Lock(p)
	defer unlock()

	return s.put(ctx, "write", &entry{
		Path:      p,
		Data:      content,
		Timestamp: s.now().UnixMilli(),
	})
}

// ReadFile returns a file's content
func (s *Store) ReadFile(ctx context.Context, p string) (string, error) {
	p = Clean(p)
	if err := validate(p); err != nil {
		return "", err
	}

	unlock := s.locks.RLock(p)
	defer unlock()

	e, err := s.get(ctx, "read", p)
	if err != nil {
		return "", err
	}
	if e == nil {
		return "", notFound(p)
	}
	if e.IsDirectory {
		return "", invalidPath(p, "is a directory")
	}
	return e.Data, nil
}

// Mkdir creates an explicit directory entry. It is idempotent, and the root
// is accepted as a no-op.
func (s *Store) Mkdir(ctx context.Context, p string) error {
	p = Clean(p)
	if err := validate(p); err != nil {
		return err
	}
	if p == Root {
		return nil
	}

	unlock := s.locks.Lock(p)
	defer unlock()

	return s.put(ctx, "mkdir", &entry{
		Path:        p,
		IsDirectory: true,
		Timestamp:   s.now().UnixMilli(),
	})
}

// Unlink removes the entry at p only. Descendants are left in place and
// remain listable through inference.
func (s *Store) Unlink(ctx context.Context, p string) error {
	p = Clean(p)
	if err := validate(p); err != nil {
		return err
	}
	if p == Root {
		return nil
	}

	unlock := s.locks.Lock(p)
	defer unlock()

	if err := s.backend.Delete(ctx, p); err != nil {
		return backendErr("unlink", p, err)
	}
	s.logger.Debug("Unlinked path", zap.String("path", p))
	return nil
}

// Stat describes the stored entry at p, or returns nil when there is none.
// The root and inferred directories report nil.
func (s *Store) Stat(ctx context.Context, p string) (*Stat, error) {
	p = Clean(p)
	if err := validate(p); err != nil {
		return nil, err
	}
	if p == Root {
		return nil, nil
	}

	unlock := s.locks.RLock(p)
	defer unlock()

	e, err := s.get(ctx, "stat", p)
	if err != nil || e == nil {
		return nil, err
	}
	return e.stat(), nil
}

// Resolve is Stat extended to inferred directories, including the root.
// It returns nil when p is neither stored nor a prefix of a stored path.
func (s *Store) Resolve(ctx context.Context, p string) (*Stat, error) {
	st, err := s.Stat(ctx, p)
	if err != nil || st != nil {
		return st, err
	}

	p = Clean(p)
	inferred := &Stat{Path: p, IsDirectory: true, Kind: KindInferred}
	if p == Root {
		return inferred, nil
	}

	keys, err := s.keys(ctx, "resolve")
	if err != nil {
		return nil, err
	}
	prefix := childPrefix(p)
	i := sort.SearchStrings(keys, prefix)
	if i < len(keys) && len(keys[i]) > len(prefix) && keys[i][:len(prefix)] == prefix {
		return inferred, nil
	}
	return nil, nil
}

// Readdir returns the sorted absolute paths of the stored direct children
// of p. The directory itself is never included.
func (s *Store) Readdir(ctx context.Context, p string) ([]string, error) {
	p = Clean(p)
	if err := validate(p); err != nil {
		return nil, err
	}

	keys, err := s.keys(ctx, "readdir")
	if err != nil {
		return nil, err
	}

	children := make([]string, 0)
	for _, key := range keys {
		if isDirectChild(p, key) {
			children = append(children, key)
		}
	}
	return children, nil
}

// Reset destroys the whole backing collection
func (s *Store) Reset(ctx context.Context) error {
	if err := s.backend.Destroy(ctx); err != nil {
		return backendErr("reset", "", err)
	}
	s.logger.Info("Virtual disk reset")
	return nil
}

func (s *Store) put(ctx context.Context, op string, e *entry) error {
	raw, err := encodeEntry(e)
	if err != nil {
		return backendErr(op, e.Path, fmt.Errorf("encode entry: %w", err))
	}
	if err := s.backend.Put(ctx, e.Path, raw); err != nil {
		return backendErr(op, e.Path, err)
	}
	return nil
}

// get returns nil, nil when there is no entry.
func (s *Store) get(ctx context.Context, op, p string) (*entry, error) {
	raw, ok, err := s.backend.Get(ctx, p)
	if err != nil {
		return nil, backendErr(op, p, err)
	}
	if !ok {
		return nil, nil
	}
	e, err := decodeEntry(raw)
	if err != nil {
		return nil, backendErr(op, p, fmt.Errorf("decode entry: %w", err))
	}
	return e, nil
}

// keys returns every stored path, sorted.
func (s *Store) keys(ctx context.Context, op string) ([]string, error) {
	keys, err := s.backend.Keys(ctx)
	if err != nil {
		return nil, backendErr(op, "", err)
	}
	if !sort.StringsAreSorted(keys) {
		sort.Strings(keys)
	}
	return keys, nil
}
