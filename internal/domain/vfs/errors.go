package vfs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no entry exists at a path.
	ErrNotFound = errors.New("vfs: not found")

	// ErrInvalidPath is returned for paths an operation cannot act on, such
	// as writing file content to the root.
	ErrInvalidPath = errors.New("vfs: invalid path")

	// ErrBackend matches every *BackendError via errors.Is.
	ErrBackend = errors.New("vfs: backend failure")
)

// BackendError wraps a failure of the underlying key-value store.
type BackendError struct {
	Op   string
	Path string
	Err  error
}

func (e *BackendError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("vfs: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("vfs: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// Is reports true for ErrBackend so callers need not type-assert.
func (e *BackendError) Is(target error) bool { return target == ErrBackend }

func backendErr(op, p string, err error) error {
	return &BackendError{Op: op, Path: p, Err: err}
}

func notFound(p string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, p)
}

func invalidPath(p, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidPath, p, reason)
}
