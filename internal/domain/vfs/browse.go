package vfs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// DirectoryMimeType is reported for both directory kinds.
const DirectoryMimeType = "inode/directory"

// DirEntry is one row of a directory listing
type DirEntry struct {
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	Kind        Kind      `json:"kind"`
	IsDirectory bool      `json:"isDirectory"`
	Size        int       `json:"size"`
	ModifiedAt  time.Time `json:"modifiedAt"`
	MimeType    string    `json:"mimeType"`
}

// List returns the children of p with metadata. Unlike Readdir it also
// includes inferred subdirectories, so files nested under a directory that
// was never created (or was unlinked) stay reachable. Directories sort
// before files, then by name.
func (s *Store) List(ctx context.Context, p string) ([]DirEntry, error) {
	p = Clean(p)
	if err := validate(p); err != nil {
		return nil, err
	}

	keys, err := s.keys(ctx, "list")
	if err != nil {
		return nil, err
	}

	stored := make([]string, 0)
	inferred := make(map[string]bool)
	for _, key := range keys {
		seg := firstSegment(p, key)
		if seg == "" {
			continue
		}
		if isDirectChild(p, key) {
			stored = append(stored, key)
			continue
		}
		inferred[Join(p, seg)] = true
	}

	entries := make([]DirEntry, 0, len(stored)+len(inferred))
	for _, child := range stored {
		delete(inferred, child)

		e, err := s.get(ctx, "list", child)
		if err != nil {
			return nil, err
		}
		if e == nil {
			// Removed after the key scan
			continue
		}
		entries = append(entries, describe(e))
	}
	for child := range inferred {
		entries = append(entries, DirEntry{
			Name:        Base(child),
			Path:        child,
			Kind:        KindInferred,
			IsDirectory: true,
			MimeType:    DirectoryMimeType,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDirectory != entries[j].IsDirectory {
			return entries[i].IsDirectory
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

func describe(e *entry) DirEntry {
	st := e.stat()
	d := DirEntry{
		Name:        Base(e.Path),
		Path:        e.Path,
		Kind:        st.Kind,
		IsDirectory: st.IsDirectory,
		Size:        st.Size,
		ModifiedAt:  st.ModifiedAt,
		MimeType:    DirectoryMimeType,
	}
	if !e.IsDirectory {
		d.MimeType = mimetype.Detect([]byte(e.Data)).String()
	}
	return d
}

// Glob returns every stored path matching a doublestar pattern such as
// "/docs/**/*.txt". Relative patterns are anchored at the root.
func (s *Store) Glob(ctx context.Context, pattern string) ([]string, error) {
	if !strings.HasPrefix(pattern, "/") {
		pattern = "/" + pattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, invalidPath(pattern, "malformed pattern")
	}

	keys, err := s.keys(ctx, "glob")
	if err != nil {
		return nil, err
	}

	matches := make([]string, 0)
	for _, key := range keys {
		ok, err := doublestar.Match(pattern, key)
		if err != nil {
			return nil, invalidPath(pattern, err.Error())
		}
		if ok {
			matches = append(matches, key)
		}
	}
	return matches, nil
}

// ImportDir copies a host directory tree into the store under target.
// Directories become explicit entries and regular files are stored as
// text. Symlinks and special files are skipped. It returns the number of
// entries written.
func (s *Store) ImportDir(ctx context.Context, hostDir, target string) (int, error) {
	target = Clean(target)
	info, err := os.Stat(hostDir)
	if err != nil {
		return 0, fmt.Errorf("failed to stat import source: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("import source %s is not a directory", hostDir)
	}

	if err := s.Mkdir(ctx, target); err != nil {
		return 0, err
	}

	var written atomic.Int64
	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, hostDir, func(hostPath string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(hostDir, hostPath)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		dest := Join(target, filepath.ToSlash(rel))

		switch {
		case d.IsDir():
			if err := s.Mkdir(ctx, dest); err != nil {
				return err
			}
		case d.Type().IsRegular():
			data, err := os.ReadFile(hostPath)
			if err != nil {
				return err
			}
			if err := s.WriteFile(ctx, dest, string(data)); err != nil {
				return err
			}
		default:
			s.logger.Debug("Skipping non-regular file", zap.String("path", hostPath))
			return nil
		}
		written.Add(1)
		return nil
	})
	if err != nil {
		return int(written.Load()), fmt.Errorf("failed to import %s: %w", hostDir, err)
	}

	s.logger.Info("Imported host directory",
		zap.String("source", hostDir),
		zap.String("target", target),
		zap.Int64("entries", written.Load()))
	return int(written.Load()), nil
}
