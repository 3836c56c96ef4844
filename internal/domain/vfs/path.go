package vfs

import (
	"path"
	"strings"
)

// Root is the path of the root directory. It never has an entry.
const Root = "/"

// Clean normalizes p to an absolute path without a trailing slash.
// Relative paths are resolved against the root and ".." never escapes it.
func Clean(p string) string {
	return path.Clean("/" + p)
}

// Parent returns the parent directory of a cleaned path. The root is its own parent.
func Parent(p string) string {
	return path.Dir(p)
}

// Base returns the last element of a cleaned path.
func Base(p string) string {
	if p == Root {
		return Root
	}
	return path.Base(p)
}

// Join joins path elements and cleans the result.
func Join(elem ...string) string {
	return Clean(path.Join(elem...))
}

// childPrefix returns the prefix every descendant key of dir starts with.
func childPrefix(dir string) string {
	if dir == Root {
		return Root
	}
	return dir + "/"
}

// isDirectChild reports whether key sits exactly one level below dir.
func isDirectChild(dir, key string) bool {
	prefix := childPrefix(dir)
	if !strings.HasPrefix(key, prefix) || key == dir {
		return false
	}
	rest := strings.TrimSuffix(key[len(prefix):], "/")
	return rest != "" && !strings.Contains(rest, "/")
}

// firstSegment returns the name of the child of dir that key lives under,
// or "" when key is not a descendant of dir.
func firstSegment(dir, key string) string {
	prefix := childPrefix(dir)
	if !strings.HasPrefix(key, prefix) || key == dir {
		return ""
	}
	rest := key[len(prefix):]
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return rest[:i]
	}
	return rest
}

func validate(p string) error {
	if strings.ContainsRune(p, 0) {
		return invalidPath(p, "contains NUL")
	}
	return nil
}
