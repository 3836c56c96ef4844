// Package id provides identifier generation for the desktop backend.
//
// Identifiers are ULIDs: 26 Crockford base32 characters, millisecond
// timestamp first, so they sort by creation time. Window ids keep the
// "owner + separator + creation time" shape the presentation layer relies
// on, with 80 bits of monotonic entropy appended so two windows opened for
// the same app within one millisecond never collide.
//
// Format:
//   - Window ids: <appName>_<ULID>   (owner recovered with Owner)
//   - Request ids: req_<ULID>
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Separator joins an owner prefix and its ULID. Crockford base32 never
// contains it, so the last occurrence always delimits the ULID.
const Separator = "_"

// RequestPrefix marks ids attached to inbound API requests.
const RequestPrefix = "req"

// WindowID identifies a live window instance
type WindowID string

// RequestID identifies an API request
type RequestID string

func (id WindowID) String() string  { return string(id) }
func (id RequestID) String() string { return string(id) }

// Generator generates ULIDs with optional prefixes
type Generator struct {
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the process-wide generator
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator with monotonic, cryptographically
// seeded entropy
func NewGenerator() *Generator {
	return NewGeneratorWithEntropy(ulid.Monotonic(rand.Reader, 0))
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source.
// Useful for deterministic tests.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{
		entropy: entropy,
		now:     time.Now,
	}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy)
}

// GenerateString creates a new ULID as a string
func (g *Generator) GenerateString() string {
	return g.Generate().String()
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s%s%s", prefix, Separator, g.GenerateString())
}

// NewWindow generates a window id owned by appName
func (g *Generator) NewWindow(appName string) WindowID {
	return WindowID(g.GenerateWithPrefix(appName))
}

// NewRequestID generates a new request ID
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

// IsRequestID reports whether s has the req_<ULID> shape of NewRequestID.
func IsRequestID(s string) bool {
	owner, ok := Owner(s)
	return ok && owner == RequestPrefix && IsValid(s[len(RequestPrefix)+len(Separator):])
}

// Owner returns the prefix of a prefixed id, i.e. the app name of a window
// id. Ids without a separator have no owner.
func Owner(prefixed string) (string, bool) {
	i := strings.LastIndex(prefixed, Separator)
	if i <= 0 {
		return "", false
	}
	return prefixed[:i], true
}

// IsValid checks if an ID string is a valid ULID
func IsValid(id string) bool {
	_, err := ulid.ParseStrict(id)
	return err == nil
}
