package vfs

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
)

// Kind classifies what lives at a path.
type Kind int

const (
	// KindFile is a stored file entry.
	KindFile Kind = iota
	// KindExplicit is a directory with its own stored entry.
	KindExplicit
	// KindInferred is a directory known only as a prefix of stored paths.
	KindInferred
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindExplicit:
		return "explicit"
	case KindInferred:
		return "inferred"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name in JSON.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name produced by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "file":
		*k = KindFile
	case "explicit":
		*k = KindExplicit
	case "inferred":
		*k = KindInferred
	default:
		return fmt.Errorf("unknown entry kind %q", text)
	}
	return nil
}

// IsDirectory reports whether the kind is either directory form.
func (k Kind) IsDirectory() bool {
	return k == KindExplicit || k == KindInferred
}

// Stat describes a path.
type Stat struct {
	Path        string    `json:"path"`
	IsDirectory bool      `json:"isDirectory"`
	Kind        Kind      `json:"kind"`
	Size        int       `json:"size"`
	ModifiedAt  time.Time `json:"modifiedAt"`
}

// entry is the persisted record for one path.
type entry struct {
	Path        string `json:"path"`
	Data        string `json:"data,omitempty"`
	IsDirectory bool   `json:"isDirectory"`
	Timestamp   int64  `json:"timestamp"`
}

func (e *entry) stat() *Stat {
	kind := KindFile
	if e.IsDirectory {
		kind = KindExplicit
	}
	return &Stat{
		Path:        e.Path,
		IsDirectory: e.IsDirectory,
		Kind:        kind,
		Size:        len(e.Data),
		ModifiedAt:  time.UnixMilli(e.Timestamp),
	}
}

func encodeEntry(e *entry) ([]byte, error) {
	return sonic.Marshal(e)
}

func decodeEntry(raw []byte) (*entry, error) {
	var e entry
	if err := sonic.Unmarshal(raw, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
