package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Manifest formats
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Manifest lists extra apps.
type Manifest struct {
	Apps []Definition `yaml:"apps" toml:"apps"`
}

// FormatFor infers the manifest format from a file extension
func FormatFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported manifest extension %q", filepath.Ext(path))
	}
}

// LoadManifest reads and parses a manifest file
func LoadManifest(path string) (*Manifest, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data, format)
}

// ParseManifest decodes and validates manifest content
func ParseManifest(data []byte, format string) (*Manifest, error) {
	var m Manifest
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse yaml manifest: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse toml manifest: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", format)
	}

	for i, d := range m.Apps {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("manifest entry %d: %w", i, err)
		}
	}
	return &m, nil
}
