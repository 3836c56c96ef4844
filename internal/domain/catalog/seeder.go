package catalog

import (
	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/window"
)

// AppRegistrar is the part of the window registry the seeder needs.
type AppRegistrar interface {
	RegisterApp(name string, factory window.ContentFactory, settings window.Settings)
}

// Seeder registers built-in and manifest apps
type Seeder struct {
	registry     AppRegistrar
	manifestPath string
	logger       *zap.Logger
}

// NewSeeder creates a seeder. An empty manifestPath seeds built-ins only.
func NewSeeder(registry AppRegistrar, manifestPath string, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		registry:     registry,
		manifestPath: manifestPath,
		logger:       logger,
	}
}

// Seed registers every app and returns how many were registered. Manifest
// apps are registered after built-ins and replace them on name clashes.
func (s *Seeder) Seed() (int, error) {
	defs := Builtins()

	if s.manifestPath != "" {
		manifest, err := LoadManifest(s.manifestPath)
		if err != nil {
			return 0, err
		}
		s.logger.Info("Loaded app manifest",
			zap.String("path", s.manifestPath),
			zap.Int("apps", len(manifest.Apps)))
		defs = append(defs, manifest.Apps...)
	}

	for _, d := range defs {
		s.registry.RegisterApp(d.Name, d.Factory(), d.Settings())
		s.logger.Debug("Registered app", zap.String("app", d.Name))
	}

	s.logger.Info("App catalogue seeded", zap.Int("apps", len(defs)))
	return len(defs), nil
}
