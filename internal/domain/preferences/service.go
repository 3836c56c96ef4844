// Package preferences persists the user's desktop preferences. The only
// record today is the selected theme.
package preferences

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/kvstore"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/pubsub"
)

// ThemeKey is the backend key holding the selected theme id.
const ThemeKey = "theme"

// ErrUnknownTheme is returned when selecting a theme that does not exist.
var ErrUnknownTheme = errors.New("preferences: unknown theme")

// Service reads and writes preferences
type Service struct {
	backend kvstore.Backend
	themes  []Theme
	byID    map[string]Theme
	changes *pubsub.Topic[Theme]
	logger  *zap.Logger
}

// NewService creates a preference service over an opened collection
func NewService(backend kvstore.Backend, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	themes := builtinThemes()
	byID := make(map[string]Theme, len(themes))
	for _, theme := range themes {
		byID[theme.ID] = theme
	}
	return &Service{
		backend: backend,
		themes:  themes,
		byID:    byID,
		changes: pubsub.NewTopic[Theme](),
		logger:  logger,
	}
}

// Themes lists the available themes
func (s *Service) Themes() []Theme {
	out := make([]Theme, len(s.themes))
	copy(out, s.themes)
	return out
}

// Theme looks a theme up by id
func (s *Service) Theme(id string) (Theme, bool) {
	theme, ok := s.byID[id]
	return theme, ok
}

// CurrentTheme returns the selected theme, or the default when none was
// saved or the saved id no longer exists.
func (s *Service) CurrentTheme(ctx context.Context) (Theme, error) {
	raw, ok, err := s.backend.Get(ctx, ThemeKey)
	if err != nil {
		return Theme{}, fmt.Errorf("failed to load theme preference: %w", err)
	}
	if !ok {
		return s.byID[DefaultThemeID], nil
	}

	theme, ok := s.byID[string(raw)]
	if !ok {
		s.logger.Warn("Stored theme no longer exists, using default", zap.String("theme", string(raw)))
		return s.byID[DefaultThemeID], nil
	}
	return theme, nil
}

// SetTheme saves the selected theme and notifies subscribers
func (s *Service) SetTheme(ctx context.Context, id string) (Theme, error) {
	theme, ok := s.byID[id]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %s", ErrUnknownTheme, id)
	}
	if err := s.backend.Put(ctx, ThemeKey, []byte(id)); err != nil {
		return Theme{}, fmt.Errorf("failed to save theme preference: %w", err)
	}

	s.logger.Info("Theme changed", zap.String("theme", id))
	s.changes.Publish(theme)
	return theme, nil
}

// Subscribe is called with the new theme after every successful SetTheme
func (s *Service) Subscribe(listener func(Theme)) func() {
	return s.changes.Subscribe(listener)
}
