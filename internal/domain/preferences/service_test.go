package preferences

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/kvstore"
	"github.com/GriffinCanCode/WebDesk/backend/tests/helpers/testutil"
)

func TestThemes(t *testing.T) {
	s := NewService(testutil.NewMemoryBackend(t, kvstore.CollectionPreferences), nil)

	var ids []string
	for _, theme := range s.Themes() {
		ids = append(ids, theme.ID)
		assert.NotEmpty(t, theme.Colors["background"], theme.ID)
	}
	assert.Equal(t, []string{"dark", "light", "high-contrast"}, ids)
}

func TestCurrentThemeDefaultsToDark(t *testing.T) {
	s := NewService(testutil.NewMemoryBackend(t, kvstore.CollectionPreferences), nil)

	theme, err := s.CurrentTheme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultThemeID, theme.ID)
}

func TestSetThemePersists(t *testing.T) {
	ctx := context.Background()
	backend := testutil.NewMemoryBackend(t, kvstore.CollectionPreferences)
	s := NewService(backend, nil)

	var notified []string
	s.Subscribe(func(theme Theme) { notified = append(notified, theme.ID) })

	theme, err := s.SetTheme(ctx, "light")
	require.NoError(t, err)
	assert.Equal(t, "Light", theme.Name)
	assert.Equal(t, []string{"light"}, notified)

	// A fresh service over the same backend sees the saved choice
	current, err := NewService(backend, nil).CurrentTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, "light", current.ID)

	raw, ok, err := backend.Get(ctx, ThemeKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "light", string(raw))
}

func TestSetUnknownTheme(t *testing.T) {
	ctx := context.Background()
	s := NewService(testutil.NewMemoryBackend(t, kvstore.CollectionPreferences), nil)

	_, err := s.SetTheme(ctx, "solarized")
	assert.ErrorIs(t, err, ErrUnknownTheme)

	current, err := s.CurrentTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultThemeID, current.ID)
}

func TestStaleStoredTheme(t *testing.T) {
	ctx := context.Background()
	backend := testutil.NewMemoryBackend(t, kvstore.CollectionPreferences)
	require.NoError(t, backend.Put(ctx, ThemeKey, []byte("retired")))

	current, err := NewService(backend, nil).CurrentTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultThemeID, current.ID)
}

func TestBackendFailure(t *testing.T) {
	ctx := context.Background()
	s := NewService(testutil.NewFailingBackend(t), nil)

	_, err := s.CurrentTheme(ctx)
	assert.ErrorIs(t, err, testutil.ErrBackendDown)

	notified := false
	s.Subscribe(func(Theme) { notified = true })
	_, err = s.SetTheme(ctx, "light")
	assert.ErrorIs(t, err, testutil.ErrBackendDown)
	assert.False(t, notified)
}
