package preferences

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mrlokans/madinah-companion/internal/entities"
)

func TestResolveTheme(t *testing.T) {
	tests := []struct {
		mode   ThemeMode
		device ColorScheme
		want   ColorScheme
	}{
		{ThemeLight, SchemeDark, SchemeLight},
		{ThemeDark, SchemeLight, SchemeDark},
		{ThemeSystem, SchemeDark, SchemeDark},
		{ThemeSystem, SchemeLight, SchemeLight},
		{ThemeSystem, "", SchemeLight},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode)+"/"+string(tt.device), func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveTheme(tt.mode, tt.device))
		})
	}
}

func TestThemeStore_ReloadedDarkIsEffectiveDark(t *testing.T) {
	kv := newMemoryKV(nil)
	device := NewDeviceTheme(SchemeLight)

	first := NewThemeStore(kv, device, zap.NewNop())
	first.Load(context.Background())
	require.NoError(t, first.SetMode(ThemeDark))
	first.Close()

	second := NewThemeStore(kv, device, zap.NewNop())
	defer second.Close()
	second.Load(context.Background())

	assert.Equal(t, ThemeDark, second.Mode())
	assert.Equal(t, SchemeDark, second.EffectiveTheme())
}

func TestThemeStore_SystemFollowsDevice(t *testing.T) {
	device := NewDeviceTheme(SchemeLight)
	store := NewThemeStore(newMemoryKV(nil), device, zap.NewNop())
	defer store.Close()
	store.Load(context.Background())

	assert.Equal(t, ThemeSystem, store.Mode())
	assert.Equal(t, SchemeLight, store.EffectiveTheme())

	device.Set(SchemeDark)

	assert.Equal(t, SchemeDark, store.EffectiveTheme())
}

func TestThemeStore_SetModeRejectsUnknown(t *testing.T) {
	kv := newMemoryKV(nil)
	store := NewThemeStore(kv, NewDeviceTheme(SchemeLight), zap.NewNop())
	defer store.Close()
	store.Load(context.Background())

	err := store.SetMode("sepia")

	assert.ErrorIs(t, err, ErrInvalidThemeMode)
	assert.Equal(t, ThemeSystem, store.Mode())
	require.NoError(t, store.Flush(context.Background()))
	_, ok := kv.value(entities.SettingKeyThemePreference)
	assert.False(t, ok)
}

func TestParseColorScheme(t *testing.T) {
	scheme, err := ParseColorScheme("dark")
	require.NoError(t, err)
	assert.Equal(t, SchemeDark, scheme)

	_, err = ParseColorScheme("system")
	assert.ErrorIs(t, err, ErrInvalidColorScheme)
}
