package preferences

import (
	"sync"

	"go.uber.org/zap"

	"github.com/mrlokans/madinah-companion/internal/entities"
)

// ThemeMode is the user's theme preference.
type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

const DefaultThemeMode = ThemeSystem

func ParseThemeMode(s string) (ThemeMode, error) {
	switch mode := ThemeMode(s); mode {
	case ThemeLight, ThemeDark, ThemeSystem:
		return mode, nil
	default:
		return "", ErrInvalidThemeMode
	}
}

// ColorScheme is a concrete light or dark appearance.
type ColorScheme string

const (
	SchemeLight ColorScheme = "light"
	SchemeDark  ColorScheme = "dark"
)

func ParseColorScheme(s string) (ColorScheme, error) {
	switch scheme := ColorScheme(s); scheme {
	case SchemeLight, SchemeDark:
		return scheme, nil
	default:
		return "", ErrInvalidColorScheme
	}
}

// ResolveTheme returns the device scheme for ThemeSystem and the mode itself
// otherwise. An unknown device scheme resolves to light.
func ResolveTheme(mode ThemeMode, device ColorScheme) ColorScheme {
	switch mode {
	case ThemeLight:
		return SchemeLight
	case ThemeDark:
		return SchemeDark
	}
	if device == SchemeDark {
		return SchemeDark
	}
	return SchemeLight
}

// DeviceThemeSource reports the operating system appearance.
type DeviceThemeSource interface {
	DeviceTheme() ColorScheme
}

// DeviceTheme is a settable DeviceThemeSource.
type DeviceTheme struct {
	mu     sync.RWMutex
	scheme ColorScheme
}

func NewDeviceTheme(scheme ColorScheme) *DeviceTheme {
	return &DeviceTheme{scheme: scheme}
}

func (d *DeviceTheme) DeviceTheme() ColorScheme {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.scheme
}

func (d *DeviceTheme) Set(scheme ColorScheme) {
	d.mu.Lock()
	d.scheme = scheme
	d.mu.Unlock()
}

// ThemeStore persists the theme preference under "themePreference".
type ThemeStore struct {
	*store
	device DeviceThemeSource
	mode   ThemeMode
}

func NewThemeStore(kv KV, device DeviceThemeSource, log *zap.Logger) *ThemeStore {
	s := &ThemeStore{device: device, mode: DefaultThemeMode}
	s.store = newStore("theme", []string{entities.SettingKeyThemePreference}, kv, log, s.decode)
	return s
}

func (s *ThemeStore) decode(_, value string) error {
	mode, err := ParseThemeMode(value)
	if err != nil {
		return err
	}
	s.mode = mode
	return nil
}

func (s *ThemeStore) Mode() ThemeMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

func (s *ThemeStore) SetMode(mode ThemeMode) error {
	if _, err := ParseThemeMode(string(mode)); err != nil {
		return err
	}
	s.set(entities.SettingKeyThemePreference, string(mode), func() { s.mode = mode })
	return nil
}

// EffectiveTheme resolves the current mode against the device appearance.
func (s *ThemeStore) EffectiveTheme() ColorScheme {
	return ResolveTheme(s.Mode(), s.device.DeviceTheme())
}
