package preferences

import (
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/mrlokans/madinah-companion/internal/entities"
)

const (
	DefaultFontSize = 16.0
	MinFontSize     = 8.0
	MaxFontSize     = 64.0
)

// TextRole selects a multiplier applied to the base font size.
type TextRole string

const (
	RoleCaption  TextRole = "caption"
	RoleBody     TextRole = "body"
	RoleHeading  TextRole = "heading"
	RoleSubtitle TextRole = "subtitle"
	RoleArabic   TextRole = "arabic"
	RoleTitle    TextRole = "title"
	RoleDisplay  TextRole = "display"
)

var roleScale = map[TextRole]float64{
	RoleCaption:  0.85,
	RoleBody:     1.0,
	RoleHeading:  1.1,
	RoleSubtitle: 1.25,
	RoleArabic:   1.5,
	RoleTitle:    1.75,
	RoleDisplay:  2.0,
}

// FontSizeStore persists the base font size under "fontSize".
type FontSizeStore struct {
	*store
	size float64
}

func NewFontSizeStore(kv KV, log *zap.Logger) *FontSizeStore {
	s := &FontSizeStore{size: DefaultFontSize}
	s.store = newStore("font_size", []string{entities.SettingKeyFontSize}, kv, log, s.decode)
	return s
}

func validFontSize(size float64) error {
	if math.IsNaN(size) || math.IsInf(size, 0) || size < MinFontSize || size > MaxFontSize {
		return fmt.Errorf("%w: %g not in [%g, %g]", ErrInvalidFontSize, size, MinFontSize, MaxFontSize)
	}
	return nil
}

func (s *FontSizeStore) decode(_, value string) error {
	size, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return err
	}
	if err := validFontSize(size); err != nil {
		return err
	}
	s.size = size
	return nil
}

func (s *FontSizeStore) Size() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

func (s *FontSizeStore) SetSize(size float64) error {
	if err := validFontSize(size); err != nil {
		return err
	}
	s.set(entities.SettingKeyFontSize, strconv.FormatFloat(size, 'f', -1, 64), func() { s.size = size })
	return nil
}

// Scaled returns the size for a text role. Unknown roles use the body size.
func (s *FontSizeStore) Scaled(role TextRole) float64 {
	scale, ok := roleScale[role]
	if !ok {
		scale = 1.0
	}
	return s.Size() * scale
}

// ScaledSizes returns the size of every known text role.
func (s *FontSizeStore) ScaledSizes() map[TextRole]float64 {
	base := s.Size()
	sizes := make(map[TextRole]float64, len(roleScale))
	for role, scale := range roleScale {
		sizes[role] = base * scale
	}
	return sizes
}
