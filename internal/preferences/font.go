package preferences

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mrlokans/madinah-companion/internal/entities"
)

// Font is one selectable Arabic typeface.
type Font struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Family string `json:"fontFamily"`
}

var availableFonts = []Font{
	{ID: "amiri", Name: "Amiri", Family: "Amiri-Regular"},
	{ID: "playpen", Name: "Playpen Sans Arabic", Family: "PlaypenSansArabic-Regular"},
	{ID: "noto-sans", Name: "Noto Sans Arabic", Family: "NotoSansArabic-Regular"},
	{ID: "ibm-plex", Name: "IBM Plex Sans Arabic", Family: "IBMPlexSansArabic-Regular"},
	{ID: "noto-kufi", Name: "Noto Kufi Arabic", Family: "NotoKufiArabic-Regular"},
	{ID: "baloo", Name: "Baloo Bhaijaan 2", Family: "BalooBhaijaan2-Regular"},
	{ID: "noto-naskh", Name: "Noto Naskh Arabic", Family: "NotoNaskhArabic-Regular"},
}

// AvailableFonts returns the font catalog; the first entry is the default.
func AvailableFonts() []Font {
	fonts := make([]Font, len(availableFonts))
	copy(fonts, availableFonts)
	return fonts
}

func LookupFont(id string) (Font, error) {
	for _, f := range availableFonts {
		if f.ID == id {
			return f, nil
		}
	}
	return Font{}, fmt.Errorf("%w: %q", ErrUnknownFont, id)
}

// FontStore persists the selected font id under "selectedFont".
type FontStore struct {
	*store
	selected Font
}

func NewFontStore(kv KV, log *zap.Logger) *FontStore {
	s := &FontStore{selected: availableFonts[0]}
	s.store = newStore("font", []string{entities.SettingKeySelectedFont}, kv, log, s.decode)
	return s
}

func (s *FontStore) decode(_, value string) error {
	font, err := LookupFont(value)
	if err != nil {
		return err
	}
	s.selected = font
	return nil
}

func (s *FontStore) Selected() Font {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

func (s *FontStore) FontFamily() string {
	return s.Selected().Family
}

func (s *FontStore) SetFont(id string) error {
	font, err := LookupFont(id)
	if err != nil {
		return err
	}
	s.set(entities.SettingKeySelectedFont, font.ID, func() { s.selected = font })
	return nil
}
