package preferences

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/mrlokans/madinah-companion/internal/entities"
)

type PronunciationSpeed string

const (
	SpeedNormal PronunciationSpeed = "normal"
	SpeedSlow   PronunciationSpeed = "slow"
)

func ParsePronunciationSpeed(s string) (PronunciationSpeed, error) {
	switch speed := PronunciationSpeed(s); speed {
	case SpeedNormal, SpeedSlow:
		return speed, nil
	default:
		return "", ErrInvalidSpeed
	}
}

// LearningPreferences is a point-in-time copy of the learning store.
type LearningPreferences struct {
	AutoPlayAudio       bool               `json:"autoPlayAudio"`
	PronunciationSpeed  PronunciationSpeed `json:"pronunciationSpeed"`
	ShowTransliteration bool               `json:"showTransliteration"`
}

func DefaultLearningPreferences() LearningPreferences {
	return LearningPreferences{
		AutoPlayAudio:       true,
		PronunciationSpeed:  SpeedNormal,
		ShowTransliteration: true,
	}
}

type LearningStore struct {
	*store
	prefs LearningPreferences
}

func NewLearningStore(kv KV, log *zap.Logger) *LearningStore {
	s := &LearningStore{prefs: DefaultLearningPreferences()}
	keys := []string{
		entities.SettingKeyAutoPlayAudio,
		entities.SettingKeyPronunciationSpeed,
		entities.SettingKeyShowTransliteration,
	}
	s.store = newStore("learning", keys, kv, log, s.decode)
	return s
}

func (s *LearningStore) decode(key, value string) error {
	switch key {
	case entities.SettingKeyAutoPlayAudio:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		s.prefs.AutoPlayAudio = v
	case entities.SettingKeyPronunciationSpeed:
		v, err := ParsePronunciationSpeed(value)
		if err != nil {
			return err
		}
		s.prefs.PronunciationSpeed = v
	case entities.SettingKeyShowTransliteration:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		s.prefs.ShowTransliteration = v
	}
	return nil
}

func (s *LearningStore) Snapshot() LearningPreferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

func (s *LearningStore) AutoPlayAudio() bool {
	return s.Snapshot().AutoPlayAudio
}

func (s *LearningStore) PronunciationSpeed() PronunciationSpeed {
	return s.Snapshot().PronunciationSpeed
}

func (s *LearningStore) ShowTransliteration() bool {
	return s.Snapshot().ShowTransliteration
}

func (s *LearningStore) SetAutoPlayAudio(v bool) {
	s.set(entities.SettingKeyAutoPlayAudio, strconv.FormatBool(v), func() { s.prefs.AutoPlayAudio = v })
}

func (s *LearningStore) SetPronunciationSpeed(speed PronunciationSpeed) error {
	if _, err := ParsePronunciationSpeed(string(speed)); err != nil {
		return err
	}
	s.set(entities.SettingKeyPronunciationSpeed, string(speed), func() { s.prefs.PronunciationSpeed = speed })
	return nil
}

func (s *LearningStore) SetShowTransliteration(v bool) {
	s.set(entities.SettingKeyShowTransliteration, strconv.FormatBool(v), func() { s.prefs.ShowTransliteration = v })
}
