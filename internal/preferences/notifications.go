package preferences

import (
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/madinah-companion/internal/entities"
)

const DefaultReminderTime = "18:00"

// ParseReminderTime validates a zero-padded 24-hour "HH:MM" string.
func ParseReminderTime(s string) (hour, minute int, err error) {
	if len(s) != 5 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return t.Hour(), t.Minute(), nil
}

// FormatReminderTime renders hour and minute as "HH:MM".
func FormatReminderTime(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// NotificationPreferences is a point-in-time copy of the notifications store.
type NotificationPreferences struct {
	DailyReminderEnabled bool   `json:"dailyReminderEnabled"`
	DailyReminderTime    string `json:"dailyReminderTime"`
	DailyReminderHandle  string `json:"dailyReminderHandle,omitempty"`
}

type NotificationsStore struct {
	*store
	prefs NotificationPreferences
}

func NewNotificationsStore(kv KV, log *zap.Logger) *NotificationsStore {
	s := &NotificationsStore{prefs: NotificationPreferences{DailyReminderTime: DefaultReminderTime}}
	keys := []string{
		entities.SettingKeyDailyReminderEnabled,
		entities.SettingKeyDailyReminderTime,
		entities.SettingKeyDailyReminderHandle,
	}
	s.store = newStore("notifications", keys, kv, log, s.decode)
	return s
}

func (s *NotificationsStore) decode(key, value string) error {
	switch key {
	case entities.SettingKeyDailyReminderEnabled:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		s.prefs.DailyReminderEnabled = v
	case entities.SettingKeyDailyReminderTime:
		if _, _, err := ParseReminderTime(value); err != nil {
			return err
		}
		s.prefs.DailyReminderTime = value
	case entities.SettingKeyDailyReminderHandle:
		s.prefs.DailyReminderHandle = value
	}
	return nil
}

func (s *NotificationsStore) Snapshot() NotificationPreferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

func (s *NotificationsStore) Enabled() bool {
	return s.Snapshot().DailyReminderEnabled
}

func (s *NotificationsStore) Time() string {
	return s.Snapshot().DailyReminderTime
}

// Handle is the platform schedule handle of the active reminder, if any.
func (s *NotificationsStore) Handle() string {
	return s.Snapshot().DailyReminderHandle
}

func (s *NotificationsStore) SetEnabled(v bool) {
	s.set(entities.SettingKeyDailyReminderEnabled, strconv.FormatBool(v), func() { s.prefs.DailyReminderEnabled = v })
}

func (s *NotificationsStore) SetTime(hhmm string) error {
	if _, _, err := ParseReminderTime(hhmm); err != nil {
		return err
	}
	s.set(entities.SettingKeyDailyReminderTime, hhmm, func() { s.prefs.DailyReminderTime = hhmm })
	return nil
}

func (s *NotificationsStore) SetHandle(handle string) {
	s.set(entities.SettingKeyDailyReminderHandle, handle, func() { s.prefs.DailyReminderHandle = handle })
}
