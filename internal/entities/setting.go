package entities

import (
	"time"
)

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys. Each preference store owns a disjoint subset.
const (
	// Appearance
	SettingKeyThemePreference = "themePreference"
	SettingKeyFontSize        = "fontSize"
	SettingKeySelectedFont    = "selectedFont"

	// Learning
	SettingKeyAutoPlayAudio       = "autoPlayAudio"
	SettingKeyPronunciationSpeed  = "pronunciationSpeed"
	SettingKeyShowTransliteration = "showTransliteration"

	// Notifications
	SettingKeyDailyReminderEnabled = "dailyReminderEnabled"
	SettingKeyDailyReminderTime    = "dailyReminderTime"
	SettingKeyDailyReminderHandle  = "dailyReminderHandle"
)
