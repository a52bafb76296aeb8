package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/madinah-companion/internal/preferences"
	"github.com/mrlokans/madinah-companion/internal/reminder"
	"github.com/mrlokans/madinah-companion/internal/scheduler"
	"github.com/mrlokans/madinah-companion/internal/validation"
)

type AppearanceResponse struct {
	Theme          preferences.ThemeMode            `json:"theme"`
	EffectiveTheme preferences.ColorScheme          `json:"effectiveTheme"`
	DeviceTheme    preferences.ColorScheme          `json:"deviceTheme"`
	FontSize       float64                          `json:"fontSize"`
	ScaledSizes    map[preferences.TextRole]float64 `json:"scaledSizes"`
	Font           preferences.Font                 `json:"font"`
	AvailableFonts []preferences.Font               `json:"availableFonts"`
}

// UpdateAppearanceRequest is a partial update; omitted fields are unchanged.
type UpdateAppearanceRequest struct {
	Theme    *string  `json:"theme" validate:"omitempty,oneof=light dark system"`
	FontSize *float64 `json:"fontSize" validate:"omitempty,min=8,max=64"`
	Font     *string  `json:"font" validate:"omitempty,min=1"`
}

type UpdateDeviceThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

type UpdateLearningRequest struct {
	AutoPlayAudio       *bool   `json:"autoPlayAudio"`
	PronunciationSpeed  *string `json:"pronunciationSpeed" validate:"omitempty,oneof=normal slow"`
	ShowTransliteration *bool   `json:"showTransliteration"`
}

type UpdateNotificationsRequest struct {
	DailyReminderEnabled *bool   `json:"dailyReminderEnabled"`
	DailyReminderTime    *string `json:"dailyReminderTime" validate:"omitempty,hhmm"`
}

// NotificationsResponse is the stored reminder state plus the platform
// permission, so a client can explain why a reminder stayed off.
type NotificationsResponse struct {
	preferences.NotificationPreferences
	PermissionStatus scheduler.Permission `json:"permissionStatus"`
}

type SettingsController struct {
	settings  *preferences.Settings
	device    DeviceThemeSetter
	reminders ReminderScheduler
	validator *validation.Validator
	log       *zap.Logger
}

func NewSettingsController(
	settings *preferences.Settings,
	device DeviceThemeSetter,
	reminders ReminderScheduler,
	validator *validation.Validator,
	log *zap.Logger,
) *SettingsController {
	return &SettingsController{
		settings:  settings,
		device:    device,
		reminders: reminders,
		validator: validator,
		log:       log,
	}
}

func (sc *SettingsController) appearance() AppearanceResponse {
	return AppearanceResponse{
		Theme:          sc.settings.Theme.Mode(),
		EffectiveTheme: sc.settings.Theme.EffectiveTheme(),
		DeviceTheme:    sc.device.DeviceTheme(),
		FontSize:       sc.settings.FontSize.Size(),
		ScaledSizes:    sc.settings.FontSize.ScaledSizes(),
		Font:           sc.settings.Font.Selected(),
		AvailableFonts: preferences.AvailableFonts(),
	}
}

func (sc *SettingsController) GetAppearance(c *gin.Context) {
	c.JSON(http.StatusOK, sc.appearance())
}

// UpdateAppearance checks every field before applying any of them.
func (sc *SettingsController) UpdateAppearance(c *gin.Context) {
	var req UpdateAppearanceRequest
	if !bindJSON(c, sc.validator, &req) {
		return
	}

	var mode preferences.ThemeMode
	if req.Theme != nil {
		parsed, err := preferences.ParseThemeMode(*req.Theme)
		if err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		mode = parsed
	}
	if req.Font != nil {
		if _, err := preferences.LookupFont(*req.Font); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
	}

	if req.Theme != nil {
		if err := sc.settings.Theme.SetMode(mode); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
	}
	if req.FontSize != nil {
		if err := sc.settings.FontSize.SetSize(*req.FontSize); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
	}
	if req.Font != nil {
		if err := sc.settings.Font.SetFont(*req.Font); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
	}

	c.JSON(http.StatusOK, sc.appearance())
}

// UpdateDeviceTheme records the appearance the device currently reports.
// It is not persisted.
func (sc *SettingsController) UpdateDeviceTheme(c *gin.Context) {
	var req UpdateDeviceThemeRequest
	if !bindJSON(c, sc.validator, &req) {
		return
	}

	scheme, err := preferences.ParseColorScheme(req.Theme)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	sc.device.Set(scheme)

	c.JSON(http.StatusOK, sc.appearance())
}

func (sc *SettingsController) GetLearning(c *gin.Context) {
	c.JSON(http.StatusOK, sc.settings.Learning.Snapshot())
}

func (sc *SettingsController) UpdateLearning(c *gin.Context) {
	var req UpdateLearningRequest
	if !bindJSON(c, sc.validator, &req) {
		return
	}

	var speed preferences.PronunciationSpeed
	if req.PronunciationSpeed != nil {
		parsed, err := preferences.ParsePronunciationSpeed(*req.PronunciationSpeed)
		if err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		speed = parsed
	}

	learning := sc.settings.Learning
	if req.AutoPlayAudio != nil {
		learning.SetAutoPlayAudio(*req.AutoPlayAudio)
	}
	if req.PronunciationSpeed != nil {
		if err := learning.SetPronunciationSpeed(speed); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
	}
	if req.ShowTransliteration != nil {
		learning.SetShowTransliteration(*req.ShowTransliteration)
	}

	c.JSON(http.StatusOK, learning.Snapshot())
}

func (sc *SettingsController) GetNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, sc.notificationsResponse(c))
}

func (sc *SettingsController) notificationsResponse(c *gin.Context) NotificationsResponse {
	permission, err := sc.reminders.Permission(c.Request.Context())
	if err != nil {
		sc.log.Warn("failed to read notification permission", zap.Error(err))
		permission = scheduler.PermissionDenied
	}
	return NotificationsResponse{
		NotificationPreferences: sc.settings.Notifications.Snapshot(),
		PermissionStatus:        permission,
	}
}

// UpdateNotifications applies the time before the enabled flag so that a
// reminder enabled in the same request fires at the new time. A refused
// permission is not an error here: the reminder stays off and the response
// carries the denied status.
func (sc *SettingsController) UpdateNotifications(c *gin.Context) {
	var req UpdateNotificationsRequest
	if !bindJSON(c, sc.validator, &req) {
		return
	}

	ctx := c.Request.Context()
	if req.DailyReminderTime != nil {
		if err := sc.reminders.SetTime(ctx, *req.DailyReminderTime); err != nil {
			sc.respondReminderError(c, err)
			return
		}
	}
	if req.DailyReminderEnabled != nil {
		if err := sc.reminders.SetEnabled(ctx, *req.DailyReminderEnabled); err != nil {
			sc.respondReminderError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, sc.notificationsResponse(c))
}

func (sc *SettingsController) respondReminderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, reminder.ErrPermissionDenied):
		c.JSON(http.StatusOK, sc.notificationsResponse(c))
	case errors.Is(err, preferences.ErrInvalidTime):
		respondBadRequest(c, err.Error())
	default:
		respondInternalError(c, sc.log, err, "update notifications")
	}
}
