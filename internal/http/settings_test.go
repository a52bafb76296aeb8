package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mrlokans/madinah-companion/internal/database"
	settingsrepo "github.com/mrlokans/madinah-companion/internal/database/settings"
	"github.com/mrlokans/madinah-companion/internal/entities"
	"github.com/mrlokans/madinah-companion/internal/preferences"
	"github.com/mrlokans/madinah-companion/internal/reminder"
	"github.com/mrlokans/madinah-companion/internal/scheduler"
)

type nopDispatcher struct{}

func (nopDispatcher) Dispatch(ctx context.Context, firing scheduler.Firing) error { return nil }

type settingsFixture struct {
	router   *gin.Engine
	prefs    *preferences.Settings
	repo     *settingsrepo.Repository
	device   *preferences.DeviceTheme
	platform *scheduler.NotificationService
}

func setupSettingsRouter(t *testing.T, permission scheduler.Permission) *settingsFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "settings.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := settingsrepo.NewRepository(db.DB)
	device := preferences.NewDeviceTheme(preferences.SchemeLight)
	prefs := preferences.NewSettings(repo, device, zap.NewNop())
	prefs.Load(context.Background())
	t.Cleanup(prefs.Close)

	platform := scheduler.NewNotificationService(permission, nopDispatcher{}, zap.NewNop())
	reminders := reminder.New(prefs.Notifications, platform, reminder.Config{}, zap.NewNop())

	router := NewRouter(RouterConfig{
		Settings:  prefs,
		Device:    device,
		Reminders: reminders,
		Database:  db,
		Logger:    zap.NewNop(),
	})

	return &settingsFixture{router: router, prefs: prefs, repo: repo, device: device, platform: platform}
}

func sendJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func decodeAppearance(t *testing.T, w *httptest.ResponseRecorder) AppearanceResponse {
	t.Helper()
	var resp AppearanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decodeNotifications(t *testing.T, w *httptest.ResponseRecorder) NotificationsResponse {
	t.Helper()
	var resp NotificationsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSettingsController_Appearance(t *testing.T) {
	t.Run("returns defaults", func(t *testing.T) {
		f := setupSettingsRouter(t, scheduler.PermissionGranted)

		w := serve(f.router, "GET", "/api/settings/appearance")

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeAppearance(t, w)
		assert.Equal(t, preferences.ThemeSystem, resp.Theme)
		assert.Equal(t, preferences.SchemeLight, resp.EffectiveTheme)
		assert.Equal(t, preferences.DefaultFontSize, resp.FontSize)
		assert.Equal(t, "amiri", resp.Font.ID)
		assert.Len(t, resp.AvailableFonts, 7)
		assert.InDelta(t, 24.0, resp.ScaledSizes[preferences.RoleArabic], 0.001)
	})

	t.Run("applies a partial update and persists it", func(t *testing.T) {
		f := setupSettingsRouter(t, scheduler.PermissionGranted)

		w := sendJSON(f.router, "PUT", "/api/settings/appearance", `{"theme":"dark","fontSize":20}`)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeAppearance(t, w)
		assert.Equal(t, preferences.ThemeDark, resp.Theme)
		assert.Equal(t, preferences.SchemeDark, resp.EffectiveTheme)
		assert.Equal(t, 20.0, resp.FontSize)
		assert.Equal(t, "amiri", resp.Font.ID)

		require.NoError(t, f.prefs.Flush(context.Background()))
		stored, found, err := f.repo.Get(context.Background(), entities.SettingKeyThemePreference)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "dark", stored)
	})

	t.Run("rejects an invalid theme with field details", func(t *testing.T) {
		f := setupSettingsRouter(t, scheduler.PermissionGranted)

		w := sendJSON(f.router, "PUT", "/api/settings/appearance", `{"theme":"blue"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, "validation_failed", resp.Code)
		assert.Contains(t, resp.Details, "theme")
	})

	t.Run("rejects an out of range font size", func(t *testing.T) {
		f := setupSettingsRouter(t, scheduler.PermissionGranted)

		w := sendJSON(f.router, "PUT", "/api/settings/appearance", `{"fontSize":100}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, preferences.DefaultFontSize, f.prefs.FontSize.Size())
	})

	t.Run("unknown font leaves other fields untouched", func(t *testing.T) {
		f := setupSettingsRouter(t, scheduler.PermissionGranted)

		w := sendJSON(f.router, "PUT", "/api/settings/appearance", `{"theme":"dark","font":"comic-sans"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, preferences.ThemeSystem, f.prefs.Theme.Mode())
	})

	t.Run("device theme drives the system mode", func(t *testing.T) {
		f := setupSettingsRouter(t, scheduler.PermissionGranted)

		w := sendJSON(f.router, "PUT", "/api/settings/appearance/device", `{"theme":"dark"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeAppearance(t, w)
		assert.Equal(t, preferences.SchemeDark, resp.DeviceTheme)
		assert.Equal(t, preferences.SchemeDark, resp.EffectiveTheme)
		assert.Equal(t, preferences.SchemeDark, f.device.DeviceTheme())
	})

	t.Run("device theme must be light or dark", func(t *testing.T) {
		f := setupSettingsRouter(t, scheduler.PermissionGranted)

		w := sendJSON(f.router, "PUT", "/api/settings/appearance/device", `{"theme":"system"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSettingsController_Learning(t *testing.T) {
	t.Run("returns defaults", func(t *testing.T) {
		f := setupSettingsRouter(t, scheduler.PermissionGranted)

		w := serve(f.router, "GET", "/api/settings/learning")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"autoPlayAudio":true,"pronunciationSpeed":"normal","showTransliteration":true}`, w.Body.String())
	})

	t.Run("updates only the given fields", func(t *testing.T) {
		f := setupSettingsRouter(t, scheduler.PermissionGranted)

		w := sendJSON(f.router, "PUT", "/api/settings/learning", `{"pronunciationSpeed":"slow","showTransliteration":false}`)

		assert.Equal(t, http.StatusOK, w.Code)
		snapshot := f.prefs.Learning.Snapshot()
		assert.True(t, snapshot.AutoPlayAudio)
		assert.Equal(t, preferences.SpeedSlow, snapshot.PronunciationSpeed)
		assert.False(t, snapshot.ShowTransliteration)
	})

	t.Run("rejects an unknown speed", func(t *testing.T) {
		f := setupSettingsRouter(t, scheduler.PermissionGranted)

		w := sendJSON(f.router, "PUT", "/api/settings/learning", `{"pronunciationSpeed":"fast"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, preferences.SpeedNormal, f.prefs.Learning.PronunciationSpeed())
	})
}

func TestSettingsController_Notifications(t *testing.T) {
	t.Run("enabling schedules a reminder at the requested time", func(t *testing.T) {
		f := setupSettingsRouter(t, scheduler.PermissionGranted)

		w := sendJSON(f.router, "PUT", "/api/settings/notifications", `{"dailyReminderEnabled":true,"dailyReminderTime":"07:30"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeNotifications(t, w)
		assert.True(t, resp.DailyReminderEnabled)
		assert.Equal(t, "07:30", resp.DailyReminderTime)
		assert.NotEmpty(t, resp.DailyReminderHandle)
		assert.NoError(t, f.platform.Cancel(context.Background(), resp.DailyReminderHandle))
	})

	t.Run("disabling clears the handle", func(t *testing.T) {
		f := setupSettingsRouter(t, scheduler.PermissionGranted)
		require.Equal(t, http.StatusOK, sendJSON(f.router, "PUT", "/api/settings/notifications", `{"dailyReminderEnabled":true}`).Code)

		w := sendJSON(f.router, "PUT", "/api/settings/notifications", `{"dailyReminderEnabled":false}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, f.prefs.Notifications.Enabled())
		assert.Empty(t, f.prefs.Notifications.Handle())
	})

	t.Run("reports the permission status", func(t *testing.T) {
		for _, permission := range []scheduler.Permission{scheduler.PermissionGranted, scheduler.PermissionDenied} {
			f := setupSettingsRouter(t, permission)

			w := serve(f.router, "GET", "/api/settings/notifications")

			assert.Equal(t, http.StatusOK, w.Code)
			resp := decodeNotifications(t, w)
			assert.Equal(t, permission, resp.PermissionStatus)
			assert.False(t, resp.DailyReminderEnabled)
			assert.Equal(t, preferences.DefaultReminderTime, resp.DailyReminderTime)
		}
	})

	t.Run("denied permission downgrades the flag without failing", func(t *testing.T) {
		f := setupSettingsRouter(t, scheduler.PermissionDenied)

		w := sendJSON(f.router, "PUT", "/api/settings/notifications", `{"dailyReminderEnabled":true}`)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeNotifications(t, w)
		assert.False(t, resp.DailyReminderEnabled)
		assert.Empty(t, resp.DailyReminderHandle)
		assert.Equal(t, scheduler.PermissionDenied, resp.PermissionStatus)
		assert.False(t, f.prefs.Notifications.Enabled())
	})

	t.Run("rejects a time that is not HH:MM", func(t *testing.T) {
		f := setupSettingsRouter(t, scheduler.PermissionGranted)

		w := sendJSON(f.router, "PUT", "/api/settings/notifications", `{"dailyReminderTime":"7:30"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, preferences.DefaultReminderTime, f.prefs.Notifications.Time())
	})
}

func TestRouter_SettingsWaitForLoad(t *testing.T) {
	gin.SetMode(gin.TestMode)
	device := preferences.NewDeviceTheme(preferences.SchemeLight)
	prefs := preferences.NewSettings(unusedKV{}, device, zap.NewNop())
	defer prefs.Close()
	platform := scheduler.NewNotificationService(scheduler.PermissionGranted, nopDispatcher{}, zap.NewNop())

	router := NewRouter(RouterConfig{
		Settings:  prefs,
		Device:    device,
		Reminders: reminder.New(prefs.Notifications, platform, reminder.Config{}, zap.NewNop()),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w := httptest.NewRecorder()
	req, _ := http.NewRequestWithContext(ctx, "GET", "/api/settings/appearance", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "not_ready", decodeError(t, w).Code)
}

// unusedKV satisfies preferences.KV for stores that are never loaded.
type unusedKV struct{}

func (unusedKV) Get(ctx context.Context, key string) (string, bool, error) { return "", false, nil }
func (unusedKV) Set(ctx context.Context, key, value string) error          { return nil }
