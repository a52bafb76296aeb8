package entrypoint

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mrlokans/madinah-companion/internal/config"
	"github.com/mrlokans/madinah-companion/internal/database"
	"github.com/mrlokans/madinah-companion/internal/database/settings"
	"github.com/mrlokans/madinah-companion/internal/entities"
)

func testConfig(t *testing.T, tasksEnabled bool) *config.Config {
	t.Helper()
	return &config.Config{
		Database: config.Database{Path: filepath.Join(t.TempDir(), "madinah.db")},
		API:      config.API{BaseURL: "http://127.0.0.1:1", Timeout: time.Second},
		Device:   config.Device{Theme: "dark"},
		Reminder: config.Reminder{Permission: config.PermissionGranted},
		Tasks: config.Tasks{
			Enabled:         tasksEnabled,
			Workers:         1,
			ReleaseAfter:    time.Minute,
			CleanupInterval: time.Hour,
		},
		About: config.About{SupportEmail: "support@example.com", WebsiteURL: "https://example.com"},
		Log:   config.Log{Env: "development", Level: "info"},
	}
}

func TestNewApp_ServesRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, tasksEnabled := range []bool{false, true} {
		name := "direct delivery"
		if tasksEnabled {
			name = "queued delivery"
		}
		t.Run(name, func(t *testing.T) {
			app, err := NewApp(testConfig(t, tasksEnabled), "1.2.3", zap.NewNop())
			require.NoError(t, err)
			defer app.Shutdown(context.Background())

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/health", nil)
			app.Router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), "1.2.3")

			w = httptest.NewRecorder()
			req, _ = http.NewRequest("GET", "/api/settings/appearance", nil)
			app.Router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `"effectiveTheme":"dark"`)

			assert.Equal(t, tasksEnabled, app.TaskClient != nil)
		})
	}
}

func TestNewApp_ListsDegradeWhenBackendIsDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := NewApp(testConfig(t, false), "dev", zap.NewNop())
	require.NoError(t, err)
	defer app.Shutdown(context.Background())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/books", nil)
	app.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"books":[],"count":0}`, w.Body.String())
}

func TestNewApp_ReminderSurvivesRestart(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t, false)

	first, err := NewApp(cfg, "dev", zap.NewNop())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/api/settings/notifications",
		strings.NewReader(`{"dailyReminderEnabled":true,"dailyReminderTime":"06:45"}`))
	req.Header.Set("Content-Type", "application/json")
	first.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	oldHandle := first.Settings.Notifications.Handle()
	first.Shutdown(context.Background())

	second, err := NewApp(cfg, "dev", zap.NewNop())
	require.NoError(t, err)
	defer second.Shutdown(context.Background())

	assert.True(t, second.Settings.Notifications.Enabled())
	assert.Equal(t, "06:45", second.Settings.Notifications.Time())
	newHandle := second.Settings.Notifications.Handle()
	assert.NotEmpty(t, newHandle)
	assert.NotEqual(t, oldHandle, newHandle)

	_, ok := second.Platform.NextRun(newHandle)
	assert.True(t, ok)
}

func TestApp_ShutdownFlushesPreferences(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t, false)

	app, err := NewApp(cfg, "dev", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, app.Settings.Theme.SetMode("light"))
	app.Shutdown(context.Background())

	db, err := database.NewDatabase(cfg.Database.Path, zap.NewNop())
	require.NoError(t, err)
	defer db.Close()

	value, found, err := settings.NewRepository(db.DB).Get(context.Background(), entities.SettingKeyThemePreference)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "light", value)
}
