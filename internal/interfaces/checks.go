package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/madinah-companion/internal/api"
	"github.com/mrlokans/madinah-companion/internal/database"
	"github.com/mrlokans/madinah-companion/internal/database/settings"
	"github.com/mrlokans/madinah-companion/internal/http"
	"github.com/mrlokans/madinah-companion/internal/preferences"
	"github.com/mrlokans/madinah-companion/internal/reminder"
	"github.com/mrlokans/madinah-companion/internal/scheduler"
	"github.com/mrlokans/madinah-companion/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// KV implementations backing the preference stores
var _ preferences.KV = (*settings.Repository)(nil)

// Health check target
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// Preferences
// =============================================================================

var _ preferences.DeviceThemeSource = (*preferences.DeviceTheme)(nil)
var _ http.DeviceThemeSetter = (*preferences.DeviceTheme)(nil)

// =============================================================================
// External Services
// =============================================================================

// CatalogReader implementations
var _ http.CatalogReader = (*api.Client)(nil)

// =============================================================================
// Reminders
// =============================================================================

var _ reminder.Store = (*preferences.NotificationsStore)(nil)
var _ reminder.Platform = (*scheduler.NotificationService)(nil)
var _ http.ReminderScheduler = (*reminder.Scheduler)(nil)

// Dispatcher implementations
var _ scheduler.Dispatcher = (*tasks.QueueDispatcher)(nil)
var _ scheduler.Dispatcher = (*tasks.DirectDispatcher)(nil)

// Sink implementations
var _ tasks.Sink = (*tasks.LogSink)(nil)
var _ tasks.Sink = (*tasks.WebhookSink)(nil)
var _ tasks.Sink = tasks.Sinks(nil)
