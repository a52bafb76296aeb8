package config

import (
	"time"

	"github.com/spf13/viper"
)

type PermissionMode string

const (
	PermissionGranted PermissionMode = "granted" // Reminders may be scheduled (default)
	PermissionDenied  PermissionMode = "denied"  // Every permission request is refused
)

type (
	Config struct {
		HTTP
		Global
		Database
		API
		Device
		Reminder
		Tasks
		About
		Log
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	API struct {
		BaseURL   string
		Timeout   time.Duration
		RateLimit float64 // Requests per second, 0 disables limiting
		UserAgent string
	}
	Device struct {
		Theme string // Reported device theme: "light" or "dark"
	}
	Reminder struct {
		Permission PermissionMode
		Title      string
		Body       string
		WebhookURL string // Optional sink for delivered reminders
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	About struct {
		SupportEmail string
		WebsiteURL   string
	}
	Log struct {
		Env   string // "production" or "development"
		Level string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Backend API defaults
	v.SetDefault("api_base_url", DefaultAPIBaseURL)
	v.SetDefault("api_timeout", "15s")
	v.SetDefault("api_rate_limit", 0)
	v.SetDefault("api_user_agent", "madinah-companion")

	v.SetDefault("device_theme", "light")

	// Reminder defaults
	v.SetDefault("notifications_permission", string(PermissionGranted))
	v.SetDefault("reminder_title", "Daily Arabic practice")
	v.SetDefault("reminder_body", "Time for today's lesson.")
	v.SetDefault("reminder_webhook_url", "")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "5m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("support_email", "support@aramb.dev")
	v.SetDefault("website_url", "https://madinah.arabic.aramb.dev")

	v.SetDefault("app_env", "production")
	v.SetDefault("log_level", "info")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		API: API{
			BaseURL:   v.GetString("API_BASE_URL"),
			Timeout:   v.GetDuration("API_TIMEOUT"),
			RateLimit: v.GetFloat64("API_RATE_LIMIT"),
			UserAgent: v.GetString("API_USER_AGENT"),
		},
		Device: Device{
			Theme: v.GetString("DEVICE_THEME"),
		},
		Reminder: Reminder{
			Permission: PermissionMode(v.GetString("NOTIFICATIONS_PERMISSION")),
			Title:      v.GetString("REMINDER_TITLE"),
			Body:       v.GetString("REMINDER_BODY"),
			WebhookURL: v.GetString("REMINDER_WEBHOOK_URL"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		About: About{
			SupportEmail: v.GetString("SUPPORT_EMAIL"),
			WebsiteURL:   v.GetString("WEBSITE_URL"),
		},
		Log: Log{
			Env:   v.GetString("APP_ENV"),
			Level: v.GetString("LOG_LEVEL"),
		},
	}
}
