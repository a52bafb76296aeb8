package http

import (
	"go.uber.org/zap"

	"github.com/mrlokans/madinah-companion/internal/preferences"
	"github.com/mrlokans/madinah-companion/internal/validation"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Catalog  CatalogReader
	Settings *preferences.Settings
	Device   DeviceThemeSetter
	Database Pinger

	// Daily reminder scheduling
	Reminders ReminderScheduler

	// Request validation; a default validator is used when nil
	Validator *validation.Validator

	// Application info
	Version      string
	SupportEmail string
	WebsiteURL   string

	Logger *zap.Logger
}
