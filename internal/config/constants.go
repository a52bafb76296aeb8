package config

const (
	// DefaultDatabasePath is the default path for the preferences database
	DefaultDatabasePath = "./madinah.db"

	// DefaultAPIBaseURL points at the public Madinah Arabic backend
	DefaultAPIBaseURL = "https://madinah.arabic.aramb.dev/api"
)
