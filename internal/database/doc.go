// Package database provides the local persistence layer of the companion.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup and migrations
//	└── settings/        # Key-value store backing the preference stores
//
// Every user preference is one row of the settings table. Values are plain
// strings; numbers and booleans are formatted by the preference stores.
//
//	db, err := database.NewDatabase("./madinah.db", log)
//	kv := settings.NewRepository(db.DB)
//	value, ok, err := kv.Get(ctx, "themePreference")
package database
