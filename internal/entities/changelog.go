package entities

// ChangelogEntry is one release in the bundled changelog.
type ChangelogEntry struct {
	Version string   `json:"version"`
	Date    string   `json:"date"`
	Changes []string `json:"changes"`
}
