// Package changelog serves the bundled release notes.
package changelog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/mrlokans/madinah-companion/internal/entities"
)

//go:embed changelog.json
var bundled []byte

type Category string

const (
	CategoryFeature     Category = "feature"
	CategoryBugfix      Category = "bugfix"
	CategoryImprovement Category = "improvement"
	CategoryRemoval     Category = "removal"
	CategoryChange      Category = "change"
)

// Keyword groups are checked in order; the first match wins.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryFeature, []string{"add", "new", "implement"}},
	{CategoryBugfix, []string{"fix", "resolve", "correct"}},
	{CategoryImprovement, []string{"improve", "update", "enhance"}},
	{CategoryRemoval, []string{"remove", "delete", "revert"}},
}

// Change is one categorised line of a release.
type Change struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
}

// Release is a changelog entry ready for display.
type Release struct {
	Version string   `json:"version"`
	Date    string   `json:"date"`
	Latest  bool     `json:"latest"`
	Changes []Change `json:"changes"`
}

// Load returns the bundled changelog, newest version first.
func Load() ([]entities.ChangelogEntry, error) {
	return Parse(bundled)
}

// Parse decodes a changelog document and sorts it newest first.
func Parse(data []byte) ([]entities.ChangelogEntry, error) {
	var entries []entities.ChangelogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse changelog: %w", err)
	}
	SortNewestFirst(entries)
	return entries, nil
}

// SortNewestFirst orders entries by semantic version, descending. Entries
// whose version is not a valid semantic version keep their relative order
// at the end.
func SortNewestFirst(entries []entities.ChangelogEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		vi, vj := canonical(entries[i].Version), canonical(entries[j].Version)
		switch {
		case vi == "" || vj == "":
			return vi != "" && vj == ""
		default:
			return semver.Compare(vi, vj) > 0
		}
	})
}

func canonical(version string) string {
	v := strings.TrimSpace(version)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return v
}

// Categorize classifies a change line by keyword.
func Categorize(change string) Category {
	lower := strings.ToLower(change)
	for _, group := range categoryKeywords {
		for _, keyword := range group.keywords {
			if strings.Contains(lower, keyword) {
				return group.category
			}
		}
	}
	return CategoryChange
}

// Releases categorises sorted entries and marks the first as latest.
func Releases(entries []entities.ChangelogEntry) []Release {
	releases := make([]Release, 0, len(entries))
	for i, entry := range entries {
		changes := make([]Change, 0, len(entry.Changes))
		for _, text := range entry.Changes {
			changes = append(changes, Change{Text: text, Category: Categorize(text)})
		}
		releases = append(releases, Release{
			Version: entry.Version,
			Date:    entry.Date,
			Latest:  i == 0,
			Changes: changes,
		})
	}
	return releases
}
