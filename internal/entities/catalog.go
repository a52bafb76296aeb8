package entities

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Language tags understood by LocalizedText.
const (
	LangArabic  = "ar"
	LangEnglish = "en"
)

// MissingText is returned by LocalizedText.Get when neither language is present.
const MissingText = "—"

// LocalizedText holds the Arabic and English forms of a string. The backend
// sends either an object with "ar"/"en" keys or a bare string.
type LocalizedText struct {
	Ar string `json:"ar,omitempty"`
	En string `json:"en,omitempty"`
}

func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		t.Ar, t.En = s, s
		return nil
	}

	type plain LocalizedText
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = LocalizedText(p)
	return nil
}

// Get resolves the text for lang: the requested language, then Arabic, then
// English, then MissingText.
func (t LocalizedText) Get(lang string) string {
	for _, candidate := range []string{t.lookup(lang), t.Ar, t.En} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return MissingText
}

func (t LocalizedText) IsEmpty() bool {
	return strings.TrimSpace(t.Ar) == "" && strings.TrimSpace(t.En) == ""
}

func (t LocalizedText) lookup(lang string) string {
	switch lang {
	case LangArabic:
		return t.Ar
	case LangEnglish:
		return t.En
	default:
		return ""
	}
}

type Book struct {
	ID          string         `json:"id"`
	Title       LocalizedText  `json:"title"`
	Description *LocalizedText `json:"description,omitempty"`
	Lessons     []Lesson       `json:"lessons,omitempty"`
	Available   *bool          `json:"available,omitempty"`
	ComingSoon  *bool          `json:"comingSoon,omitempty"`
}

// IsAvailable treats a missing flag as available.
func (b Book) IsAvailable() bool {
	if b.ComingSoon != nil && *b.ComingSoon {
		return false
	}
	return b.Available == nil || *b.Available
}

type Lesson struct {
	ID           string         `json:"id"`
	BookID       string         `json:"bookId"`
	Title        LocalizedText  `json:"title"`
	Introduction *LocalizedText `json:"introduction,omitempty"`
	Description  string         `json:"description,omitempty"`
	Content      *LessonContent `json:"content,omitempty"`
	Rules        []Rule         `json:"rules,omitempty"`
}

// ContentItem is one line of lesson content. Both fields may be absent.
type ContentItem struct {
	Arabic      string `json:"arabic,omitempty"`
	Translation string `json:"translation,omitempty"`
}

func (c ContentItem) IsEmpty() bool {
	return c.Arabic == "" && c.Translation == ""
}

// LessonContent is either a list of content items or a raw string. Raw
// strings holding a JSON array of items are decoded into Items.
type LessonContent struct {
	Raw   string
	Items []ContentItem
}

func (c *LessonContent) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		c.Raw = raw

		var items []ContentItem
		if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &items); err == nil {
			c.Items = items
		}
		return nil
	}

	return json.Unmarshal(data, &c.Items)
}

func (c LessonContent) MarshalJSON() ([]byte, error) {
	if c.Items == nil && c.Raw != "" {
		return json.Marshal(c.Raw)
	}
	if c.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.Items)
}

type Rule struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Type    string `json:"type,omitempty"`
}

type LessonTitle struct {
	ID     string        `json:"id"`
	Title  LocalizedText `json:"title"`
	BookID string        `json:"bookId"`
}

type Metadata struct {
	Books        []Book `json:"books"`
	TotalLessons int    `json:"totalLessons"`
	LastUpdated  string `json:"lastUpdated"`
}

type RuleCount struct {
	BookID      string         `json:"bookId"`
	TotalRules  int            `json:"totalRules"`
	RulesByType map[string]int `json:"rulesByType"`
}
