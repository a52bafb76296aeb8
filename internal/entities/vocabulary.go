package entities

type VocabularyTranslation struct {
	En string `json:"en"`
}

type VocabularyExample struct {
	Arabic  string `json:"arabic"`
	English string `json:"english"`
}

// Vocabulary is a word entry owned by a book and lesson by id reference.
type Vocabulary struct {
	ID              string                `json:"id"`
	BookID          string                `json:"bookId"`
	LessonID        string                `json:"lessonId"`
	Word            string                `json:"word"`
	Translation     VocabularyTranslation `json:"translation"`
	Type            string                `json:"type,omitempty"`
	Plural          string                `json:"plural,omitempty"`
	Transliteration string                `json:"transliteration,omitempty"`
	Definition      string                `json:"definition,omitempty"`
	Examples        []VocabularyExample   `json:"examples,omitempty"`
}
