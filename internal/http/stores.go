package http

import (
	"context"

	"github.com/mrlokans/madinah-companion/internal/api"
	"github.com/mrlokans/madinah-companion/internal/entities"
	"github.com/mrlokans/madinah-companion/internal/preferences"
	"github.com/mrlokans/madinah-companion/internal/scheduler"
)

// This file consolidates the interfaces used by HTTP controllers.

// CatalogReader provides read access to the remote course catalog.
type CatalogReader interface {
	ListBooks(ctx context.Context) ([]entities.Book, error)
	GetBook(ctx context.Context, bookID string) (*entities.Book, error)
	ListBookLessons(ctx context.Context, bookID string) ([]entities.Lesson, error)
	GetBookLesson(ctx context.Context, bookID, lessonID string) (*entities.Lesson, error)
	ListLessons(ctx context.Context) ([]entities.Lesson, error)
	ListLessonTitles(ctx context.Context) ([]entities.LessonTitle, error)
	ListBookLessonTitles(ctx context.Context, bookID string) ([]entities.LessonTitle, error)
	GetMetadata(ctx context.Context) (*entities.Metadata, error)
	GetBookMetadata(ctx context.Context, bookID string) (*entities.Metadata, error)
	GetBookRuleCount(ctx context.Context, bookID string) (*entities.RuleCount, error)
	ListVocabulary(ctx context.Context, filter api.VocabularyFilter) ([]entities.Vocabulary, error)
	ListBookVocabulary(ctx context.Context, bookID string) ([]entities.Vocabulary, error)
	ListLessonVocabulary(ctx context.Context, bookID, lessonID string) ([]entities.Vocabulary, error)
}

// ReminderScheduler applies notification preference changes to the platform
// schedule.
type ReminderScheduler interface {
	SetEnabled(ctx context.Context, enabled bool) error
	SetTime(ctx context.Context, hhmm string) error
	Permission(ctx context.Context) (scheduler.Permission, error)
}

// DeviceThemeSetter holds the appearance reported by the device.
type DeviceThemeSetter interface {
	DeviceTheme() preferences.ColorScheme
	Set(scheme preferences.ColorScheme)
}

// Pinger reports storage connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}
