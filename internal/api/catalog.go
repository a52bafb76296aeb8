package api

import (
	"context"
	"net/url"

	"github.com/mrlokans/madinah-companion/internal/entities"
)

// VocabularyFilter narrows ListVocabulary. Empty fields are not sent.
type VocabularyFilter struct {
	Book   string
	Lesson string
}

func (f VocabularyFilter) query() url.Values {
	q := url.Values{}
	if f.Book != "" {
		q.Set("book", f.Book)
	}
	if f.Lesson != "" {
		q.Set("lesson", f.Lesson)
	}
	return q
}

// ListBooks returns every book. Failures degrade to an empty list.
func (c *Client) ListBooks(ctx context.Context) ([]entities.Book, error) {
	return list[entities.Book](ctx, c, EndpointListBooks, nil)
}

// GetBook returns a single book.
func (c *Client) GetBook(ctx context.Context, bookID string) (*entities.Book, error) {
	book, err := call[entities.Book](ctx, c, EndpointGetBook, nil, bookID)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// ListBookLessons returns the lessons of a book. Failures degrade to an empty list.
func (c *Client) ListBookLessons(ctx context.Context, bookID string) ([]entities.Lesson, error) {
	return list[entities.Lesson](ctx, c, EndpointListBookLessons, nil, bookID)
}

// GetBookLesson returns a single lesson of a book.
func (c *Client) GetBookLesson(ctx context.Context, bookID, lessonID string) (*entities.Lesson, error) {
	lesson, err := call[entities.Lesson](ctx, c, EndpointGetBookLesson, nil, bookID, lessonID)
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (c *Client) ListLessons(ctx context.Context) ([]entities.Lesson, error) {
	return list[entities.Lesson](ctx, c, EndpointListLessons, nil)
}

func (c *Client) ListLessonTitles(ctx context.Context) ([]entities.LessonTitle, error) {
	return list[entities.LessonTitle](ctx, c, EndpointListLessonTitles, nil)
}

func (c *Client) ListBookLessonTitles(ctx context.Context, bookID string) ([]entities.LessonTitle, error) {
	return list[entities.LessonTitle](ctx, c, EndpointListBookLessonTitles, nil, bookID)
}

func (c *Client) GetMetadata(ctx context.Context) (*entities.Metadata, error) {
	metadata, err := call[entities.Metadata](ctx, c, EndpointGetMetadata, nil)
	if err != nil {
		return nil, err
	}
	return &metadata, nil
}

func (c *Client) GetBookMetadata(ctx context.Context, bookID string) (*entities.Metadata, error) {
	metadata, err := call[entities.Metadata](ctx, c, EndpointGetBookMetadata, nil, bookID)
	if err != nil {
		return nil, err
	}
	return &metadata, nil
}

func (c *Client) GetBookRuleCount(ctx context.Context, bookID string) (*entities.RuleCount, error) {
	count, err := call[entities.RuleCount](ctx, c, EndpointGetBookRuleCount, nil, bookID)
	if err != nil {
		return nil, err
	}
	return &count, nil
}

// ListVocabulary returns vocabulary, optionally scoped by book and lesson.
func (c *Client) ListVocabulary(ctx context.Context, filter VocabularyFilter) ([]entities.Vocabulary, error) {
	return list[entities.Vocabulary](ctx, c, EndpointListVocabulary, filter.query())
}

func (c *Client) ListBookVocabulary(ctx context.Context, bookID string) ([]entities.Vocabulary, error) {
	return list[entities.Vocabulary](ctx, c, EndpointListBookVocabulary, nil, bookID)
}

func (c *Client) ListLessonVocabulary(ctx context.Context, bookID, lessonID string) ([]entities.Vocabulary, error) {
	return list[entities.Vocabulary](ctx, c, EndpointListLessonVocabulary, nil, bookID, lessonID)
}
