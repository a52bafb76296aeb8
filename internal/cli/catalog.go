package cli

import (
	"flag"
	"fmt"

	"github.com/mrlokans/madinah-companion/internal/api"
	"github.com/mrlokans/madinah-companion/internal/entities"
)

type BooksCommand struct {
	catalogFlags
}

func NewBooksCommand() *BooksCommand {
	return &BooksCommand{}
}

func (cmd *BooksCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("books", flag.ExitOnError)
	cmd.register(fs)
	fs.Usage = usage(fs, "books [options]", "List the textbooks.", "books", "books -lang ar")
	return fs.Parse(args)
}

func (cmd *BooksCommand) Run() error {
	ctx, cancel := cmd.requestContext()
	defer cancel()

	books, err := cmd.client().ListBooks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list books: %w", err)
	}

	out := cmd.writer()
	if len(books) == 0 {
		fmt.Fprintln(out, "No books available")
		return nil
	}
	for i, book := range books {
		status := ""
		if !book.IsAvailable() {
			status = " (coming soon)"
		}
		fmt.Fprintf(out, "%d. %s [%s]%s\n", i+1, book.Title.Get(cmd.Lang), book.ID, status)
	}
	return nil
}

type LessonsCommand struct {
	catalogFlags
	BookID   string
	LessonID string
}

func NewLessonsCommand() *LessonsCommand {
	return &LessonsCommand{}
}

func (cmd *LessonsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("lessons", flag.ExitOnError)
	cmd.register(fs)
	fs.StringVar(&cmd.BookID, "book", "", "Book id (required)")
	fs.StringVar(&cmd.LessonID, "lesson", "", "Show a single lesson in full")
	fs.Usage = usage(fs, "lessons -book <id> [options]",
		"List the lessons of a book, or show one lesson.",
		"lessons -book 1", "lessons -book 1 -lesson 3 -lang ar")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.BookID == "" {
		fs.Usage()
		return fmt.Errorf("book is required")
	}
	return nil
}

func (cmd *LessonsCommand) Run() error {
	ctx, cancel := cmd.requestContext()
	defer cancel()

	client := cmd.client()
	out := cmd.writer()

	if cmd.LessonID == "" {
		titles, err := client.ListBookLessonTitles(ctx, cmd.BookID)
		if err != nil {
			return fmt.Errorf("failed to list lessons: %w", err)
		}
		if len(titles) == 0 {
			fmt.Fprintln(out, "No lessons available")
			return nil
		}
		for i, title := range titles {
			fmt.Fprintf(out, "%d. %s [%s]\n", i+1, title.Title.Get(cmd.Lang), title.ID)
		}
		return nil
	}

	lesson, err := client.GetBookLesson(ctx, cmd.BookID, cmd.LessonID)
	if err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("lesson %s of book %s not found", cmd.LessonID, cmd.BookID)
		}
		return fmt.Errorf("failed to load lesson: %w", err)
	}
	cmd.printLesson(lesson)
	return nil
}

func (cmd *LessonsCommand) printLesson(lesson *entities.Lesson) {
	out := cmd.writer()
	fmt.Fprintf(out, "%s\n", lesson.Title.Get(cmd.Lang))
	if lesson.Introduction != nil && !lesson.Introduction.IsEmpty() {
		fmt.Fprintf(out, "\n%s\n", lesson.Introduction.Get(cmd.Lang))
	}

	if lesson.Content != nil {
		if len(lesson.Content.Items) > 0 {
			fmt.Fprintln(out)
			for _, item := range lesson.Content.Items {
				if item.IsEmpty() {
					continue
				}
				fmt.Fprintf(out, "  %s — %s\n", item.Arabic, item.Translation)
			}
		} else if lesson.Content.Raw != "" {
			fmt.Fprintf(out, "\n%s\n", lesson.Content.Raw)
		}
	}

	if len(lesson.Rules) > 0 {
		fmt.Fprintf(out, "\nRules:\n")
		for _, rule := range lesson.Rules {
			fmt.Fprintf(out, "  - %s\n", rule.Content)
		}
	}
}

type VocabularyCommand struct {
	catalogFlags
	BookID   string
	LessonID string
}

func NewVocabularyCommand() *VocabularyCommand {
	return &VocabularyCommand{}
}

func (cmd *VocabularyCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("vocabulary", flag.ExitOnError)
	cmd.register(fs)
	fs.StringVar(&cmd.BookID, "book", "", "Only words from this book")
	fs.StringVar(&cmd.LessonID, "lesson", "", "Only words from this lesson")
	fs.Usage = usage(fs, "vocabulary [options]", "List vocabulary, optionally scoped to a book or lesson.",
		"vocabulary", "vocabulary -book 1", "vocabulary -book 1 -lesson 3")
	return fs.Parse(args)
}

func (cmd *VocabularyCommand) Run() error {
	ctx, cancel := cmd.requestContext()
	defer cancel()

	client := cmd.client()

	var (
		words []entities.Vocabulary
		err   error
	)
	switch {
	case cmd.BookID != "" && cmd.LessonID != "":
		words, err = client.ListLessonVocabulary(ctx, cmd.BookID, cmd.LessonID)
	case cmd.BookID != "":
		words, err = client.ListBookVocabulary(ctx, cmd.BookID)
	default:
		words, err = client.ListVocabulary(ctx, api.VocabularyFilter{Lesson: cmd.LessonID})
	}
	if err != nil {
		return fmt.Errorf("failed to list vocabulary: %w", err)
	}

	out := cmd.writer()
	if len(words) == 0 {
		fmt.Fprintln(out, "No vocabulary found")
		return nil
	}
	for _, word := range words {
		line := word.Word
		if word.Transliteration != "" {
			line += " (" + word.Transliteration + ")"
		}
		if word.Translation.En != "" {
			line += " — " + word.Translation.En
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "\n%d words\n", len(words))
	return nil
}
