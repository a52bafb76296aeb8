package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/madinah-companion/internal/api"
)

// CatalogController proxies the course catalog. List endpoints never fail:
// the gateway already degrades them to empty results.
type CatalogController struct {
	catalog CatalogReader
	log     *zap.Logger
}

func NewCatalogController(catalog CatalogReader, log *zap.Logger) *CatalogController {
	return &CatalogController{catalog: catalog, log: log}
}

func (cc *CatalogController) ListBooks(c *gin.Context) {
	books, err := cc.catalog.ListBooks(c.Request.Context())
	if err != nil {
		cc.respondUpstreamError(c, err, "books")
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

func (cc *CatalogController) GetBook(c *gin.Context) {
	book, err := cc.catalog.GetBook(c.Request.Context(), c.Param("bookId"))
	if err != nil {
		cc.respondUpstreamError(c, err, "book")
		return
	}
	c.JSON(http.StatusOK, book)
}

func (cc *CatalogController) ListBookLessons(c *gin.Context) {
	lessons, err := cc.catalog.ListBookLessons(c.Request.Context(), c.Param("bookId"))
	if err != nil {
		cc.respondUpstreamError(c, err, "lessons")
		return
	}
	c.JSON(http.StatusOK, gin.H{"lessons": lessons, "count": len(lessons)})
}

func (cc *CatalogController) GetBookLesson(c *gin.Context) {
	lesson, err := cc.catalog.GetBookLesson(c.Request.Context(), c.Param("bookId"), c.Param("lessonId"))
	if err != nil {
		cc.respondUpstreamError(c, err, "lesson")
		return
	}
	c.JSON(http.StatusOK, lesson)
}

func (cc *CatalogController) ListLessons(c *gin.Context) {
	lessons, err := cc.catalog.ListLessons(c.Request.Context())
	if err != nil {
		cc.respondUpstreamError(c, err, "lessons")
		return
	}
	c.JSON(http.StatusOK, gin.H{"lessons": lessons, "count": len(lessons)})
}

func (cc *CatalogController) ListLessonTitles(c *gin.Context) {
	titles, err := cc.catalog.ListLessonTitles(c.Request.Context())
	if err != nil {
		cc.respondUpstreamError(c, err, "lesson titles")
		return
	}
	c.JSON(http.StatusOK, gin.H{"lessonTitles": titles, "count": len(titles)})
}

func (cc *CatalogController) ListBookLessonTitles(c *gin.Context) {
	titles, err := cc.catalog.ListBookLessonTitles(c.Request.Context(), c.Param("bookId"))
	if err != nil {
		cc.respondUpstreamError(c, err, "lesson titles")
		return
	}
	c.JSON(http.StatusOK, gin.H{"lessonTitles": titles, "count": len(titles)})
}

func (cc *CatalogController) GetMetadata(c *gin.Context) {
	meta, err := cc.catalog.GetMetadata(c.Request.Context())
	if err != nil {
		cc.respondUpstreamError(c, err, "metadata")
		return
	}
	c.JSON(http.StatusOK, meta)
}

func (cc *CatalogController) GetBookMetadata(c *gin.Context) {
	meta, err := cc.catalog.GetBookMetadata(c.Request.Context(), c.Param("bookId"))
	if err != nil {
		cc.respondUpstreamError(c, err, "metadata")
		return
	}
	c.JSON(http.StatusOK, meta)
}

func (cc *CatalogController) GetBookRuleCount(c *gin.Context) {
	count, err := cc.catalog.GetBookRuleCount(c.Request.Context(), c.Param("bookId"))
	if err != nil {
		cc.respondUpstreamError(c, err, "rule count")
		return
	}
	c.JSON(http.StatusOK, count)
}

// ListVocabulary accepts optional "book" and "lesson" query filters.
func (cc *CatalogController) ListVocabulary(c *gin.Context) {
	filter := api.VocabularyFilter{Book: c.Query("book"), Lesson: c.Query("lesson")}
	words, err := cc.catalog.ListVocabulary(c.Request.Context(), filter)
	if err != nil {
		cc.respondUpstreamError(c, err, "vocabulary")
		return
	}
	c.JSON(http.StatusOK, gin.H{"vocabulary": words, "count": len(words)})
}

func (cc *CatalogController) ListBookVocabulary(c *gin.Context) {
	words, err := cc.catalog.ListBookVocabulary(c.Request.Context(), c.Param("bookId"))
	if err != nil {
		cc.respondUpstreamError(c, err, "vocabulary")
		return
	}
	c.JSON(http.StatusOK, gin.H{"vocabulary": words, "count": len(words)})
}

func (cc *CatalogController) ListLessonVocabulary(c *gin.Context) {
	words, err := cc.catalog.ListLessonVocabulary(c.Request.Context(), c.Param("bookId"), c.Param("lessonId"))
	if err != nil {
		cc.respondUpstreamError(c, err, "vocabulary")
		return
	}
	c.JSON(http.StatusOK, gin.H{"vocabulary": words, "count": len(words)})
}

// respondUpstreamError maps gateway failures: a backend 404 stays a 404,
// everything else is a bad gateway.
func (cc *CatalogController) respondUpstreamError(c *gin.Context, err error, resource string) {
	if api.IsNotFound(err) {
		respondNotFound(c, resource)
		return
	}
	cc.log.Warn("catalog request failed", zap.String("resource", resource), zap.Error(err))
	respondError(c, http.StatusBadGateway, "upstream_error", "failed to load "+resource)
}
