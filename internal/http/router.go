package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/madinah-companion/internal/validation"
)

// requestLogger logs one line per request through zap.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// awaitReady holds requests until the preferences have been loaded, so a
// read never observes defaults that are about to be replaced.
func awaitReady(ready <-chan struct{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		select {
		case <-ready:
			c.Next()
		case <-c.Request.Context().Done():
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, ErrorResponse{
				Error: "preferences not loaded",
				Code:  "not_ready",
			})
		}
	}
}

// NewRouter creates and configures the HTTP router with all endpoints.
// Route groups whose dependencies are missing from cfg are not registered.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	validator := cfg.Validator
	if validator == nil {
		validator = validation.New()
	}

	router := gin.New()
	router.Use(requestLogger(log))
	router.Use(gin.Recovery())

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	apiRoutes := router.Group("/api")

	// Catalog endpoints
	if cfg.Catalog != nil {
		catalog := NewCatalogController(cfg.Catalog, log)
		apiRoutes.GET("/books", catalog.ListBooks)
		apiRoutes.GET("/books/:bookId", catalog.GetBook)
		apiRoutes.GET("/books/:bookId/lessons", catalog.ListBookLessons)
		apiRoutes.GET("/books/:bookId/lessons/:lessonId", catalog.GetBookLesson)
		apiRoutes.GET("/books/:bookId/lessons/:lessonId/vocabulary", catalog.ListLessonVocabulary)
		apiRoutes.GET("/books/:bookId/lesson-titles", catalog.ListBookLessonTitles)
		apiRoutes.GET("/books/:bookId/metadata", catalog.GetBookMetadata)
		apiRoutes.GET("/books/:bookId/rule-count", catalog.GetBookRuleCount)
		apiRoutes.GET("/books/:bookId/vocabulary", catalog.ListBookVocabulary)
		apiRoutes.GET("/lessons", catalog.ListLessons)
		apiRoutes.GET("/lesson-titles", catalog.ListLessonTitles)
		apiRoutes.GET("/metadata", catalog.GetMetadata)
		apiRoutes.GET("/vocabulary", catalog.ListVocabulary)
	}

	// Settings endpoints
	if cfg.Settings != nil && cfg.Device != nil && cfg.Reminders != nil {
		settings := NewSettingsController(cfg.Settings, cfg.Device, cfg.Reminders, validator, log)
		group := apiRoutes.Group("/settings", awaitReady(cfg.Settings.Ready()))
		group.GET("/appearance", settings.GetAppearance)
		group.PUT("/appearance", settings.UpdateAppearance)
		group.PUT("/appearance/device", settings.UpdateDeviceTheme)
		group.GET("/learning", settings.GetLearning)
		group.PUT("/learning", settings.UpdateLearning)
		group.GET("/notifications", settings.GetNotifications)
		group.PUT("/notifications", settings.UpdateNotifications)
	}

	// About and changelog
	about := NewAboutController(cfg.Version, cfg.SupportEmail, cfg.WebsiteURL, log)
	apiRoutes.GET("/about", about.About)
	apiRoutes.GET("/changelog", about.Changelog)

	return router
}
