package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/madinah-companion/internal/api"
	"github.com/mrlokans/madinah-companion/internal/config"
	"github.com/mrlokans/madinah-companion/internal/database"
	"github.com/mrlokans/madinah-companion/internal/database/settings"
	http_controllers "github.com/mrlokans/madinah-companion/internal/http"
	"github.com/mrlokans/madinah-companion/internal/logger"
	"github.com/mrlokans/madinah-companion/internal/preferences"
	"github.com/mrlokans/madinah-companion/internal/reminder"
	"github.com/mrlokans/madinah-companion/internal/scheduler"
	"github.com/mrlokans/madinah-companion/internal/tasks"
	"github.com/mrlokans/madinah-companion/internal/validation"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds the wired service. Shutdown releases everything NewApp opened.
type App struct {
	Router      *gin.Engine
	Settings    *preferences.Settings
	Reminders   *reminder.Scheduler
	Platform    *scheduler.NotificationService
	Database    *database.Database
	TaskClient  *tasks.Client
	stopWorkers context.CancelFunc
	log         *zap.Logger
}

// NewApp opens storage, loads preferences, reconciles the daily reminder
// and builds the router.
func NewApp(cfg *config.Config, version string, log *zap.Logger) (*App, error) {
	db, err := database.NewDatabase(cfg.Database.Path, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	app := &App{Database: db, log: log}

	device, err := preferences.ParseColorScheme(cfg.Device.Theme)
	if err != nil {
		log.Warn("unknown device theme, using light", zap.String("theme", cfg.Device.Theme))
		device = preferences.SchemeLight
	}
	deviceTheme := preferences.NewDeviceTheme(device)

	prefs := preferences.NewSettings(settings.NewRepository(db.DB), deviceTheme, log)
	prefs.Load(context.Background())
	app.Settings = prefs

	sinks := tasks.Sinks{tasks.NewLogSink(log)}
	if cfg.Reminder.WebhookURL != "" {
		sinks = append(sinks, tasks.NewWebhookSink(cfg.Reminder.WebhookURL))
	}

	var dispatcher scheduler.Dispatcher = tasks.NewDirectDispatcher(sinks)
	if cfg.Tasks.Enabled {
		taskClient, err := tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}, log)
		if err != nil {
			app.Shutdown(context.Background())
			return nil, fmt.Errorf("failed to initialize task queue: %w", err)
		}
		taskClient.Register(tasks.NewDeliverReminderQueue(sinks))

		workerCtx, cancel := context.WithCancel(context.Background())
		go taskClient.Start(workerCtx)

		app.TaskClient = taskClient
		app.stopWorkers = cancel
		dispatcher = tasks.NewQueueDispatcher(taskClient)
	}

	platform := scheduler.NewNotificationService(scheduler.Permission(cfg.Reminder.Permission), dispatcher, log)
	platform.Start()
	app.Platform = platform

	reminders := reminder.New(prefs.Notifications, platform, reminder.Config{
		Title: cfg.Reminder.Title,
		Body:  cfg.Reminder.Body,
	}, log)
	if err := reminders.Reconcile(context.Background()); err != nil {
		log.Warn("daily reminder could not be restored", zap.Error(err))
	}
	app.Reminders = reminders

	catalog := api.NewClient(api.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		RateLimit: cfg.API.RateLimit,
		UserAgent: cfg.API.UserAgent,
	}, log)

	if cfg.Log.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	app.Router = http_controllers.NewRouter(http_controllers.RouterConfig{
		Catalog:      catalog,
		Settings:     prefs,
		Device:       deviceTheme,
		Database:     db,
		Reminders:    reminders,
		Validator:    validation.New(),
		Version:      version,
		SupportEmail: cfg.About.SupportEmail,
		WebsiteURL:   cfg.About.WebsiteURL,
		Logger:       log,
	})

	return app, nil
}

// Shutdown stops the scheduler and workers, flushes pending preference
// writes and closes storage.
func (a *App) Shutdown(ctx context.Context) {
	if a.Platform != nil {
		a.Platform.Stop()
	}
	if a.TaskClient != nil {
		if !a.TaskClient.Stop(ctx) {
			a.log.Warn("task workers did not stop before the deadline")
		}
		a.stopWorkers()
	}
	if a.Settings != nil {
		if err := a.Settings.Flush(ctx); err != nil {
			a.log.Error("failed to flush preferences", zap.Error(err))
		}
		a.Settings.Close()
	}
	if a.TaskClient != nil {
		if err := a.TaskClient.Close(); err != nil {
			a.log.Error("failed to close task queue", zap.Error(err))
		}
	}
	if a.Database != nil {
		if err := a.Database.Close(); err != nil {
			a.log.Error("failed to close database", zap.Error(err))
		}
	}
}

func Serve(router *gin.Engine, cfg *config.Config, log *zap.Logger, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server", zap.Duration("timeout", timeout))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}

	// Runs after the server so no request can write preferences past the flush.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Info("server exiting")
}

func Run(cfg *config.Config, version string) {
	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting madinah companion", zap.String("version", version))

	app, err := NewApp(cfg, version, log)
	if err != nil {
		log.Fatal("failed to start", zap.Error(err))
	}

	Serve(app.Router, cfg, log, app.Shutdown)
}
