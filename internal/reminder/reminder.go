// Package reminder keeps the daily study reminder consistent with the stored
// notification preferences.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mrlokans/madinah-companion/internal/preferences"
	"github.com/mrlokans/madinah-companion/internal/scheduler"
)

const (
	DefaultTitle = "Daily Arabic practice"
	DefaultBody  = "Time for today's lesson."
)

// ErrPermissionDenied is returned when reminders cannot be enabled because
// notification permission was not granted
var ErrPermissionDenied = errors.New("notification permission denied")

// Platform is the local notification service.
type Platform interface {
	RequestPermission(ctx context.Context) (scheduler.Permission, error)
	Schedule(ctx context.Context, req scheduler.ScheduleRequest) (string, error)
	Cancel(ctx context.Context, handle string) error
}

// Store is the persisted reminder state.
type Store interface {
	Enabled() bool
	SetEnabled(v bool)
	Time() string
	SetTime(hhmm string) error
	Handle() string
	SetHandle(handle string)
}

type Config struct {
	Title string
	Body  string
	Now   func() time.Time
}

// Scheduler owns the single daily reminder schedule.
type Scheduler struct {
	store    Store
	platform Platform
	log      *zap.Logger
	content  scheduler.Notification
	now      func() time.Time

	mu sync.Mutex
}

func New(store Store, platform Platform, cfg Config, log *zap.Logger) *Scheduler {
	content := scheduler.Notification{Title: cfg.Title, Body: cfg.Body}
	if content.Title == "" {
		content.Title = DefaultTitle
	}
	if content.Body == "" {
		content.Body = DefaultBody
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Scheduler{
		store:    store,
		platform: platform,
		log:      log,
		content:  content,
		now:      now,
	}
}

// NextDelay returns the time from now until the next HH:MM in now's
// location. A target equal to now is scheduled for the following day.
func NextDelay(now time.Time, hhmm string) (time.Duration, error) {
	hour, minute, err := preferences.ParseReminderTime(hhmm)
	if err != nil {
		return 0, err
	}

	schedule, err := cron.ParseStandard(fmt.Sprintf("%d %d * * *", minute, hour))
	if err != nil {
		return 0, fmt.Errorf("failed to build schedule for %s: %w", hhmm, err)
	}
	return schedule.Next(now).Sub(now), nil
}

// SetEnabled turns the daily reminder on or off. Enabling requests
// permission first; when it is refused or scheduling fails the reminder
// stays disabled and the error is returned.
func (s *Scheduler) SetEnabled(ctx context.Context, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !enabled {
		s.store.SetEnabled(false)
		s.cancelLocked(ctx)
		return nil
	}
	return s.enableLocked(ctx)
}

// Permission reports whether the platform currently allows notifications.
func (s *Scheduler) Permission(ctx context.Context) (scheduler.Permission, error) {
	return s.platform.RequestPermission(ctx)
}

// SetTime stores a new reminder time and reschedules an enabled reminder.
func (s *Scheduler) SetTime(ctx context.Context, hhmm string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SetTime(hhmm); err != nil {
		return err
	}
	if !s.store.Enabled() {
		return nil
	}

	if err := s.scheduleLocked(ctx); err != nil {
		s.store.SetEnabled(false)
		return err
	}
	return nil
}

// Reconcile brings the platform in line with the stored state after a
// restart: enabled reminders are scheduled again and a leftover handle of a
// disabled reminder is cleared.
func (s *Scheduler) Reconcile(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store.Enabled() {
		return s.enableLocked(ctx)
	}
	if s.store.Handle() != "" {
		s.cancelLocked(ctx)
	}
	return nil
}

func (s *Scheduler) enableLocked(ctx context.Context) error {
	permission, err := s.platform.RequestPermission(ctx)
	if err != nil || permission != scheduler.PermissionGranted {
		s.store.SetEnabled(false)
		s.cancelLocked(ctx)
		s.log.Warn("daily reminder not enabled: permission denied", zap.Error(err))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		}
		return ErrPermissionDenied
	}

	s.store.SetEnabled(true)
	if err := s.scheduleLocked(ctx); err != nil {
		s.store.SetEnabled(false)
		return err
	}
	return nil
}

// scheduleLocked replaces any existing schedule with one for the stored time.
func (s *Scheduler) scheduleLocked(ctx context.Context) error {
	hhmm := s.store.Time()
	delay, err := NextDelay(s.now(), hhmm)
	if err != nil {
		return err
	}

	s.cancelLocked(ctx)

	handle, err := s.platform.Schedule(ctx, scheduler.ScheduleRequest{
		Notification: s.content,
		Delay:        delay,
		Repeats:      true,
	})
	if err != nil {
		s.log.Error("failed to schedule daily reminder", zap.String("time", hhmm), zap.Error(err))
		return fmt.Errorf("failed to schedule reminder: %w", err)
	}

	s.store.SetHandle(handle)
	s.log.Info("daily reminder scheduled",
		zap.String("time", hhmm),
		zap.Duration("first_in", delay),
		zap.String("handle", handle),
	)
	return nil
}

// cancelLocked cancels the stored handle, if any, and clears it even when
// the platform reports an error.
func (s *Scheduler) cancelLocked(ctx context.Context) {
	handle := s.store.Handle()
	if handle == "" {
		return
	}

	if err := s.platform.Cancel(ctx, handle); err != nil {
		s.log.Warn("failed to cancel daily reminder", zap.String("handle", handle), zap.Error(err))
	}
	s.store.SetHandle("")
}
