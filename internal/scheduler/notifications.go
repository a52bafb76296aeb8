package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	repeatInterval  = 24 * time.Hour
	dispatchTimeout = 30 * time.Second
)

// ErrUnknownHandle is returned when cancelling a schedule that does not exist
var ErrUnknownHandle = errors.New("unknown schedule handle")

type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// Notification is the user-visible content of a reminder.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ScheduleRequest asks for a notification after Delay, repeated daily when
// Repeats is set.
type ScheduleRequest struct {
	Notification
	Delay   time.Duration
	Repeats bool
}

// Firing is handed to the Dispatcher each time a schedule triggers.
type Firing struct {
	Notification
	Handle  string    `json:"handle"`
	FiredAt time.Time `json:"fired_at"`
}

// Dispatcher delivers fired notifications.
type Dispatcher interface {
	Dispatch(ctx context.Context, firing Firing) error
}

// NotificationService keeps local notification schedules on a cron runner.
type NotificationService struct {
	permission Permission
	dispatcher Dispatcher
	log        *zap.Logger
	now        func() time.Time

	cron      *cron.Cron
	mu        sync.RWMutex
	entries   map[string]cron.EntryID
	isRunning bool
}

// NewNotificationService creates a service that answers permission requests
// with the configured permission.
func NewNotificationService(permission Permission, dispatcher Dispatcher, log *zap.Logger) *NotificationService {
	return &NotificationService{
		permission: permission,
		dispatcher: dispatcher,
		log:        log,
		now:        time.Now,
		cron:       cron.New(),
		entries:    make(map[string]cron.EntryID),
	}
}

func (s *NotificationService) RequestPermission(ctx context.Context) (Permission, error) {
	if err := ctx.Err(); err != nil {
		return PermissionDenied, err
	}
	if s.permission == PermissionGranted {
		return PermissionGranted, nil
	}
	return PermissionDenied, nil
}

// Schedule registers a notification and returns its handle.
func (s *NotificationService) Schedule(ctx context.Context, req ScheduleRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if req.Delay < 0 {
		return "", fmt.Errorf("negative delay %s", req.Delay)
	}

	handle := uuid.NewString()
	schedule := &delaySchedule{first: s.now().Add(req.Delay)}
	if req.Repeats {
		schedule.every = repeatInterval
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.cron.Schedule(schedule, cron.FuncJob(func() {
		s.fire(handle, req)
	}))
	s.entries[handle] = id

	s.log.Info("notification scheduled",
		zap.String("handle", handle),
		zap.Time("first_run", schedule.first),
		zap.Bool("repeats", req.Repeats),
	)
	return handle, nil
}

// Cancel removes a schedule.
func (s *NotificationService) Cancel(ctx context.Context, handle string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.entries[handle]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownHandle, handle)
	}
	s.cron.Remove(id)
	delete(s.entries, handle)

	s.log.Info("notification cancelled", zap.String("handle", handle))
	return nil
}

// Start begins firing schedules
func (s *NotificationService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return
	}
	s.cron.Start()
	s.isRunning = true
	s.log.Info("notification scheduler started")
}

// Stop gracefully stops the scheduler, waiting for running dispatches
func (s *NotificationService) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.mu.Unlock()

	// A firing job may need the lock to drop a one-shot entry.
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.log.Info("notification scheduler stopped")
}

func (s *NotificationService) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the schedule will fire next. It is only known while
// the scheduler is running.
func (s *NotificationService) NextRun(handle string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.entries[handle]
	if !ok {
		return time.Time{}, false
	}
	entry := s.cron.Entry(id)
	if !entry.Valid() || entry.Next.IsZero() {
		return time.Time{}, false
	}
	return entry.Next, true
}

func (s *NotificationService) fire(handle string, req ScheduleRequest) {
	if !req.Repeats {
		s.mu.Lock()
		if id, ok := s.entries[handle]; ok {
			s.cron.Remove(id)
			delete(s.entries, handle)
		}
		s.mu.Unlock()
	}

	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	firing := Firing{Notification: req.Notification, Handle: handle, FiredAt: s.now()}
	if err := s.dispatcher.Dispatch(ctx, firing); err != nil {
		s.log.Error("failed to dispatch notification", zap.String("handle", handle), zap.Error(err))
		return
	}
	s.log.Debug("notification dispatched", zap.String("handle", handle))
}

// delaySchedule fires at first and then every interval; a zero interval
// fires once.
type delaySchedule struct {
	first time.Time
	every time.Duration
}

func (d *delaySchedule) Next(t time.Time) time.Time {
	if t.Before(d.first) {
		return d.first
	}
	if d.every <= 0 {
		return time.Time{}
	}
	periods := t.Sub(d.first)/d.every + 1
	return d.first.Add(periods * d.every)
}
