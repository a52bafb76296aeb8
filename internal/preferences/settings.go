package preferences

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

type lifecycle interface {
	Load(ctx context.Context)
	Ready() <-chan struct{}
	Flush(ctx context.Context) error
	Close()
}

// Settings is the app-wide container shared by every consumer, so all of
// them observe the same preference values.
type Settings struct {
	Theme         *ThemeStore
	FontSize      *FontSizeStore
	Font          *FontStore
	Learning      *LearningStore
	Notifications *NotificationsStore

	ready     chan struct{}
	readyOnce sync.Once
}

func NewSettings(kv KV, device DeviceThemeSource, log *zap.Logger) *Settings {
	return &Settings{
		Theme:         NewThemeStore(kv, device, log),
		FontSize:      NewFontSizeStore(kv, log),
		Font:          NewFontStore(kv, log),
		Learning:      NewLearningStore(kv, log),
		Notifications: NewNotificationsStore(kv, log),
		ready:         make(chan struct{}),
	}
}

func (s *Settings) stores() []lifecycle {
	return []lifecycle{s.Theme, s.FontSize, s.Font, s.Learning, s.Notifications}
}

// Load loads every store concurrently and returns once all are ready.
func (s *Settings) Load(ctx context.Context) {
	var wg sync.WaitGroup
	for _, st := range s.stores() {
		wg.Add(1)
		go func(st lifecycle) {
			defer wg.Done()
			st.Load(ctx)
		}(st)
	}
	wg.Wait()
	s.readyOnce.Do(func() { close(s.ready) })
}

// Ready is closed once every store has loaded through Settings.Load.
func (s *Settings) Ready() <-chan struct{} {
	return s.ready
}

func (s *Settings) Flush(ctx context.Context) error {
	var errs []error
	for _, st := range s.stores() {
		if err := st.Flush(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Settings) Close() {
	for _, st := range s.stores() {
		st.Close()
	}
}
