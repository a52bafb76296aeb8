// Package preferences holds the persisted user preferences.
//
// Every store follows the same lifecycle: it starts with defaults
// (Uninitialized), reads its keys once (Loading) and then serves from
// memory (Ready). Setters update memory immediately and persist through a
// per-store write queue; persistence failures are logged, never returned.
package preferences

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// KV is the persisted key-value backend.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// decodeFunc applies a stored value to the owning store. It runs with the
// store lock held.
type decodeFunc func(key, value string) error

// store carries the lifecycle, listeners and write queue shared by all
// preference stores.
type store struct {
	name   string
	keys   []string
	kv     KV
	log    *zap.Logger
	decode decodeFunc
	writes *writeQueue

	mu      sync.RWMutex
	state   State
	touched map[string]bool

	ready    chan struct{}
	loadOnce sync.Once

	listenersMu  sync.Mutex
	listeners    map[int]func()
	nextListener int
}

func newStore(name string, keys []string, kv KV, log *zap.Logger, decode decodeFunc) *store {
	log = log.With(zap.String("store", name))
	return &store{
		name:      name,
		keys:      keys,
		kv:        kv,
		log:       log,
		decode:    decode,
		writes:    newWriteQueue(kv, log),
		touched:   make(map[string]bool),
		ready:     make(chan struct{}),
		listeners: make(map[int]func()),
	}
}

// Load reads every owned key once. Read failures and undecodable values are
// logged and leave the default in place; values set before Load finished
// win over stored ones. Subsequent calls are no-ops.
func (s *store) Load(ctx context.Context) {
	s.loadOnce.Do(func() {
		s.mu.Lock()
		s.state = StateLoading
		s.mu.Unlock()

		for _, key := range s.keys {
			value, ok, err := s.kv.Get(ctx, key)
			if err != nil {
				s.log.Warn("failed to read preference, keeping default",
					zap.Error(&PersistenceError{Op: "read", Key: key, Err: err}),
				)
				continue
			}
			if !ok {
				continue
			}

			s.mu.Lock()
			if !s.touched[key] {
				if err := s.decode(key, value); err != nil {
					s.log.Warn("ignoring undecodable preference",
						zap.String("key", key),
						zap.String("value", value),
						zap.Error(err),
					)
				}
			}
			s.mu.Unlock()
		}

		s.mu.Lock()
		s.state = StateReady
		s.touched = nil
		s.mu.Unlock()

		close(s.ready)
		s.notify()
	})
}

func (s *store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Ready returns a channel closed once Load has completed.
func (s *store) Ready() <-chan struct{} {
	return s.ready
}

// Subscribe registers fn to be called after every change, including the
// completion of Load. The returned function removes the subscription.
func (s *store) Subscribe(fn func()) (unsubscribe func()) {
	s.listenersMu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

// Flush waits until every write issued so far has reached the store.
func (s *store) Flush(ctx context.Context) error {
	return s.writes.flush(ctx)
}

// Close drains queued writes and stops the writer.
func (s *store) Close() {
	s.writes.close()
}

// set applies a change in memory and queues its write. The write is queued
// under the store lock so persisted order matches in-memory order.
func (s *store) set(key, encoded string, apply func()) {
	s.mu.Lock()
	apply()
	if s.state != StateReady {
		s.touched[key] = true
	}
	queued := s.writes.enqueue(writeOp{key: key, value: encoded})
	s.mu.Unlock()

	if !queued {
		s.log.Warn("store closed, preference not persisted", zap.String("key", key))
	}
	s.notify()
}

func (s *store) notify() {
	s.listenersMu.Lock()
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenersMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
