package preferences

import (
	"context"
	"errors"
	"sync"
	"time"
)

var errKVUnavailable = errors.New("kv unavailable")

// memoryKV is an in-memory KV with failure injection and optional latency.
type memoryKV struct {
	mu       sync.Mutex
	values   map[string]string
	failGet  map[string]bool
	failSet  bool
	setDelay time.Duration
	getGate  chan struct{}
	setCalls []string
}

func newMemoryKV(seed map[string]string) *memoryKV {
	values := make(map[string]string, len(seed))
	for k, v := range seed {
		values[k] = v
	}
	return &memoryKV{values: values, failGet: make(map[string]bool)}
}

func (m *memoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	if m.getGate != nil {
		select {
		case <-m.getGate:
		case <-ctx.Done():
			return "", false, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet[key] {
		return "", false, errKVUnavailable
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryKV) Set(ctx context.Context, key, value string) error {
	if m.setDelay > 0 {
		time.Sleep(m.setDelay)
	}

	m.mu.Lock()
	m.setCalls = append(m.setCalls, key+"="+value)
	if m.failSet {
		m.mu.Unlock()
		return errKVUnavailable
	}
	m.values[key] = value
	m.mu.Unlock()
	return nil
}

func (m *memoryKV) value(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *memoryKV) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.setCalls...)
}
