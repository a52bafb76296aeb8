package preferences

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultWriteTimeout = 5 * time.Second

type writeOp struct {
	key   string
	value string

	// flushed marks a barrier instead of a write; it is closed once every
	// earlier write has been attempted.
	flushed chan struct{}
}

// writeQueue applies writes to the key-value store in submission order on
// a single goroutine. Submitting never blocks on the store.
type writeQueue struct {
	kv      KV
	log     *zap.Logger
	timeout time.Duration

	mu      sync.Mutex
	pending []writeOp
	closed  bool

	wake      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func newWriteQueue(kv KV, log *zap.Logger) *writeQueue {
	q := &writeQueue{
		kv:      kv,
		log:     log,
		timeout: defaultWriteTimeout,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *writeQueue) enqueue(op writeOp) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.pending = append(q.pending, op)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return true
}

// flush blocks until every write submitted before the call was attempted.
func (q *writeQueue) flush(ctx context.Context) error {
	barrier := make(chan struct{})
	if !q.enqueue(writeOp{flushed: barrier}) {
		// Closed queues have already drained.
		return nil
	}

	select {
	case <-barrier:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close drains pending writes and stops the writer goroutine.
func (q *writeQueue) close() {
	q.closeOnce.Do(func() {
		q.mu.Lock()
		q.closed = true
		q.mu.Unlock()

		select {
		case q.wake <- struct{}{}:
		default:
		}
	})
	<-q.done
}

func (q *writeQueue) run() {
	defer close(q.done)

	for range q.wake {
		for {
			q.mu.Lock()
			batch := q.pending
			q.pending = nil
			closed := q.closed
			q.mu.Unlock()

			if len(batch) == 0 {
				if closed {
					return
				}
				break
			}

			for _, op := range batch {
				q.apply(op)
			}
		}
	}
}

func (q *writeQueue) apply(op writeOp) {
	if op.flushed != nil {
		close(op.flushed)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	if err := q.kv.Set(ctx, op.key, op.value); err != nil {
		q.log.Error("failed to persist preference",
			zap.Error(&PersistenceError{Op: "write", Key: op.key, Err: err}),
		)
	}
}
