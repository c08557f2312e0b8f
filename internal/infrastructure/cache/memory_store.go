package cache

import (
	"context"
	"sync"
	"time"

	"github.com/warehouse/backend/internal/domain/shared"
)

const defaultSweepInterval = 5 * time.Minute

// MemoryStore keeps idempotency keys in process memory.
// Keys are not shared between instances, so it only fits single-node deployments.
type MemoryStore struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// MemoryStoreOption configures a MemoryStore
type MemoryStoreOption func(*memoryStoreOptions)

type memoryStoreOptions struct {
	sweepInterval time.Duration
	now           func() time.Time
}

// WithSweepInterval sets how often expired keys are purged
func WithSweepInterval(d time.Duration) MemoryStoreOption {
	return func(o *memoryStoreOptions) {
		if d > 0 {
			o.sweepInterval = d
		}
	}
}

// WithClock replaces time.Now, used by tests to move time forward
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(o *memoryStoreOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// NewMemoryStore creates a store and starts its sweeper goroutine
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	o := memoryStoreOptions{sweepInterval: defaultSweepInterval, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	s := &MemoryStore{
		expires: make(map[string]time.Time),
		now:     o.now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go s.sweepLoop(o.sweepInterval)
	return s
}

// MarkProcessed records key until ttl elapses.
// It returns false when an unexpired record already exists.
func (s *MemoryStore) MarkProcessed(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if exp, ok := s.expires[key]; ok && now.Before(exp) {
		return false, nil
	}
	s.expires[key] = now.Add(ttl)
	return true, nil
}

func (s *MemoryStore) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.expires[key]
	return ok && s.now().Before(exp), nil
}

func (s *MemoryStore) Forget(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.expires, key)
	s.mu.Unlock()
	return nil
}

// Close stops the sweeper. Safe to call more than once.
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		<-s.done
	})
	return nil
}

// Len returns the number of keys held, expired or not
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.expires)
}

func (s *MemoryStore) sweepLoop(interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, exp := range s.expires {
		if !now.Before(exp) {
			delete(s.expires, key)
		}
	}
}

var _ shared.IdempotencyStore = (*MemoryStore)(nil)
