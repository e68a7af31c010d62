package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
)

var errNilLoader = errors.New("cache: loader is required")

type entry[V any] struct {
	value V
	// expiresAt is zero for entries that never expire.
	expiresAt time.Time
}

func (e entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// Store is an in-process TTL cache keyed by string. A ttl <= 0 keeps entries
// until they are deleted. Empty keys are never cached.
type Store[V any] struct {
	ttl   time.Duration
	clock clockwork.Clock

	mu      sync.RWMutex
	entries map[string]entry[V]
	loads   singleflight.Group
}

func NewStore[V any](ttl time.Duration, clock clockwork.Clock) *Store[V] {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store[V]{ttl: ttl, clock: clock, entries: make(map[string]entry[V])}
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || e.expired(s.clock.Now()) {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" {
		return
	}
	e := entry[V]{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.clock.Now().Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpiredLocked()
	s.entries[key] = e
}

func (s *Store[V]) Delete(_ context.Context, keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.entries, key)
	}
}

// GetOrLoad returns the cached value for key or calls load, sharing one call
// among concurrent misses. Load errors are returned and not cached.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, load func(context.Context) (V, error)) (V, error) {
	if load == nil {
		var zero V
		return zero, errNilLoader
	}
	if key == "" {
		return load(ctx)
	}
	if v, ok := s.Get(ctx, key); ok {
		return v, nil
	}

	res, err, _ := s.loads.Do(key, func() (any, error) {
		if v, ok := s.Get(ctx, key); ok {
			return v, nil
		}
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(ctx, key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

func (s *Store[V]) evictExpiredLocked() {
	if s.ttl <= 0 {
		return
	}
	now := s.clock.Now()
	for key, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, key)
		}
	}
}
