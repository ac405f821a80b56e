package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pitchguess/lineup-trivia/internal/platform/resilience"
)

type entry struct {
	value    any
	storedAt time.Time
	ttl      time.Duration
}

func (e entry) expired(now time.Time) bool {
	return e.ttl > 0 && now.Sub(e.storedAt) >= e.ttl
}

// Store is a size-bounded key/value store with a per-entry TTL. An entry is
// valid only while now-storedAt < ttl; once stale it behaves as absent and is
// purged on the next touch. Writes are whole-entry replacements and
// best-effort: when the store is full, expired entries are evicted and the
// insert retried exactly once before the write is dropped.
type Store struct {
	mu         sync.RWMutex
	entries    map[string]entry
	maxEntries int
	available  bool
	flight     resilience.SingleFlight
	now        func() time.Time
}

// NewStore builds a Store holding at most maxEntries entries. maxEntries <= 0
// means unbounded.
func NewStore(maxEntries int) *Store {
	return &Store{
		entries:    make(map[string]entry),
		maxEntries: maxEntries,
		available:  true,
		now:        time.Now,
	}
}

// NewDisabledStore builds a Store that accepts nothing and returns nothing.
// Callers that probe IsAvailable can skip caching entirely.
func NewDisabledStore() *Store {
	return &Store{now: time.Now}
}

func (s *Store) IsAvailable() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.available
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if s == nil || key == "" {
		return nil, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	available := s.available
	s.mu.RUnlock()
	if !available || !ok {
		return nil, false
	}
	if e.expired(s.now()) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

func (s *Store) Set(_ context.Context, key string, value any, ttl time.Duration) {
	if s == nil || key == "" {
		return
	}

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.available {
		return
	}

	if _, exists := s.entries[key]; !exists && s.maxEntries > 0 && len(s.entries) >= s.maxEntries {
		s.evictExpiredLocked(now)
		if len(s.entries) >= s.maxEntries {
			// Quota still exhausted after the one retry; drop the write.
			return
		}
	}

	s.entries[key] = entry{
		value:    value,
		storedAt: now,
		ttl:      ttl,
	}
}

func (s *Store) Delete(_ context.Context, key string) {
	if s == nil || key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// ClearExpired removes every stale entry and reports how many were purged.
func (s *Store) ClearExpired(_ context.Context) int {
	if s == nil {
		return 0
	}

	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictExpiredLocked(now)
}

func (s *Store) Clear(_ context.Context) {
	if s == nil {
		return
	}

	s.mu.Lock()
	if s.available {
		s.entries = make(map[string]entry)
	}
	s.mu.Unlock()
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrLoad returns the cached value for key or runs loader once, sharing the
// result with every concurrent caller of the same key, and writes the loaded
// value through with the given ttl. The in-flight marker is cleared whether
// the loader succeeds or fails.
func (s *Store) GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if s == nil || key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded, ttl)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (s *Store) evictExpiredLocked(now time.Time) int {
	purged := 0
	for key, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, key)
			purged++
		}
	}
	return purged
}
