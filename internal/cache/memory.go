package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
	tags      []string
}

type MemoryCache struct {
	mu       sync.RWMutex
	clock    clockwork.Clock
	entries  map[string]memoryEntry
	tagIndex map[string]map[string]struct{}
}

func NewMemoryCache(clock clockwork.Clock) *MemoryCache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &MemoryCache{
		clock:    clock,
		entries:  make(map[string]memoryEntry),
		tagIndex: make(map[string]map[string]struct{}),
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[key]
	if !ok || !m.clock.Now().Before(entry.expiresAt) {
		return nil, ErrCacheMiss
	}

	value := make([]byte, len(entry.value))
	copy(value, entry.value)
	return value, nil
}

// Set stores value for ttl. A non-positive ttl disables caching for the key.
func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration, tags ...string) error {
	if ttl <= 0 {
		return nil
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.deleteLocked(key)

	m.entries[key] = memoryEntry{
		value:     stored,
		expiresAt: m.clock.Now().Add(ttl),
		tags:      append([]string(nil), tags...),
	}

	for _, tag := range tags {
		keys, ok := m.tagIndex[tag]
		if !ok {
			keys = make(map[string]struct{})
			m.tagIndex[tag] = keys
		}
		keys[key] = struct{}{}
	}

	return nil
}

func (m *MemoryCache) Invalidate(_ context.Context, tags ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, tag := range tags {
		for key := range m.tagIndex[tag] {
			m.deleteLocked(key)
		}
		delete(m.tagIndex, tag)
	}

	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (m *MemoryCache) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	removed := 0
	for key, entry := range m.entries {
		if !now.Before(entry.expiresAt) {
			m.deleteLocked(key)
			removed++
		}
	}

	return removed
}

func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

func (m *MemoryCache) deleteLocked(key string) {
	entry, ok := m.entries[key]
	if !ok {
		return
	}

	for _, tag := range entry.tags {
		if keys, ok := m.tagIndex[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(m.tagIndex, tag)
			}
		}
	}

	delete(m.entries, key)
}
