package cache

import (
	"sync"
	"time"

	"github.com/citywatch/weatherstation/internal/weather"
)

type entry struct {
	reading   weather.Reading
	fetchedAt time.Time // wall-clock time of the fetch, not the provider's timestamp
}

// Memory is a process-lifetime read-through cache of readings keyed by city
// name (exact string, case-sensitive). Entries are overwritten on every
// successful fetch and never deleted, so key growth is bounded only by the
// number of distinct cities ever queried.
type Memory struct {
	mu   sync.RWMutex
	data map[string]entry
	ttl  time.Duration
}

// NewMemory creates a cache whose entries are considered fresh for ttl.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		data: make(map[string]entry),
		ttl:  ttl,
	}
}

// GetFresh returns the cached reading for city if one exists and is younger
// than the TTL.
func (m *Memory) GetFresh(city string) (weather.Reading, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.data[city]
	if !ok {
		return weather.Reading{}, false
	}
	if time.Since(e.fetchedAt) >= m.ttl {
		return weather.Reading{}, false
	}
	return e.reading, true
}

// GetStale returns the cached reading for city regardless of its age. Used
// as a fallback when the provider is rate limiting.
func (m *Memory) GetStale(city string) (weather.Reading, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.data[city]
	if !ok {
		return weather.Reading{}, false
	}
	return e.reading, true
}

// Set stores a reading for city, overwriting any prior entry.
func (m *Memory) Set(city string, r weather.Reading) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[city] = entry{reading: r, fetchedAt: time.Now()}
}
