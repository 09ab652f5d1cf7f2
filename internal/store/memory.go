package store

import (
	"errors"
	"sync"
	"time"

	"github.com/citywatch/weatherstation/internal/weather"
)

var (
	// ErrNotFound is returned when no data is available for a given city.
	ErrNotFound = errors.New("no weather data for city")
)

// readingHistory holds a time-ordered list of readings for one city.
type readingHistory struct {
	readings []weather.Reading
}

// MemoryStore is a concurrency-safe in-memory store of recent readings per
// city. It backs the dashboard feed API; retention is bounded by count so the
// process footprint stays flat no matter how long the loop runs.
type MemoryStore struct {
	mu sync.RWMutex

	// key: city name as configured, value: history
	data map[string]*readingHistory

	maxHistory int // max number of readings per city (<= 0 = unlimited)
}

// NewMemoryStore creates a MemoryStore keeping at most maxHistory readings
// per city.
func NewMemoryStore(maxHistory int) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*readingHistory),
		maxHistory: maxHistory,
	}
}

// SaveReading appends a reading for its city and enforces retention.
func (s *MemoryStore) SaveReading(r weather.Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[r.City]
	if !ok {
		history = &readingHistory{}
		s.data[r.City] = history
	}

	history.readings = append(history.readings, r)

	if s.maxHistory > 0 && len(history.readings) > s.maxHistory {
		over := len(history.readings) - s.maxHistory
		history.readings = history.readings[over:]
	}
}

// GetLatest returns the most recent reading for a city.
func (s *MemoryStore) GetLatest(city string) (weather.Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[city]
	if !ok || len(history.readings) == 0 {
		return weather.Reading{}, ErrNotFound
	}
	return history.readings[len(history.readings)-1], nil
}

// GetRange returns all readings for a city between from and to (inclusive).
func (s *MemoryStore) GetRange(city string, from, to time.Time) ([]weather.Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[city]
	if !ok || len(history.readings) == 0 {
		return nil, ErrNotFound
	}

	var result []weather.Reading
	for _, r := range history.readings {
		if (r.Timestamp.Equal(from) || r.Timestamp.After(from)) &&
			(r.Timestamp.Equal(to) || r.Timestamp.Before(to)) {
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}
