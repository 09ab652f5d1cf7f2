package weather

import (
	"context"
	"errors"
	"log"
)

// Cache is the contract of the read-through reading cache. GetFresh honors
// the TTL; GetStale ignores it.
type Cache interface {
	GetFresh(city string) (Reading, bool)
	GetStale(city string) (Reading, bool)
	Set(city string, r Reading)
}

// DataSource is a read-through cached view over a Provider. A fetch within
// the cache TTL is served without a network call; an expired entry triggers a
// live fetch that overwrites it. When the provider rate-limits and a prior
// entry exists for the city, the stale entry is served as a degraded
// fallback; every other failure propagates unchanged.
type DataSource struct {
	provider Provider
	cache    Cache
}

// NewDataSource creates a DataSource over provider with the given cache.
func NewDataSource(provider Provider, c Cache) *DataSource {
	return &DataSource{
		provider: provider,
		cache:    c,
	}
}

// Fetch returns the current reading for city, from cache when fresh.
func (s *DataSource) Fetch(ctx context.Context, city string) (Reading, error) {
	if r, ok := s.cache.GetFresh(city); ok {
		return r, nil
	}

	r, err := s.provider.Fetch(ctx, city)
	if err != nil {
		if errors.Is(err, ErrRateLimited) {
			if stale, ok := s.cache.GetStale(city); ok {
				// Degraded: last good reading, regardless of age.
				log.Printf("INFO: rate limited for %s, serving stale cached reading from %s",
					city, stale.Timestamp.Format("15:04:05"))
				return stale, nil
			}
		}
		return Reading{}, err
	}

	s.cache.Set(city, r)
	return r, nil
}
