package weather

import (
	"context"
	"time"
)

// Provider abstracts the remote weather source (Visual Crossing in
// production, a stub in tests).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, city string) (Reading, error)
}

// Store is the contract the in-memory history store (and any future
// persistent store) must satisfy.
type Store interface {
	SaveReading(r Reading)
	GetLatest(city string) (Reading, error)
	GetRange(city string, from, to time.Time) ([]Reading, error)
}
