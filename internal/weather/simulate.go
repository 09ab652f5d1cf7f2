package weather

import (
	"math/rand"
	"time"
)

// Simulator generates plausible random readings for unattended operation,
// where no live provider is consulted. Conditions come from the numeric
// classifier since there is no provider text.
type Simulator struct {
	rng *rand.Rand
}

// NewSimulator creates a Simulator seeded from the current time.
func NewSimulator() *Simulator {
	return &Simulator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Reading produces one simulated observation for city, stamped now (UTC).
func (s *Simulator) Reading(city string) Reading {
	t := Round1(s.uniform(10.0, 35.0) + s.uniform(-1.5, 1.5))
	h := Round1(s.uniform(20.0, 90.0))
	w := Round1(s.uniform(0.0, 65.0))

	return Reading{
		City:        city,
		Temperature: t,
		Humidity:    h,
		Wind:        w,
		Condition:   ClassifyConditionNumeric(t, h),
		Timestamp:   time.Now().UTC(),
	}
}

func (s *Simulator) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}
