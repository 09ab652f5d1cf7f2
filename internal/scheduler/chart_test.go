package scheduler

import (
	"testing"
	"time"

	"github.com/citywatch/weatherstation/internal/weather"
)

func TestRingNeverExceedsCapacity(t *testing.T) {
	r := NewRing(60)
	base := time.Now().UTC()

	for i := 0; i < 500; i++ {
		r.Push(weather.TempPoint{Timestamp: base.Add(time.Duration(i) * time.Second), Temperature: float64(i)})
		if r.Len() > 60 {
			t.Fatalf("ring grew to %d points after %d pushes", r.Len(), i+1)
		}
	}

	points := r.Points()
	if len(points) != 60 {
		t.Fatalf("expected 60 retained points, got %d", len(points))
	}
	// Oldest points are evicted first.
	if points[0].Temperature != 440 || points[59].Temperature != 499 {
		t.Fatalf("expected points 440..499, got %v..%v", points[0].Temperature, points[59].Temperature)
	}
}

func TestRingDefaultCapacity(t *testing.T) {
	r := NewRing(0)
	for i := 0; i < 100; i++ {
		r.Push(weather.TempPoint{Temperature: float64(i)})
	}
	if r.Len() != DefaultChartHistory {
		t.Fatalf("expected default capacity %d, got %d", DefaultChartHistory, r.Len())
	}
}

func TestRingPointsIsACopy(t *testing.T) {
	r := NewRing(5)
	r.Push(weather.TempPoint{Temperature: 1})

	points := r.Points()
	points[0].Temperature = 99

	if r.Points()[0].Temperature != 1 {
		t.Fatal("Points must return a copy, not the backing slice")
	}
}
