package scheduler

import "github.com/citywatch/weatherstation/internal/weather"

// DefaultChartHistory is the default rolling chart capacity: 60 points, two
// minutes of data at the default 2 s tick.
const DefaultChartHistory = 60

// Ring is a bounded rolling history of temperature points for the chart
// city. Pushing beyond capacity evicts the oldest point. It is owned
// exclusively by the polling loop and needs no locking.
type Ring struct {
	points   []weather.TempPoint
	capacity int
}

// NewRing creates a Ring holding at most capacity points.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultChartHistory
	}
	return &Ring{capacity: capacity}
}

// Push appends a point, evicting the oldest when full.
func (r *Ring) Push(p weather.TempPoint) {
	r.points = append(r.points, p)
	if len(r.points) > r.capacity {
		r.points = r.points[1:]
	}
}

// Points returns a copy of the current series, oldest first.
func (r *Ring) Points() []weather.TempPoint {
	out := make([]weather.TempPoint, len(r.points))
	copy(out, r.points)
	return out
}

// Len reports how many points are held.
func (r *Ring) Len() int {
	return len(r.points)
}
