package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/citywatch/weatherstation/internal/cache"
	"github.com/citywatch/weatherstation/internal/store"
	"github.com/citywatch/weatherstation/internal/weather"
)

// failingProvider fails for one city and succeeds for the rest.
type failingProvider struct {
	failCity string
}

func (p *failingProvider) Name() string { return "failing" }

func (p *failingProvider) Fetch(_ context.Context, city string) (weather.Reading, error) {
	if city == p.failCity {
		return weather.Reading{}, fmt.Errorf("%w: connection refused", weather.ErrTransport)
	}
	return weather.Reading{
		City:        city,
		Temperature: 20,
		Humidity:    50,
		Wind:        5,
		Condition:   weather.ConditionPartlyCloudy,
		Timestamp:   time.Now().UTC(),
	}, nil
}

// recordingSink counts display updates per city.
type recordingSink struct {
	rows    map[string]int
	redraws int
}

func newRecordingSink() *recordingSink {
	return &recordingSink{rows: make(map[string]int)}
}

func (s *recordingSink) UpdateRow(r weather.Reading) {
	s.rows[r.City]++
}

func (s *recordingSink) RedrawChart(_ string, _ []weather.TempPoint) {
	s.redraws++
}

func TestTickSkipsFailingCity(t *testing.T) {
	cities := []string{"London", "Atlantis", "Paris"}
	feed := store.NewMemoryStore(10)
	sink := newRecordingSink()

	s := New(Options{
		Cities:    cities,
		ChartCity: "London",
		Source:    weather.NewDataSource(&failingProvider{failCity: "Atlantis"}, cache.NewMemory(time.Minute)),
		Store:     feed,
		Display:   sink,
	})

	s.tick()

	if sink.rows["London"] != 1 || sink.rows["Paris"] != 1 {
		t.Fatalf("expected one row update for London and Paris, got %+v", sink.rows)
	}
	if sink.rows["Atlantis"] != 0 {
		t.Fatalf("failing city must not reach the display, got %d updates", sink.rows["Atlantis"])
	}

	if _, err := feed.GetLatest("London"); err != nil {
		t.Fatalf("London reading not stored: %v", err)
	}
	if _, err := feed.GetLatest("Atlantis"); err == nil {
		t.Fatal("failing city must not be stored")
	}
}

func TestTickFeedsChartForDesignatedCityOnly(t *testing.T) {
	feed := store.NewMemoryStore(10)
	sink := newRecordingSink()

	s := New(Options{
		Cities:    []string{"London", "Paris"},
		ChartCity: "Paris",
		Source:    weather.NewDataSource(&failingProvider{}, cache.NewMemory(time.Minute)),
		Store:     feed,
		Display:   sink,
	})

	for i := 0; i < 3; i++ {
		s.tick()
	}

	if sink.redraws != 3 {
		t.Fatalf("expected 3 chart redraws, got %d", sink.redraws)
	}
	if s.chart.Len() != 3 {
		t.Fatalf("expected 3 chart points, got %d", s.chart.Len())
	}

	// Jitter keeps points within ±0.2 of the fetched temperature.
	for _, p := range s.chart.Points() {
		if p.Temperature < 19.8 || p.Temperature > 20.2 {
			t.Fatalf("chart point %v outside jitter bounds", p.Temperature)
		}
	}
}

func TestUnattendedTickSimulates(t *testing.T) {
	feed := store.NewMemoryStore(10)

	s := New(Options{
		Cities:    []string{"Demo City"},
		Simulator: weather.NewSimulator(),
		Store:     feed,
	})

	s.tick()

	r, err := feed.GetLatest("Demo City")
	if err != nil {
		t.Fatalf("simulated reading not stored: %v", err)
	}
	switch r.Condition {
	case weather.ConditionClear, weather.ConditionRain, weather.ConditionPartlyCloudy:
	default:
		t.Fatalf("numeric classification produced %q", r.Condition)
	}
	if r.Timestamp.IsZero() {
		t.Fatal("simulated reading has no timestamp")
	}
}
