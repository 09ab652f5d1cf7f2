package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/citywatch/weatherstation/internal/display"
	"github.com/citywatch/weatherstation/internal/journal"
	"github.com/citywatch/weatherstation/internal/publish"
	"github.com/citywatch/weatherstation/internal/weather"
)

// Options configures a Scheduler. Source drives interactive operation;
// Simulator, when set, takes precedence and drives unattended operation.
// Display, Publisher and Journal are all optional.
type Options struct {
	Cities       []string
	ChartCity    string
	Interval     time.Duration
	FetchTimeout time.Duration
	ChartSize    int

	Source    *weather.DataSource
	Simulator *weather.Simulator
	Store     weather.Store
	Display   display.Sink
	Publisher *publish.Publisher
	Journal   *journal.Journal
}

// Scheduler drives the periodic per-city polling loop. Cities are processed
// sequentially within a tick; a slow fetch delays the cities after it but a
// failed one is only skipped.
type Scheduler struct {
	scheduler *gocron.Scheduler

	cities       []string
	chartCity    string
	interval     time.Duration
	fetchTimeout time.Duration

	source    *weather.DataSource
	simulator *weather.Simulator
	store     weather.Store
	display   display.Sink
	publisher *publish.Publisher
	journal   *journal.Journal
	chart     *Ring
}

// New creates a Scheduler from opts. The tick interval defaults to 2 s and
// the fetch timeout to 10 s.
func New(opts Options) *Scheduler {
	interval := opts.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	fetchTimeout := opts.FetchTimeout
	if fetchTimeout <= 0 {
		fetchTimeout = 10 * time.Second
	}

	return &Scheduler{
		scheduler:    gocron.NewScheduler(time.UTC),
		cities:       opts.Cities,
		chartCity:    opts.ChartCity,
		interval:     interval,
		fetchTimeout: fetchTimeout,
		source:       opts.Source,
		simulator:    opts.Simulator,
		store:        opts.Store,
		display:      opts.Display,
		publisher:    opts.Publisher,
		journal:      opts.Journal,
		chart:        NewRing(opts.ChartSize),
	}
}

// Start schedules the repeating tick and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.cities) == 0 {
		log.Println("scheduler: no cities configured; nothing to schedule")
		return nil
	}

	job, err := s.scheduler.Every(s.interval).Do(s.tick)
	if err != nil {
		return err
	}
	// Ticks never overlap; a long tick delays the next one instead.
	job.SingletonMode()

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future ticks.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// tick processes every configured city in order. A single city's failure is
// logged and skipped for this tick; it never aborts the tick for the others.
func (s *Scheduler) tick() {
	for _, city := range s.cities {
		r, err := s.reading(city)
		if err != nil {
			log.Printf("scheduler: fetch failed for %s: %v", city, err)
			continue
		}

		s.store.SaveReading(r)

		if s.display != nil {
			s.display.UpdateRow(r)
			if city == s.chartCity {
				s.chart.Push(weather.TempPoint{
					Timestamp:   time.Now().UTC(),
					Temperature: weather.Round1(r.Temperature + jitter()),
				})
				s.display.RedrawChart(city, s.chart.Points())
			}
		}

		if s.journal != nil {
			s.appendJournal(r)
		}

		if s.display == nil {
			// Unattended: always emit a human-readable line for monitoring.
			fmt.Printf("%s: %.1f°C, %.1f%%, %.1fkm/h %s\n",
				r.City, r.Temperature, r.Humidity, r.Wind, r.Condition)
		}

		if s.publisher != nil {
			s.publisher.Enqueue(r)
		}
	}
}

func (s *Scheduler) reading(city string) (weather.Reading, error) {
	if s.simulator != nil {
		return s.simulator.Reading(city), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.fetchTimeout)
	defer cancel()
	return s.source.Fetch(ctx, city)
}

func (s *Scheduler) appendJournal(r weather.Reading) {
	body, err := json.Marshal(publish.NewPayload(r))
	if err != nil {
		log.Printf("scheduler: marshal for journal failed for %s: %v", r.City, err)
		return
	}
	if err := s.journal.Append(body); err != nil {
		// A journal write failure never stops the loop.
		log.Printf("scheduler: %v", err)
	}
}

// jitter returns a small variation in [-0.2, 0.2] °C so consecutive chart
// points stay visibly distinct.
func jitter() float64 {
	return weather.Round1(rand.Float64()*0.4 - 0.2)
}
