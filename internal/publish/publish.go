package publish

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/citywatch/weatherstation/internal/weather"
)

// Sink is the capability set expected from a pub/sub transport.
type Sink interface {
	Name() string
	Connect() error
	IsConnected() bool
	Publish(topic string, payload []byte) error
	Close() error
}

// Payload is the wire shape of one published reading.
type Payload struct {
	Timestamp   time.Time         `json:"timestamp"`
	City        string            `json:"city"`
	Temperature float64           `json:"temperature"`
	Humidity    float64           `json:"humidity"`
	Wind        float64           `json:"wind"`
	Condition   weather.Condition `json:"condition"`
}

// NewPayload converts a reading into its published form. The timestamp is
// normalized to UTC so it serializes as ISO-8601 with a Z suffix.
func NewPayload(r weather.Reading) Payload {
	return Payload{
		Timestamp:   r.Timestamp.UTC(),
		City:        r.City,
		Temperature: r.Temperature,
		Humidity:    r.Humidity,
		Wind:        r.Wind,
		Condition:   r.Condition,
	}
}

type queued struct {
	topic   string
	payload []byte
}

// Publisher fans readings out to its sinks from a single background worker.
// Enqueue never blocks the caller: the polling tick hands the reading off and
// moves on; a slow or failing sink is invisible to it beyond a log line.
type Publisher struct {
	sinks []Sink
	queue chan queued
	wg    sync.WaitGroup
	once  sync.Once
}

// NewPublisher creates a Publisher over the given sinks and starts its
// worker. Sinks should already be connected (or connecting); a disconnected
// sink is skipped per message, not treated as an error.
func NewPublisher(sinks ...Sink) *Publisher {
	p := &Publisher{
		sinks: sinks,
		queue: make(chan queued, 256),
	}
	p.wg.Add(1)
	go p.worker()
	return p
}

// Enqueue queues one reading for publication to weather/<sanitized-city>.
// When the queue is full the reading is dropped and logged.
func (p *Publisher) Enqueue(r weather.Reading) {
	body, err := json.Marshal(NewPayload(r))
	if err != nil {
		log.Printf("publish: marshal failed for %s: %v", r.City, err)
		return
	}

	select {
	case p.queue <- queued{topic: Topic(r.City), payload: body}:
	default:
		log.Printf("publish: queue full, dropping reading for %s", r.City)
	}
}

func (p *Publisher) worker() {
	defer p.wg.Done()
	for q := range p.queue {
		for _, s := range p.sinks {
			if !s.IsConnected() {
				continue
			}
			if err := s.Publish(q.topic, q.payload); err != nil {
				log.Printf("publish: %s publish to %s failed: %v", s.Name(), q.topic, err)
			}
		}
	}
}

// Close drains the queue, stops the worker and closes all sinks.
func (p *Publisher) Close() {
	p.once.Do(func() { close(p.queue) })
	p.wg.Wait()

	for _, s := range p.sinks {
		if err := s.Close(); err != nil {
			log.Printf("publish: closing %s sink: %v", s.Name(), err)
		}
	}
}
