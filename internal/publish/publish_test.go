package publish

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/citywatch/weatherstation/internal/weather"
)

// fakeSink records published messages.
type fakeSink struct {
	mu        sync.Mutex
	connected bool
	failWith  error
	topics    []string
	payloads  [][]byte
}

func (s *fakeSink) Name() string { return "fake" }

func (s *fakeSink) Connect() error { s.connected = true; return nil }

func (s *fakeSink) IsConnected() bool { return s.connected }

func (s *fakeSink) Close() error { return nil }

func (s *fakeSink) Publish(topic string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.topics = append(s.topics, topic)
	s.payloads = append(s.payloads, payload)
	return nil
}

func testReading() weather.Reading {
	return weather.Reading{
		City:        "New York",
		Temperature: 21.5,
		Humidity:    63.0,
		Wind:        12.9,
		Condition:   weather.ConditionPartlyCloudy,
		Timestamp:   time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func TestPublisherDeliversToConnectedSink(t *testing.T) {
	sink := &fakeSink{connected: true}
	p := NewPublisher(sink)

	p.Enqueue(testReading())
	p.Close()

	if len(sink.topics) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(sink.topics))
	}
	if sink.topics[0] != "weather/new_york" {
		t.Fatalf("topic = %q, want weather/new_york", sink.topics[0])
	}

	var got map[string]any
	if err := json.Unmarshal(sink.payloads[0], &got); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	for _, key := range []string{"timestamp", "city", "temperature", "humidity", "wind", "condition"} {
		if _, ok := got[key]; !ok {
			t.Errorf("payload missing key %q", key)
		}
	}
	if got["timestamp"] != "2026-08-30T12:00:00Z" {
		t.Errorf("timestamp = %v, want ISO-8601 UTC", got["timestamp"])
	}
	if got["city"] != "New York" {
		t.Errorf("city = %v, want the display name, not the topic form", got["city"])
	}
}

func TestPublisherSkipsDisconnectedSink(t *testing.T) {
	sink := &fakeSink{connected: false}
	p := NewPublisher(sink)

	p.Enqueue(testReading())
	p.Close()

	if len(sink.topics) != 0 {
		t.Fatalf("disconnected sink received %d publishes", len(sink.topics))
	}
}

func TestPublisherSurvivesSinkFailure(t *testing.T) {
	failing := &fakeSink{connected: true, failWith: errors.New("broker gone")}
	healthy := &fakeSink{connected: true}
	p := NewPublisher(failing, healthy)

	p.Enqueue(testReading())
	p.Enqueue(testReading())
	p.Close()

	if len(healthy.topics) != 2 {
		t.Fatalf("healthy sink expected 2 publishes, got %d", len(healthy.topics))
	}
}
