package publish

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSink publishes readings over Redis pub/sub channels. Channel names
// carry the weather/<city> convention unchanged.
type RedisSink struct {
	client    *redis.Client
	connected bool
}

// NewRedisSink creates a Redis sink for the given server.
func NewRedisSink(addr, password string, db int) *RedisSink {
	return &RedisSink{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (s *RedisSink) Name() string { return "redis" }

// Connect verifies the server is reachable.
func (s *RedisSink) Connect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	s.connected = true
	return nil
}

func (s *RedisSink) IsConnected() bool { return s.connected }

func (s *RedisSink) Publish(topic string, payload []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.client.Publish(ctx, topic, payload).Err()
}

func (s *RedisSink) Close() error {
	s.connected = false
	return s.client.Close()
}
