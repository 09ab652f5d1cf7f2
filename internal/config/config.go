package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// Visual Crossing API key; required unless running headless.
	APIKey string

	// Cities to poll, in display order. The first one drives the chart.
	Cities    []string
	ChartCity string

	// Interval controls how often a full tick over all cities runs.
	Interval time.Duration

	// CacheTTL is how long a fetched reading is considered fresh.
	CacheTTL time.Duration

	// HTTPTimeout bounds a single provider call.
	HTTPTimeout time.Duration

	// ChartHistory is the rolling chart capacity in points.
	ChartHistory int

	// StoreMaxHistory is the per-city retention of the feed store.
	StoreMaxHistory int

	Port string

	// Unattended operation: simulated readings, no display sink.
	Headless bool
	LogFile  string

	// Publish sinks. Each is optional and independently enabled.
	MQTTEnabled  bool
	MQTTBroker   string
	MQTTPort     int
	MQTTClientID string

	RedisEnabled  bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaEnabled bool
	KafkaBrokers []string
}

// Load reads configuration from environment with sensible defaults. CLI flag
// overrides are applied by the caller before Validate.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.APIKey = os.Getenv("VISUALCROSSING_API_KEY")

	cfg.Cities = splitAndTrim(getenvDefault("CITIES", "London,Paris,New York"))
	if len(cfg.Cities) > 0 {
		cfg.ChartCity = cfg.Cities[0]
	}

	interval, err := time.ParseDuration(getenvDefault("TICK_INTERVAL", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid TICK_INTERVAL: %w", err)
	}
	cfg.Interval = interval

	// Visual Crossing refreshes roughly every 10 minutes.
	ttl, err := time.ParseDuration(getenvDefault("CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.ChartHistory = getenvInt("CHART_HISTORY", 60)
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 96)
	cfg.Port = getenvDefault("PORT", "8080")

	cfg.Headless = getenvBool("HEADLESS", false)
	cfg.LogFile = os.Getenv("LOG_FILE")

	cfg.MQTTEnabled = getenvBool("MQTT_ENABLED", false)
	cfg.MQTTBroker = getenvDefault("MQTT_BROKER", "localhost")
	cfg.MQTTPort = getenvInt("MQTT_PORT", 1883)
	cfg.MQTTClientID = getenvDefault("MQTT_CLIENT_ID", "virtual-weather-client")

	cfg.RedisEnabled = getenvBool("REDIS_ENABLED", false)
	cfg.RedisAddr = getenvDefault("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB = getenvInt("REDIS_DB", 0)

	cfg.KafkaEnabled = getenvBool("KAFKA_ENABLED", false)
	cfg.KafkaBrokers = splitAndTrim(getenvDefault("KAFKA_BROKERS", "localhost:9092"))

	return cfg, nil
}

// Validate checks the configuration after flag overrides. A missing API key
// is fatal in interactive mode; headless operation simulates data and needs
// none.
func (c *AppConfig) Validate() error {
	if len(c.Cities) == 0 {
		return fmt.Errorf("at least one city must be configured")
	}
	if !c.Headless && c.APIKey == "" {
		return fmt.Errorf("VISUALCROSSING_API_KEY is required (or run with -headless)")
	}
	return nil
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
