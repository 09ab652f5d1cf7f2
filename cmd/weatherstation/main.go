package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/citywatch/weatherstation/internal/api/http"
	"github.com/citywatch/weatherstation/internal/cache"
	"github.com/citywatch/weatherstation/internal/config"
	"github.com/citywatch/weatherstation/internal/display"
	"github.com/citywatch/weatherstation/internal/journal"
	"github.com/citywatch/weatherstation/internal/publish"
	"github.com/citywatch/weatherstation/internal/scheduler"
	"github.com/citywatch/weatherstation/internal/store"
	"github.com/citywatch/weatherstation/internal/weather"
	"github.com/citywatch/weatherstation/internal/weather/providers"
)

func main() {
	// Flags mirror the original station CLI and override the environment.
	headless := flag.Bool("headless", false, "run unattended: simulated readings, no display")
	citiesFlag := flag.String("cities", "", "comma-separated city names")
	intervalMs := flag.Int("interval", 0, "update interval in milliseconds")
	mqttFlag := flag.Bool("mqtt", false, "enable MQTT publishing")
	brokerFlag := flag.String("broker", "", "MQTT broker host")
	logFileFlag := flag.String("log-file", "", "append published JSON payloads to this file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	applyFlags(cfg, *headless, *citiesFlag, *intervalMs, *mqttFlag, *brokerFlag, *logFileFlag)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	// Bounded in-memory store backing the dashboard feed.
	feedStore := store.NewMemoryStore(cfg.StoreMaxHistory)

	var publisher *publish.Publisher
	if sinks := connectSinks(cfg); len(sinks) > 0 {
		publisher = publish.NewPublisher(sinks...)
		defer publisher.Close()
	}

	opts := scheduler.Options{
		Cities:       cfg.Cities,
		ChartCity:    cfg.ChartCity,
		Interval:     cfg.Interval,
		FetchTimeout: cfg.HTTPTimeout,
		ChartSize:    cfg.ChartHistory,
		Store:        feedStore,
		Publisher:    publisher,
	}

	if cfg.Headless {
		opts.Simulator = weather.NewSimulator()
		if cfg.LogFile != "" {
			opts.Journal = journal.New(cfg.LogFile)
		}
		log.Printf("INFO: unattended mode, simulating %d cities every %s", len(cfg.Cities), cfg.Interval)
	} else {
		httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
		provider := providers.NewVisualCrossingProvider(httpClient, cfg.APIKey)
		opts.Source = weather.NewDataSource(provider, cache.NewMemory(cfg.CacheTTL))
		opts.Display = display.NewTableWriter(os.Stdout)
		log.Printf("INFO: polling %d cities every %s, chart city %q", len(cfg.Cities), cfg.Interval, cfg.ChartCity)
	}

	sched := scheduler.New(opts)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weatherstation",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weatherstation",
		})
	})

	httpapi.RegisterRoutes(app, feedStore)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Println("INFO: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

func applyFlags(cfg *config.AppConfig, headless bool, cities string, intervalMs int, mqtt bool, broker, logFile string) {
	if headless {
		cfg.Headless = true
	}
	if cities != "" {
		cfg.Cities = nil
		for _, c := range strings.Split(cities, ",") {
			if c = strings.TrimSpace(c); c != "" {
				cfg.Cities = append(cfg.Cities, c)
			}
		}
		if len(cfg.Cities) > 0 {
			cfg.ChartCity = cfg.Cities[0]
		}
	}
	if intervalMs > 0 {
		cfg.Interval = time.Duration(intervalMs) * time.Millisecond
	}
	if mqtt {
		cfg.MQTTEnabled = true
	}
	if broker != "" {
		cfg.MQTTBroker = broker
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
}

// connectSinks builds and connects every enabled publish sink. A sink that
// fails to connect is dropped with a warning, matching the stated contract:
// publishing is best-effort and never blocks the loop.
func connectSinks(cfg *config.AppConfig) []publish.Sink {
	var candidates []publish.Sink

	if cfg.MQTTEnabled {
		candidates = append(candidates, publish.NewMQTTSink(cfg.MQTTBroker, cfg.MQTTPort, cfg.MQTTClientID))
	}
	if cfg.RedisEnabled {
		candidates = append(candidates, publish.NewRedisSink(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB))
	}
	if cfg.KafkaEnabled {
		candidates = append(candidates, publish.NewKafkaSink(cfg.KafkaBrokers))
	}

	var sinks []publish.Sink
	for _, s := range candidates {
		if err := s.Connect(); err != nil {
			log.Printf("WARN: %s sink could not be initialized: %v", s.Name(), err)
			continue
		}
		log.Printf("INFO: %s sink connected", s.Name())
		sinks = append(sinks, s)
	}
	return sinks
}
