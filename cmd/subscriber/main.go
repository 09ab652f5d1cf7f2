// Command subscriber is a small verification tool: it subscribes to the
// station's MQTT topics and prints whatever arrives, exiting after a message
// count or a timeout.
//
// Usage:
//
//	subscriber -broker test.mosquitto.org -topic "weather/#" -count 10 -timeout 30s
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

func main() {
	broker := flag.String("broker", "localhost", "MQTT broker host")
	port := flag.Int("port", 1883, "MQTT broker port")
	topic := flag.String("topic", "weather/#", "topic filter to subscribe to")
	count := flag.Int("count", 10, "number of messages to collect before exiting")
	timeout := flag.Duration("timeout", 30*time.Second, "max time to wait before exiting")
	flag.Parse()

	received := make(chan struct{}, *count)
	var n int

	opts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%d", *broker, *port)).
		SetClientID("weatherstation-subscriber")

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		log.Fatalf("connect to %s:%d timed out", *broker, *port)
	}
	if err := token.Error(); err != nil {
		log.Fatalf("connect failed: %v", err)
	}
	log.Printf("connected to %s:%d, subscribing to %s", *broker, *port, *topic)

	sub := client.Subscribe(*topic, 0, func(_ mqtt.Client, msg mqtt.Message) {
		n++
		fmt.Printf("[%d] %s -> %s\n", n, msg.Topic(), msg.Payload())
		select {
		case received <- struct{}{}:
		default:
		}
	})
	if !sub.WaitTimeout(10 * time.Second) || sub.Error() != nil {
		log.Fatalf("subscribe failed: %v", sub.Error())
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	deadline := time.After(*timeout)
	got := 0
	for got < *count {
		select {
		case <-received:
			got++
		case <-deadline:
			log.Printf("timeout reached (%s), exiting with %d messages", *timeout, got)
			got = *count
		case <-sig:
			log.Printf("interrupted, exiting with %d messages", got)
			got = *count
		}
	}

	client.Disconnect(250)
	log.Println("subscriber exiting")
}
