package publish

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTSink publishes readings to an MQTT broker. It is the primary transport:
// topic hierarchies like weather/<city> map directly onto MQTT topics and any
// subscriber can follow weather/#.
type MQTTSink struct {
	client  mqtt.Client
	timeout time.Duration
}

// NewMQTTSink creates an MQTT sink for broker:port with the given client id.
func NewMQTTSink(broker string, port int, clientID string) *MQTTSink {
	opts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%d", broker, port)).
		SetClientID(clientID).
		SetAutoReconnect(true)

	return &MQTTSink{
		client:  mqtt.NewClient(opts),
		timeout: 5 * time.Second,
	}
}

func (s *MQTTSink) Name() string { return "mqtt" }

// Connect establishes the broker connection, waiting up to the sink timeout.
func (s *MQTTSink) Connect() error {
	token := s.client.Connect()
	if !token.WaitTimeout(s.timeout) {
		return fmt.Errorf("mqtt: connect to broker timed out")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt: %w", err)
	}
	return nil
}

func (s *MQTTSink) IsConnected() bool {
	return s.client.IsConnected()
}

// Publish sends the payload at QoS 0 and waits for the client to hand it off.
func (s *MQTTSink) Publish(topic string, payload []byte) error {
	token := s.client.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(s.timeout) {
		return fmt.Errorf("mqtt: publish timed out")
	}
	return token.Error()
}

func (s *MQTTSink) Close() error {
	s.client.Disconnect(250) // ms grace for in-flight messages
	return nil
}
