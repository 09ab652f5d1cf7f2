package publish

import (
	"fmt"
	"strings"

	"github.com/IBM/sarama"
)

// Kafka topic names cannot contain '/', so weather/<city> maps to
// weather.<city> for this sink only.
var kafkaTopicReplacer = strings.NewReplacer("/", ".")

// KafkaSink publishes readings to a Kafka cluster, one topic per city.
type KafkaSink struct {
	brokers  []string
	producer sarama.SyncProducer
}

// NewKafkaSink creates a Kafka sink for the given broker addresses.
func NewKafkaSink(brokers []string) *KafkaSink {
	return &KafkaSink{brokers: brokers}
}

func (s *KafkaSink) Name() string { return "kafka" }

// Connect builds the synchronous producer. Waiting for full acks keeps
// delivery failures visible to the publish worker's log line.
func (s *KafkaSink) Connect() error {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	producer, err := sarama.NewSyncProducer(s.brokers, config)
	if err != nil {
		return fmt.Errorf("kafka: %w", err)
	}
	s.producer = producer
	return nil
}

func (s *KafkaSink) IsConnected() bool { return s.producer != nil }

func (s *KafkaSink) Publish(topic string, payload []byte) error {
	_, _, err := s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: kafkaTopicReplacer.Replace(topic),
		Value: sarama.ByteEncoder(payload),
	})
	return err
}

func (s *KafkaSink) Close() error {
	if s.producer == nil {
		return nil
	}
	return s.producer.Close()
}
