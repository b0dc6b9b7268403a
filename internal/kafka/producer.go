package kafka

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"blog/internal/config"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// Producer publishes JSON events to a single topic
type Producer struct {
	producer *kafka.Producer
	topic    string
	logger   *slog.Logger
}

// NewProducer creates an idempotent producer for cfg.Topic
func NewProducer(cfg config.Kafka, logger *slog.Logger) (*Producer, error) {
	p, err := kafka.NewProducer(producerConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	producer := &Producer{
		producer: p,
		topic:    cfg.Topic,
		logger:   logger,
	}

	go producer.handleDeliveryReports()

	logger.Info("Kafka producer initialized",
		"brokers", cfg.BrokersList(),
		"topic", cfg.Topic)

	return producer, nil
}

// Publish enqueues event keyed by key. Delivery is reported asynchronously.
func (p *Producer) Publish(key string, event any) error {
	msg, err := newMessage(p.topic, key, event)
	if err != nil {
		return err
	}

	if err := p.producer.Produce(msg, nil); err != nil {
		return fmt.Errorf("failed to produce message: %w", err)
	}

	p.logger.Debug("Event published to Kafka",
		"topic", p.topic,
		"key", key,
		"size", len(msg.Value))

	return nil
}

func producerConfig(cfg config.Kafka) *kafka.ConfigMap {
	return &kafka.ConfigMap{
		"bootstrap.servers":                     strings.Join(cfg.BrokersList(), ","),
		"enable.idempotence":                    true,
		"acks":                                  cfg.Acks,
		"max.in.flight.requests.per.connection": 5,
		"retries":                               2147483647,
	}
}

func newMessage(topic, key string, event any) (*kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &topic,
			Partition: kafka.PartitionAny,
		},
		Value: data,
	}
	if key != "" {
		msg.Key = []byte(key)
	}
	return msg, nil
}

func (p *Producer) handleDeliveryReports() {
	for e := range p.producer.Events() {
		ev, ok := e.(*kafka.Message)
		if !ok {
			continue
		}
		if ev.TopicPartition.Error != nil {
			p.logger.Error("Delivery failed",
				"topic", *ev.TopicPartition.Topic,
				"key", string(ev.Key),
				"error", ev.TopicPartition.Error)
			continue
		}
		p.logger.Debug("Message delivered",
			"topic", *ev.TopicPartition.Topic,
			"partition", ev.TopicPartition.Partition,
			"offset", ev.TopicPartition.Offset)
	}
}

// Flush waits up to timeoutMs for outstanding messages and returns how many remain
func (p *Producer) Flush(timeoutMs int) int {
	remaining := p.producer.Flush(timeoutMs)
	if remaining > 0 {
		p.logger.Warn("Failed to flush all messages", "remaining", remaining)
	}
	return remaining
}

// Close flushes pending messages and releases the producer
func (p *Producer) Close() {
	p.logger.Info("Closing Kafka producer...")

	if remaining := p.Flush(10000); remaining > 0 {
		p.logger.Error("Some messages were not delivered", "count", remaining)
	}

	p.producer.Close()
	p.logger.Info("Kafka producer closed")
}
