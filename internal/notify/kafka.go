package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/Dannesh12/urban-slot-finder/pkg/retry"
)

// Producer is the part of kgo.Client used to publish
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// KafkaConfig holds the notification producer settings
type KafkaConfig struct {
	Brokers  []string
	ClientID string
	Topic    string
	Timeout  time.Duration
	// Retry controls republishing after a failed produce; nil means no retries
	Retry *retry.Config
}

// KafkaNotifier publishes notifications as JSON records keyed by user id
type KafkaNotifier struct {
	producer Producer
	topic    string
	timeout  time.Duration
	retry    *retry.Config
}

// NewKafkaNotifier connects a franz-go client
func NewKafkaNotifier(ctx context.Context, cfg *KafkaConfig) (*KafkaNotifier, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ClientID(cfg.ClientID),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.ProducerLinger(0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}

	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to reach kafka brokers: %w", err)
	}

	k := NewKafkaNotifierWithProducer(client, cfg.Topic, cfg.Timeout)
	if cfg.Retry != nil {
		k.retry = cfg.Retry
	}
	return k, nil
}

// NewKafkaNotifierWithProducer wraps an existing producer
func NewKafkaNotifierWithProducer(p Producer, topic string, timeout time.Duration) *KafkaNotifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &KafkaNotifier{producer: p, topic: topic, timeout: timeout, retry: retry.Fixed(0, 0)}
}

func (k *KafkaNotifier) Notify(ctx context.Context, n Notification) error {
	value, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, k.timeout)
	defer cancel()

	record := &kgo.Record{
		Topic: k.topic,
		Key:   []byte(n.UserID),
		Value: value,
	}
	err = retry.Do(ctx, k.retry, func(ctx context.Context) error {
		return k.producer.ProduceSync(ctx, record).FirstErr()
	})
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// Close flushes and closes the producer
func (k *KafkaNotifier) Close() {
	k.producer.Close()
}
