package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/harborbank/servicing/internal/domain/event"
	pkgkafka "github.com/harborbank/servicing/pkg/kafka"
)

// Topics names the Kafka topics the servicing core publishes to. Payment
// events drive the ledger; calculation events feed analytics and are safe
// to replay.
type Topics struct {
	Payments     string
	Calculations string
}

// DefaultTopics returns the standard topic layout.
func DefaultTopics() Topics {
	return Topics{
		Payments:     "servicing.payments",
		Calculations: "servicing.calculations",
	}
}

// KafkaEventPublisher implements port.EventPublisher by writing events to
// Kafka, routed by event type.
type KafkaEventPublisher struct {
	producer *pkgkafka.Producer
	topics   Topics
	logger   *slog.Logger
}

// NewKafkaEventPublisher creates a publisher targeting the given producer.
func NewKafkaEventPublisher(producer *pkgkafka.Producer, topics Topics, logger *slog.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		producer: producer,
		topics:   topics,
		logger:   logger,
	}
}

// Publish serialises and sends domain events, grouped per topic so each
// topic receives one batched write.
func (p *KafkaEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	batches := make(map[string][]pkgkafka.Message)
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}
		topic := p.topicFor(evt.EventType())

		p.logger.DebugContext(ctx, "publishing domain event",
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
			"tenant_id", evt.TenantID(),
			"topic", topic,
			"payload_size", len(payload),
		)

		batches[topic] = append(batches[topic], pkgkafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type": evt.EventType(),
				"event_id":   evt.EventID(),
				"tenant_id":  evt.TenantID(),
			},
		})
	}

	for topic, messages := range batches {
		if err := p.producer.Publish(ctx, topic, messages...); err != nil {
			return fmt.Errorf("failed to publish events to topic %s: %w", topic, err)
		}
	}
	return nil
}

// topicFor routes money-moving events to the payments topic and everything
// else to calculations.
func (p *KafkaEventPublisher) topicFor(eventType string) string {
	if strings.HasPrefix(eventType, "servicing.payment") || strings.HasPrefix(eventType, "servicing.loan") {
		return p.topics.Payments
	}
	return p.topics.Calculations
}
