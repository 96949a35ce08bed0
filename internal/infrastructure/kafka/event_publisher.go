package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/bibbank/bib/services/channeling-service/internal/domain/event"
	pkgkafka "github.com/bibbank/bib/services/channeling-service/pkg/kafka"
)

// MessagePublisher is satisfied by *pkgkafka.Producer.
type MessagePublisher interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// EventPublisher implements port.EventPublisher by writing events to Kafka.
// Events are keyed by aggregate ID so a loan's events stay ordered.
type EventPublisher struct {
	producer MessagePublisher
	topic    string
	logger   *slog.Logger
}

// NewEventPublisher creates a publisher targeting topic.
func NewEventPublisher(producer MessagePublisher, topic string, logger *slog.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, topic: topic, logger: logger}
}

// Publish serialises and sends domain events in one batch.
func (p *EventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]pkgkafka.Message, 0, len(events))
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.DebugContext(ctx, "publishing domain event",
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
			"topic", p.topic,
			"payload_size", len(payload),
		)

		headers := map[string]string{
			"event_type":     evt.EventType(),
			"event_id":       evt.EventID(),
			"aggregate_type": evt.AggregateType(),
			"content_type":   "application/json",
		}
		if tenant := evt.TenantID(); tenant != "" {
			headers["tenant_id"] = tenant
		}
		otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(headers))

		messages = append(messages, pkgkafka.Message{
			Key:     []byte(evt.AggregateID()),
			Value:   payload,
			Headers: headers,
		})
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("publish events to topic %s: %w", p.topic, err)
	}
	return nil
}
