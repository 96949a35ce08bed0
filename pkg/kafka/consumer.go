package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

const (
	defaultRetryInitial = 500 * time.Millisecond
	defaultRetryMax     = 30 * time.Second
)

// Handler processes a consumed message. A returned error is retried on the
// same message until it succeeds or the consumer stops.
type Handler func(ctx context.Context, msg Message) error

// reader is the subset of *kafkago.Reader the consumer drives.
type reader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Config() kafkago.ReaderConfig
	Close() error
}

// Consumer reads one topic as part of a consumer group. Messages of a
// partition are handled strictly in order and committed only after their
// handler succeeds.
type Consumer struct {
	reader       reader
	handler      Handler
	logger       *slog.Logger
	retryInitial time.Duration
	retryMax     time.Duration
}

// NewConsumer creates a group consumer for topic.
func NewConsumer(cfg Config, topic string, handler Handler, logger *slog.Logger) (*Consumer, error) {
	if cfg.ConsumerGroup == "" {
		return nil, fmt.Errorf("kafka: consumer group is required")
	}
	dialer, err := cfg.dialer()
	if err != nil {
		return nil, err
	}

	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    topic,
		GroupID:  cfg.ConsumerGroup,
		MinBytes: 1,
		MaxBytes: 10 * 1024 * 1024,
		Dialer:   dialer,
	})

	return &Consumer{
		reader:       r,
		handler:      handler,
		logger:       logger,
		retryInitial: defaultRetryInitial,
		retryMax:     defaultRetryMax,
	}, nil
}

// Start consumes until ctx is canceled.
func (c *Consumer) Start(ctx context.Context) error {
	cfg := c.reader.Config()
	c.logger.Info("consumer starting", "topic", cfg.Topic, "group", cfg.GroupID)

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				c.logger.Info("consumer stopping", "topic", cfg.Topic)
				return nil
			}
			return fmt.Errorf("fetching message: %w", err)
		}

		if err := c.handleWithRetry(ctx, m); err != nil {
			// Stopped mid-retry: the message stays uncommitted and is
			// redelivered to whoever owns the partition next.
			c.logger.Info("consumer stopping", "topic", cfg.Topic, "uncommitted_offset", m.Offset)
			return nil
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			c.logger.ErrorContext(ctx, "commit error",
				"topic", m.Topic,
				"partition", m.Partition,
				"offset", m.Offset,
				"error", err,
			)
		}
	}
}

// handleWithRetry runs the handler until it succeeds, backing off
// exponentially between attempts. It only fails when ctx ends.
func (c *Consumer) handleWithRetry(ctx context.Context, m kafkago.Message) error {
	delay := c.retryInitial
	for attempt := 1; ; attempt++ {
		err := c.handler(ctx, toMessage(m))
		if err == nil {
			return nil
		}

		c.logger.ErrorContext(ctx, "handler error, retrying",
			"topic", m.Topic,
			"partition", m.Partition,
			"offset", m.Offset,
			"attempt", attempt,
			"retry_in", delay.String(),
			"error", err,
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay = min(delay*2, c.retryMax)
	}
}

// Close closes the reader.
func (c *Consumer) Close() error {
	if err := c.reader.Close(); err != nil {
		return fmt.Errorf("closing kafka reader: %w", err)
	}
	return nil
}

func toMessage(m kafkago.Message) Message {
	msg := Message{
		Key:     m.Key,
		Value:   m.Value,
		Headers: make(map[string]string, len(m.Headers)),
	}
	for _, h := range m.Headers {
		msg.Headers[h.Key] = string(h.Value)
	}
	return msg
}
