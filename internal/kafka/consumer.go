package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Consumer struct {
	reader *kafka.Reader
	logger *zap.Logger
}

func NewConsumer(brokers []string, groupID, topic string, logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		logger: logger,
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// ConsumeConfirmations reads confirmation events until the context is
// canceled or the handler fails. Messages that do not decode are logged and
// skipped, never retried.
func (c *Consumer) ConsumeConfirmations(ctx context.Context, handler func(context.Context, ConfirmationEvent) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		if err := c.handleMessage(ctx, msg, handler); err != nil {
			return err
		}
	}
}

func (c *Consumer) handleMessage(ctx context.Context, msg kafka.Message, handler func(context.Context, ConfirmationEvent) error) error {
	var event ConfirmationEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Warn("skipping undecodable confirmation event",
			zap.String("topic", msg.Topic),
			zap.String("key", string(msg.Key)),
			zap.Error(err))
		return nil
	}
	return handler(ctx, event)
}
