package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestConsumer_handleMessage(t *testing.T) {
	c := &Consumer{logger: zap.NewNop()}

	event := ConfirmationEvent{
		Type:             "booking_confirmed",
		WorkflowID:       "wf-123",
		BookingReference: "REF45678",
		Email:            "john@x.com",
	}
	payload, _ := json.Marshal(event)

	var got ConfirmationEvent
	err := c.handleMessage(context.Background(), kafka.Message{Value: payload},
		func(ctx context.Context, e ConfirmationEvent) error {
			got = e
			return nil
		})

	assert.NoError(t, err)
	assert.Equal(t, event, got)
}

// An undecodable message is skipped without stopping the consume loop and
// without reaching the handler.
func TestConsumer_handleMessage_BadPayloadSkipped(t *testing.T) {
	c := &Consumer{logger: zap.NewNop()}

	called := false
	err := c.handleMessage(context.Background(), kafka.Message{Value: []byte("not json")},
		func(ctx context.Context, e ConfirmationEvent) error {
			called = true
			return nil
		})

	assert.NoError(t, err)
	assert.False(t, called)
}

func TestConsumer_handleMessage_HandlerErrorPropagates(t *testing.T) {
	c := &Consumer{logger: zap.NewNop()}

	payload, _ := json.Marshal(ConfirmationEvent{WorkflowID: "wf-123"})
	handlerErr := errors.New("send failed")

	err := c.handleMessage(context.Background(), kafka.Message{Value: payload},
		func(ctx context.Context, e ConfirmationEvent) error {
			return handlerErr
		})

	assert.ErrorIs(t, err, handlerErr)
}
