package storage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"overcooked-orders/order-svc/internal/domain"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func TestKafkaPublisherPublishOrderPlaced(t *testing.T) {
	writer := &recordingWriter{}
	publisher := NewKafkaPublisher(writer)

	event := domain.OrderEvent{
		Type:              domain.OrderPlacedEvent,
		OrderID:           "order-1",
		UserID:            7,
		TotalPrice:        decimal.NewFromInt(55),
		ScheduledDelivery: time.Date(2024, time.March, 1, 13, 1, 0, 0, time.UTC),
		Timestamp:         time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, publisher.PublishOrderPlaced(context.Background(), event))

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, "order-1", string(msg.Key))

	var decoded domain.OrderEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, domain.OrderPlacedEvent, decoded.Type)
	assert.Equal(t, 7, decoded.UserID)
	assert.True(t, decimal.NewFromInt(55).Equal(decoded.TotalPrice))
}

func TestKafkaPublisherPropagatesWriteError(t *testing.T) {
	publisher := NewKafkaPublisher(&recordingWriter{err: errors.New("broker down")})

	err := publisher.PublishOrderPlaced(context.Background(), domain.OrderEvent{OrderID: "order-1"})
	assert.EqualError(t, err, "broker down")
}
