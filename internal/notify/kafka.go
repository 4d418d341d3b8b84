package notify

import (
	"context"
	"encoding/json"
	"time"

	"marketplace/utils"

	"github.com/segmentio/kafka-go"
)

// KafkaSink publishes notification events as JSON messages keyed by user ID.
// Delivery failures are logged and dropped.
type KafkaSink struct {
	writer *kafka.Writer
}

// NewKafkaSink creates a sink writing to topic on the given broker.
func NewKafkaSink(broker, topic string) *KafkaSink {
	return &KafkaSink{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(broker),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			WriteTimeout: 5 * time.Second,
		},
	}
}

func (s *KafkaSink) Notify(ctx context.Context, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		utils.Error("notify: marshal event", map[string]any{"kind": event.Kind, "error": err.Error()})
		return
	}
	err = s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.UserID),
		Value: payload,
	})
	if err != nil {
		utils.Error("notify: kafka write failed", map[string]any{
			"user_id": event.UserID,
			"kind":    event.Kind,
			"error":   err.Error(),
		})
	}
}

// Close flushes and closes the underlying writer.
func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
