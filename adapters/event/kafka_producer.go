package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"devconnect/internal/config"
)

const TopicPostEvents = "post.events"

type PostEventType string

const (
	PostEventTypeCreated   PostEventType = "created"
	PostEventTypeDeleted   PostEventType = "deleted"
	PostEventTypeCommented PostEventType = "commented"
)

type PostEventPayload struct {
	EventType  PostEventType `json:"event_type"`
	PostID     uuid.UUID     `json:"post_id"`
	UserID     uuid.UUID     `json:"user_id"`
	OccurredAt time.Time     `json:"occurred_at"`
}

type KafkaProducerClient struct {
	postEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers not configured")
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicPostEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{postEventsWriter: writer}, nil
}

func (c *KafkaProducerClient) PublishPostEvent(ctx context.Context, payload PostEventPayload) error {
	if payload.OccurredAt.IsZero() {
		payload.OccurredAt = time.Now().UTC()
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal post event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(payload.PostID.String()),
		Value: value,
	}
	if err := c.postEventsWriter.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write post event: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.postEventsWriter != nil {
		c.postEventsWriter.Close()
	}
}
