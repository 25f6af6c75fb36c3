package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// WebhookEvent is published for every webhook outcome: first legs stored,
// bookings submitted, failures. The worker consumes these for ops
// notifications.
type WebhookEvent struct {
	Type          string    `json:"type"`
	RequestID     string    `json:"request_id"`
	OrderID       string    `json:"order_id,omitempty"`
	DepartFlights []int64   `json:"depart_flights,omitempty"`
	ReturnFlights []int64   `json:"return_flights,omitempty"`
	Passengers    int       `json:"passengers"`
	Error         string    `json:"error,omitempty"`
	At            time.Time `json:"at"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
