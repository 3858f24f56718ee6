package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const EventTypeOrderPlaced = "OrderPlaced"

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// NewKafkaWriter builds a writer with no default topic; every message names
// its own.
func NewKafkaWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
}

type kafkaOrderPublisher struct {
	writer MessageWriter
	topic  string
	log    *logrus.Logger
}

func NewKafkaOrderPublisher(writer MessageWriter, topic string, logger *logrus.Logger) domain.OrderPublisher {
	return &kafkaOrderPublisher{
		writer: writer,
		topic:  topic,
		log:    logger,
	}
}

func (p *kafkaOrderPublisher) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	payload, err := json.Marshal(domain.NewOrderPlacedEvent(order))
	if err != nil {
		return fmt.Errorf("failed to encode %s event for order %s: %w", EventTypeOrderPlaced, order.ID, err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(order.ID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventTypeOrderPlaced)},
			{Key: "content_type", Value: []byte("application/json")},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.WithFields(logrus.Fields{
			"order_id": order.ID,
			"topic":    p.topic,
		}).Errorf("Kafka Publisher: Failed to publish %s: %v", EventTypeOrderPlaced, err)
		return fmt.Errorf("failed to publish %s for order %s: %w", EventTypeOrderPlaced, order.ID, err)
	}

	p.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"topic":    p.topic,
	}).Infof("Kafka Publisher: Published %s", EventTypeOrderPlaced)
	return nil
}
