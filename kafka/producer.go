package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/apexsim/storefront-backend/models"
)

// ProducerAPI is what services depend on; the concrete writer is swapped
// out in tests.
type ProducerAPI interface {
	SendOrderEvent(event models.OrderEvent) error
	Close() error
}

type OrderEventProducer struct {
	writer *kafka.Writer
	topic  string
	log    *zap.Logger
}

func NewOrderEventProducer(brokers []string, topic string, log *zap.Logger) *OrderEventProducer {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	log.Info("Kafka order event producer initialized",
		zap.String("topic", topic),
		zap.Strings("brokers", brokers),
	)
	return &OrderEventProducer{writer: w, topic: topic, log: log}
}

func (p *OrderEventProducer) SendOrderEvent(event models.OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
	}
	if err := p.writer.WriteMessages(context.Background(), msg); err != nil {
		p.log.Error("Failed to publish order event",
			zap.String("event_type", event.Type),
			zap.String("order_id", event.OrderID),
			zap.String("topic", p.topic),
			zap.Error(err),
		)
		return err
	}
	p.log.Info("Order event published",
		zap.String("event_type", event.Type),
		zap.String("order_id", event.OrderID),
		zap.String("topic", p.topic),
	)
	return nil
}

func (p *OrderEventProducer) Close() error {
	return p.writer.Close()
}
