package services

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/apexsim/storefront-backend/kafka"
	"github.com/apexsim/storefront-backend/models"
	awspkg "github.com/apexsim/storefront-backend/pkg/aws"
)

// EventPublisher fans order events out to Kafka and, best-effort, to SNS.
// Publish failures are logged and never fail the request that produced
// the event. Both sinks are optional (nil-safe) for local development.
type EventPublisher struct {
	producer    kafka.ProducerAPI
	snsClient   awspkg.SNSPublisher
	snsTopicArn string
	log         *zap.Logger
}

func NewEventPublisher(producer kafka.ProducerAPI, snsClient awspkg.SNSPublisher, snsTopicArn string, log *zap.Logger) *EventPublisher {
	return &EventPublisher{
		producer:    producer,
		snsClient:   snsClient,
		snsTopicArn: snsTopicArn,
		log:         log,
	}
}

func (p *EventPublisher) Publish(ctx context.Context, event models.OrderEvent) {
	if p == nil {
		return
	}

	if p.producer != nil {
		if err := p.producer.SendOrderEvent(event); err != nil {
			p.log.Warn("Kafka order event publish failed",
				zap.String("event_type", event.Type),
				zap.String("order_id", event.OrderID),
				zap.Error(err),
			)
		}
	}

	if p.snsClient != nil && p.snsTopicArn != "" {
		payload, _ := json.Marshal(event)
		if err := p.snsClient.Publish(ctx, p.snsTopicArn, payload); err != nil {
			p.log.Warn("SNS order event publish failed",
				zap.String("event_type", event.Type),
				zap.String("order_id", event.OrderID),
				zap.Error(err),
			)
		}
	}
}
