package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/apexsim/storefront-backend/apperrors"
	"github.com/apexsim/storefront-backend/models"
	"github.com/apexsim/storefront-backend/repository"
)

// OrderAdminService handles admin fulfillment actions against stored
// orders. Status transitions happen only here or through checkout itself;
// nothing moves on a timer.
type OrderAdminService struct {
	orders repository.OrderRepository
	events *EventPublisher
	log    *zap.Logger
}

func NewOrderAdminService(orders repository.OrderRepository, events *EventPublisher, log *zap.Logger) *OrderAdminService {
	return &OrderAdminService{orders: orders, events: events, log: log}
}

var validStatuses = map[string]bool{
	models.OrderStatusPending:    true,
	models.OrderStatusPaid:       true,
	models.OrderStatusProcessing: true,
	models.OrderStatusCompleted:  true,
	models.OrderStatusFailed:     true,
}

var validFulfillment = map[string]bool{
	models.FulfillmentUnfulfilled: true,
	models.FulfillmentFulfilled:   true,
}

// GetOrder fetches one stored order document by id.
func (s *OrderAdminService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.Validation("Order not found", nil)
		}
		return nil, apperrors.Storage("Failed to fetch order", err)
	}
	return order, nil
}

// UpdateOrder applies an admin status/fulfillment change.
func (s *OrderAdminService) UpdateOrder(ctx context.Context, id uuid.UUID, status, fulfillmentStatus string) error {
	updates := map[string]interface{}{}

	if status != "" {
		if !validStatuses[status] {
			return apperrors.Validation("Invalid order status", nil)
		}
		updates["status"] = status
	}
	if fulfillmentStatus != "" {
		if !validFulfillment[fulfillmentStatus] {
			return apperrors.Validation("Invalid fulfillment status", nil)
		}
		updates["fulfillment_status"] = fulfillmentStatus
	}
	if len(updates) == 0 {
		return apperrors.Validation("Nothing to update", nil)
	}

	if err := s.orders.Update(ctx, id, updates); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.Validation("Order not found", nil)
		}
		return apperrors.Storage("Failed to update order", err)
	}

	if fulfillmentStatus == models.FulfillmentFulfilled {
		s.events.Publish(ctx, models.OrderEvent{
			Type:      models.OrderEventFulfilled,
			OrderID:   id.String(),
			Timestamp: time.Now().UTC(),
		})
	}

	s.log.Info("Order updated by admin",
		zap.String("order_id", id.String()),
		zap.String("status", status),
		zap.String("fulfillment_status", fulfillmentStatus),
	)
	return nil
}
