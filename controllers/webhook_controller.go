package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"

	"github.com/apexsim/storefront-backend/logger"
	"github.com/apexsim/storefront-backend/models"
	awspkg "github.com/apexsim/storefront-backend/pkg/aws"
	"github.com/apexsim/storefront-backend/repository"
	"github.com/apexsim/storefront-backend/services"
)

// WebhookController receives asynchronous payment confirmations from the
// second processor and reconciles them against stored orders.
type WebhookController struct {
	Stripe  *services.StripeService
	Orders  repository.OrderRepository
	TxLog   *services.TransactionLogger
	Events  *services.EventPublisher
	Metrics *awspkg.MetricsClient
	Logger  *zap.Logger
}

// StripeWebhook verifies the signature and dispatches on the event type.
// A signature mismatch returns 400 with no state change.
func (wc *WebhookController) StripeWebhook(c *gin.Context) {
	event, err := wc.Stripe.ParseWebhook(c.Request)
	if err != nil {
		wc.Logger.Warn("Stripe webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook"})
		return
	}

	wc.Logger.Info("Processing Stripe webhook", logger.WithRequestID(c,
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID),
	)...)
	recordMetric(wc.Metrics, awspkg.MetricWebhooksReceived)

	switch event.Type {
	case "payment_intent.succeeded":
		wc.handlePaymentIntentStatus(c, event, models.PaymentStatusPaid)
	case "payment_intent.payment_failed":
		wc.handlePaymentIntentStatus(c, event, models.PaymentStatusFailed)
	case "charge.refunded":
		wc.handleChargeRefunded(c, event)
	default:
		wc.Logger.Info("Unhandled webhook event type", zap.String("event_type", string(event.Type)))
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

func (wc *WebhookController) handlePaymentIntentStatus(c *gin.Context, event stripe.Event, paymentStatus string) {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		wc.Logger.Error("Failed to unmarshal payment intent", zap.Error(err))
		return
	}

	transactionID := pi.Metadata["transaction_id"]
	if transactionID == "" {
		wc.Logger.Warn("Payment intent missing transaction_id metadata",
			zap.String("payment_intent_id", pi.ID),
		)
		return
	}

	order, err := wc.Orders.FindByTransactionID(c.Request.Context(), transactionID)
	if err != nil {
		wc.Logger.Error("Order not found for webhook",
			zap.String("transaction_id", transactionID),
			zap.Error(err),
		)
		return
	}

	if order.PaymentStatus == paymentStatus {
		wc.Logger.Info("Skipping duplicate payment webhook",
			zap.String("order_id", order.ID.String()),
			zap.String("payment_status", paymentStatus),
		)
		return
	}

	updates := map[string]interface{}{"payment_status": paymentStatus}
	eventType := models.OrderEventPaymentSucceeded
	if paymentStatus == models.PaymentStatusFailed {
		updates["status"] = models.OrderStatusFailed
		eventType = models.OrderEventPaymentFailed
	}

	if err := wc.Orders.UpdateByTransactionID(c.Request.Context(), transactionID, updates); err != nil {
		wc.Logger.Error("Failed to update order from webhook",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
		return
	}

	wc.Events.Publish(c.Request.Context(), models.OrderEvent{
		Type:          eventType,
		OrderID:       order.ID.String(),
		CustomerID:    order.CustomerID,
		TransactionID: transactionID,
		AmountCents:   order.TotalCents,
		Timestamp:     time.Now().UTC(),
	})
}

func (wc *WebhookController) handleChargeRefunded(c *gin.Context, event stripe.Event) {
	var charge stripe.Charge
	if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
		wc.Logger.Error("Failed to unmarshal charge", zap.Error(err))
		return
	}

	transactionID := charge.Metadata["transaction_id"]
	if transactionID == "" {
		wc.Logger.Warn("Refunded charge missing transaction_id metadata", zap.String("charge_id", charge.ID))
		return
	}

	ctx := c.Request.Context()
	order, err := wc.Orders.FindByTransactionID(ctx, transactionID)
	if err != nil {
		wc.Logger.Error("Order not found for refund webhook",
			zap.String("transaction_id", transactionID),
			zap.Error(err),
		)
		return
	}

	// Stripe redelivers events; a refund is logged exactly once.
	if order.PaymentStatus == models.PaymentStatusRefunded {
		wc.Logger.Info("Skipping duplicate refund webhook",
			zap.String("order_id", order.ID.String()),
			zap.String("transaction_id", transactionID),
		)
		return
	}

	if err := wc.Orders.UpdateByTransactionID(ctx, transactionID, map[string]interface{}{
		"payment_status": models.PaymentStatusRefunded,
	}); err != nil {
		wc.Logger.Error("Failed to mark order refunded", zap.String("order_id", order.ID.String()), zap.Error(err))
		return
	}

	wc.TxLog.Log(ctx, models.EventRefundIssued, &models.EventData{
		UserID:        order.CustomerID,
		CustomerEmail: order.ShippingAddress.Email,
		AmountCents:   order.TotalCents,
		IsGuest:       order.IsGuest,
		TransactionID: transactionID,
		OrderID:       order.ID.String(),
	})

	recordMetric(wc.Metrics, awspkg.MetricRefundsIssued)

	wc.Events.Publish(ctx, models.OrderEvent{
		Type:          models.OrderEventRefunded,
		OrderID:       order.ID.String(),
		CustomerID:    order.CustomerID,
		TransactionID: transactionID,
		AmountCents:   order.TotalCents,
		Timestamp:     time.Now().UTC(),
	})
}
