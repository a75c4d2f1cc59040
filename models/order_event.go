package models

import "time"

// OrderEvent is the message fanned out to Kafka/SNS after order state
// changes. Consumers (fulfillment, notifications) live outside this service.
type OrderEvent struct {
	Type          string    `json:"type"`
	OrderID       string    `json:"order_id"`
	CustomerID    string    `json:"customer_id"`
	TransactionID string    `json:"transaction_id,omitempty"`
	AmountCents   int       `json:"amount"`
	Timestamp     time.Time `json:"timestamp"`
}

const (
	OrderEventCreated          = "order_created"
	OrderEventPaymentSucceeded = "payment_succeeded"
	OrderEventPaymentFailed    = "payment_failed"
	OrderEventRefunded         = "order_refunded"
	OrderEventFulfilled        = "order_fulfilled"
)
