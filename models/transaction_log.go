package models

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies one step of the checkout lifecycle.
type EventType string

const (
	EventCheckoutInitiated      EventType = "checkout_initiated"
	EventCustomerCreated        EventType = "customer_created"
	EventCustomerCreationFailed EventType = "customer_creation_failed"
	EventTransactionSuccess     EventType = "transaction_success"
	EventTransactionFailed      EventType = "transaction_failed"
	EventRefundIssued           EventType = "refund_issued"
	EventRefundIssuedAfterError EventType = "refund_issued_after_error"
	EventRefundFailed           EventType = "refund_failed"
	EventOrderCreated           EventType = "order_created"
	EventSystemError            EventType = "system_error"
)

const (
	LogStatusSuccess = "success"
	LogStatusError   = "error"
)

// TransactionLogEntry is one immutable record in the append-only audit
// trail. Entries are never mutated after creation.
type TransactionLogEntry struct {
	ID        uuid.UUID   `bson:"_id" json:"id"`
	Type      EventType   `bson:"type" json:"type"`
	Status    string      `bson:"status" json:"status"`
	Timestamp time.Time   `bson:"timestamp" json:"timestamp"`
	Data      *EventData  `bson:"data,omitempty" json:"data,omitempty"`
	Error     *EventError `bson:"error,omitempty" json:"error,omitempty"`
}

// EventData is the payload attached to a checkout lifecycle record.
type EventData struct {
	UserID            string `bson:"user_id,omitempty" json:"userId,omitempty"`
	CustomerEmail     string `bson:"customer_email,omitempty" json:"customerEmail,omitempty"`
	FirstName         string `bson:"first_name,omitempty" json:"firstName,omitempty"`
	LastName          string `bson:"last_name,omitempty" json:"lastName,omitempty"`
	Address           string `bson:"address,omitempty" json:"address,omitempty"`
	City              string `bson:"city,omitempty" json:"city,omitempty"`
	State             string `bson:"state,omitempty" json:"state,omitempty"`
	ZipCode           string `bson:"zip_code,omitempty" json:"zipCode,omitempty"`
	Country           string `bson:"country,omitempty" json:"country,omitempty"`
	Phone             string `bson:"phone,omitempty" json:"phone,omitempty"`
	AmountCents       int    `bson:"amount_cents,omitempty" json:"amount,omitempty"`
	ItemCount         int    `bson:"item_count,omitempty" json:"itemCount,omitempty"`
	Environment       string `bson:"environment,omitempty" json:"environment,omitempty"`
	IsGuest           bool   `bson:"is_guest" json:"isGuest"`
	TransactionID     string `bson:"transaction_id,omitempty" json:"transactionId,omitempty"`
	OrderID           string `bson:"order_id,omitempty" json:"orderId,omitempty"`
	GatewayCustomerID string `bson:"gateway_customer_id,omitempty" json:"gatewayCustomerId,omitempty"`
}

// EventError captures the raw failure for operator-side diagnosis.
type EventError struct {
	Message string `bson:"message" json:"message"`
	Code    string `bson:"code,omitempty" json:"code,omitempty"`
}
