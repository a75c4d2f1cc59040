package models

import (
	"time"

	"github.com/google/uuid"
)

// Order lifecycle: pending -> paid -> processing -> completed|failed.
// Transitions happen on checkout outcome or an admin action only.
const (
	OrderStatusPending    = "pending"
	OrderStatusPaid       = "paid"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusFailed     = "failed"

	FulfillmentUnfulfilled = "unfulfilled"
	FulfillmentFulfilled   = "fulfilled"

	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

type Order struct {
	ID                    uuid.UUID       `bson:"_id" json:"id"`
	CustomerID            string          `bson:"customer_id" json:"customerId"`
	IsGuest               bool            `bson:"is_guest" json:"isGuest"`
	Items                 []OrderItem     `bson:"items" json:"items"`
	TotalCents            int             `bson:"total_cents" json:"total"`
	ShippingAddress       ShippingAddress `bson:"shipping_address" json:"shippingAddress"`
	PaymentStatus         string          `bson:"payment_status" json:"paymentStatus"`
	TransactionID         string          `bson:"transaction_id" json:"transactionId"`
	GatewayCustomerID     string          `bson:"gateway_customer_id,omitempty" json:"gatewayCustomerId,omitempty"`
	PaymentMethodType     string          `bson:"payment_method_type,omitempty" json:"paymentMethodType,omitempty"`
	ProcessorResponseCode string          `bson:"processor_response_code,omitempty" json:"processorResponseCode,omitempty"`
	ProcessorResponseText string          `bson:"processor_response_text,omitempty" json:"processorResponseText,omitempty"`
	Status                string          `bson:"status" json:"status"`
	FulfillmentStatus     string          `bson:"fulfillment_status" json:"fulfillmentStatus"`
	CreatedAt             time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt             time.Time       `bson:"updated_at" json:"updatedAt"`
}

type OrderItem struct {
	ProductID  string `bson:"product_id" json:"productId"`
	Name       string `bson:"name" json:"name"`
	SKU        string `bson:"sku,omitempty" json:"sku,omitempty"`
	Quantity   int    `bson:"quantity" json:"quantity"`
	PriceCents int    `bson:"price_cents" json:"price"`
}

// ShippingAddress is the buyer-supplied shipping block from checkout.
type ShippingAddress struct {
	FirstName string `bson:"first_name" json:"firstName"`
	LastName  string `bson:"last_name" json:"lastName"`
	Email     string `bson:"email" json:"email"`
	Address   string `bson:"address" json:"address"`
	City      string `bson:"city" json:"city"`
	State     string `bson:"state" json:"state"`
	ZipCode   string `bson:"zip_code" json:"zipCode"`
	Country   string `bson:"country" json:"country"`
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`
}
