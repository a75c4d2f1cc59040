package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/apexsim/storefront-backend/apperrors"
	"github.com/apexsim/storefront-backend/gateway"
	"github.com/apexsim/storefront-backend/models"
	"github.com/apexsim/storefront-backend/repository"
)

// CheckoutRequest is the parsed checkout submission.
type CheckoutRequest struct {
	PaymentMethodNonce string                 `json:"paymentMethodNonce" binding:"required"`
	AmountCents        int                    `json:"amount" binding:"required,min=1"`
	Items              []models.OrderItem     `json:"items"`
	Shipping           models.ShippingAddress `json:"shipping" binding:"required"`
	UserID             string                 `json:"userId"`
}

// CheckoutResponse is returned to the buyer on success.
type CheckoutResponse struct {
	Success     bool               `json:"success"`
	Transaction TransactionSummary `json:"transaction"`
	OrderID     string             `json:"orderId"`
	Customer    CustomerSummary    `json:"customer"`
}

type TransactionSummary struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	AmountCents       int    `json:"amount"`
	ProcessorResponse string `json:"processorResponse"`
}

type CustomerSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// CheckoutService orchestrates one checkout attempt: audit logging, gateway
// vault and sale, the transactional order write, and the compensating
// refund when the write fails after a successful charge. There are no
// retries anywhere in the payment path.
type CheckoutService struct {
	gateway gateway.Processor
	orders  repository.OrderRepository
	carts   repository.CartRepository
	txlog   *TransactionLogger
	events  *EventPublisher
	log     *zap.Logger
}

func NewCheckoutService(
	gw gateway.Processor,
	orders repository.OrderRepository,
	carts repository.CartRepository,
	txlog *TransactionLogger,
	events *EventPublisher,
	log *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		gateway: gw,
		orders:  orders,
		carts:   carts,
		txlog:   txlog,
		events:  events,
		log:     log,
	}
}

// Checkout runs one checkout attempt end to end. Every step is appended to
// the transaction log before the next one runs; ordering within a single
// checkout is preserved by sequential calls.
func (s *CheckoutService) Checkout(ctx context.Context, req *CheckoutRequest) (*CheckoutResponse, error) {
	if err := validateCheckout(req); err != nil {
		return nil, err
	}

	isGuest := req.UserID == ""
	customerID := req.UserID
	if isGuest {
		customerID = fmt.Sprintf("guest_%d", time.Now().UnixNano())
	}

	data := s.eventData(req, customerID, isGuest)
	s.txlog.Log(ctx, models.EventCheckoutInitiated, data)

	// Vaulting is best-effort: the nonce alone is enough to charge, so a
	// rejected customer record does not abort the checkout.
	gatewayCustomerID := ""
	customer, err := s.gateway.CreateCustomer(ctx, req.Shipping)
	if err != nil {
		s.txlog.LogError(ctx, models.EventCustomerCreationFailed, data, err)
		s.log.Warn("Gateway customer creation failed, proceeding unvaulted",
			zap.String("customer_id", customerID),
			zap.Error(err),
		)
	} else {
		gatewayCustomerID = customer.ID
		vaulted := *data
		vaulted.GatewayCustomerID = gatewayCustomerID
		s.txlog.Log(ctx, models.EventCustomerCreated, &vaulted)
	}

	sale, err := s.gateway.Sale(ctx, req.AmountCents, req.PaymentMethodNonce, gatewayCustomerID, req.Shipping)
	if err != nil {
		s.txlog.LogError(ctx, models.EventTransactionFailed, data, err)
		return nil, err
	}

	charged := *data
	charged.TransactionID = sale.TransactionID
	charged.GatewayCustomerID = gatewayCustomerID
	s.txlog.Log(ctx, models.EventTransactionSuccess, &charged)

	order := s.buildOrder(req, sale, customerID, isGuest, gatewayCustomerID)
	customerDoc := s.buildCustomer(req, customerID, isGuest)

	orderID, err := s.orders.CreateWithCustomer(ctx, order, customerDoc)
	if err != nil {
		s.compensate(ctx, sale.TransactionID, &charged, err)
		return nil, apperrors.Storage("Failed to save order", err)
	}

	created := charged
	created.OrderID = orderID
	s.txlog.Log(ctx, models.EventOrderCreated, &created)

	s.events.Publish(ctx, models.OrderEvent{
		Type:          models.OrderEventCreated,
		OrderID:       orderID,
		CustomerID:    customerID,
		TransactionID: sale.TransactionID,
		AmountCents:   req.AmountCents,
		Timestamp:     time.Now().UTC(),
	})

	s.clearCart(ctx, req.UserID)

	return &CheckoutResponse{
		Success: true,
		Transaction: TransactionSummary{
			ID:                sale.TransactionID,
			Status:            sale.Status,
			AmountCents:       sale.AmountCents,
			ProcessorResponse: sale.ProcessorResponseText,
		},
		OrderID:  orderID,
		Customer: CustomerSummary{ID: customerID, Email: req.Shipping.Email},
	}, nil
}

// compensate issues the best-effort refund after an order write fails
// behind a successful charge. A failed refund is logged, never retried.
func (s *CheckoutService) compensate(ctx context.Context, transactionID string, data *models.EventData, cause error) {
	s.log.Error("Order write failed after successful charge, refunding",
		zap.String("transaction_id", transactionID),
		zap.Error(cause),
	)

	if _, err := s.gateway.Refund(ctx, transactionID); err != nil {
		s.txlog.LogError(ctx, models.EventRefundFailed, data, err)
		s.log.Error("Compensating refund failed",
			zap.String("transaction_id", transactionID),
			zap.Error(err),
		)
		return
	}
	s.txlog.Log(ctx, models.EventRefundIssuedAfterError, data)
}

// clearCart drops the buyer's cart after a successful order. Guests have
// no stored cart; failures only warn.
func (s *CheckoutService) clearCart(ctx context.Context, userID string) {
	if userID == "" || s.carts == nil {
		return
	}
	if err := s.carts.DeleteCart(ctx, userID); err != nil {
		s.log.Warn("Failed to clear cart after checkout",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}

func (s *CheckoutService) eventData(req *CheckoutRequest, customerID string, isGuest bool) *models.EventData {
	return &models.EventData{
		UserID:        customerID,
		CustomerEmail: req.Shipping.Email,
		FirstName:     req.Shipping.FirstName,
		LastName:      req.Shipping.LastName,
		Address:       req.Shipping.Address,
		City:          req.Shipping.City,
		State:         req.Shipping.State,
		ZipCode:       req.Shipping.ZipCode,
		Country:       req.Shipping.Country,
		Phone:         req.Shipping.Phone,
		AmountCents:   req.AmountCents,
		ItemCount:     len(req.Items),
		Environment:   s.gateway.Environment(),
		IsGuest:       isGuest,
	}
}

func (s *CheckoutService) buildOrder(req *CheckoutRequest, sale *gateway.SaleResult, customerID string, isGuest bool, gatewayCustomerID string) *models.Order {
	now := time.Now().UTC()
	return &models.Order{
		ID:                    uuid.New(),
		CustomerID:            customerID,
		IsGuest:               isGuest,
		Items:                 req.Items,
		TotalCents:            req.AmountCents,
		ShippingAddress:       req.Shipping,
		PaymentStatus:         models.PaymentStatusPaid,
		TransactionID:         sale.TransactionID,
		GatewayCustomerID:     gatewayCustomerID,
		PaymentMethodType:     sale.PaymentMethodType,
		ProcessorResponseCode: sale.ProcessorResponseCode,
		ProcessorResponseText: sale.ProcessorResponseText,
		Status:                models.OrderStatusPaid,
		FulfillmentStatus:     models.FulfillmentUnfulfilled,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

func (s *CheckoutService) buildCustomer(req *CheckoutRequest, customerID string, isGuest bool) *models.Customer {
	return &models.Customer{
		ID:        customerID,
		IsGuest:   isGuest,
		Email:     req.Shipping.Email,
		FirstName: req.Shipping.FirstName,
		LastName:  req.Shipping.LastName,
	}
}

func validateCheckout(req *CheckoutRequest) error {
	if req.PaymentMethodNonce == "" {
		return apperrors.Validation("paymentMethodNonce is required", nil)
	}
	if req.AmountCents <= 0 {
		return apperrors.Validation("amount must be positive", nil)
	}
	if req.Shipping.Email == "" {
		return apperrors.Validation("shipping email is required", nil)
	}
	return nil
}
