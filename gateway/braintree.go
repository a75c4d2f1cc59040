package gateway

import (
	"context"
	"fmt"

	"github.com/braintree-go/braintree-go"
	"go.uber.org/zap"

	"github.com/apexsim/storefront-backend/apperrors"
	"github.com/apexsim/storefront-backend/models"
)

// BraintreeGateway implements Processor on top of the Braintree SDK.
type BraintreeGateway struct {
	bt  *braintree.Braintree
	env string
	log *zap.Logger
}

func NewBraintreeGateway(environment, merchantID, publicKey, privateKey string, log *zap.Logger) *BraintreeGateway {
	env := braintree.Sandbox
	if environment == "production" {
		env = braintree.Production
	}
	return &BraintreeGateway{
		bt:  braintree.New(env, merchantID, publicKey, privateKey),
		env: environment,
		log: log,
	}
}

func (g *BraintreeGateway) Environment() string {
	return g.env
}

func (g *BraintreeGateway) ClientToken(ctx context.Context) (string, error) {
	token, err := g.bt.ClientToken().Generate(ctx)
	if err != nil {
		return "", apperrors.Gateway("Failed to generate client token", err)
	}
	return token, nil
}

func (g *BraintreeGateway) CreateCustomer(ctx context.Context, shipping models.ShippingAddress) (*CustomerResult, error) {
	if shipping.FirstName == "" || shipping.LastName == "" || shipping.Email == "" {
		return nil, apperrors.Gateway("Customer name and email are required", nil)
	}

	customer, err := g.bt.Customer().Create(ctx, &braintree.CustomerRequest{
		FirstName: shipping.FirstName,
		LastName:  shipping.LastName,
		Email:     shipping.Email,
		Phone:     shipping.Phone,
	})
	if err != nil {
		return nil, apperrors.Gateway("Payment processor rejected customer creation", err)
	}

	g.log.Info("Gateway customer vaulted", zap.String("gateway_customer_id", customer.Id))
	return &CustomerResult{ID: customer.Id, Email: shipping.Email}, nil
}

func (g *BraintreeGateway) Sale(ctx context.Context, amountCents int, nonce, customerID string, shipping models.ShippingAddress) (*SaleResult, error) {
	if nonce == "" {
		return nil, apperrors.Gateway("Payment method nonce is required", nil)
	}
	if amountCents <= 0 {
		return nil, apperrors.Gateway("Sale amount must be positive", nil)
	}

	req := &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             braintree.NewDecimal(int64(amountCents), 2),
		PaymentMethodNonce: nonce,
		CustomerID:         customerID,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true,
		},
		ShippingAddress: &braintree.Address{
			FirstName:     shipping.FirstName,
			LastName:      shipping.LastName,
			StreetAddress: shipping.Address,
			Locality:      shipping.City,
			Region:        shipping.State,
			PostalCode:    shipping.ZipCode,
			CountryName:   shipping.Country,
		},
	}

	tx, err := g.bt.Transaction().Create(ctx, req)
	if err != nil {
		return nil, apperrors.Gateway("Payment was declined", err)
	}

	result := &SaleResult{
		TransactionID:         tx.Id,
		Status:                string(tx.Status),
		AmountCents:           amountCents,
		ProcessorResponseCode: fmt.Sprint(tx.ProcessorResponseCode),
		ProcessorResponseText: tx.ProcessorResponseText,
		PaymentMethodType:     string(tx.PaymentInstrumentType),
	}
	g.log.Info("Gateway sale authorized",
		zap.String("transaction_id", tx.Id),
		zap.String("status", result.Status),
		zap.Int("amount_cents", amountCents),
	)
	return result, nil
}

// Refund compensates a charged transaction. Transactions that have not
// settled yet cannot be refunded, so a failed refund falls back to a void.
func (g *BraintreeGateway) Refund(ctx context.Context, transactionID string) (string, error) {
	if transactionID == "" {
		return "", apperrors.Gateway("Transaction id is required for refund", nil)
	}

	refund, err := g.bt.Transaction().Refund(ctx, transactionID)
	if err == nil {
		g.log.Info("Gateway refund issued",
			zap.String("transaction_id", transactionID),
			zap.String("refund_id", refund.Id),
		)
		return refund.Id, nil
	}

	voided, voidErr := g.bt.Transaction().Void(ctx, transactionID)
	if voidErr != nil {
		return "", apperrors.Gateway("Refund failed", fmt.Errorf("refund: %v, void: %w", err, voidErr))
	}
	g.log.Info("Gateway transaction voided in lieu of refund",
		zap.String("transaction_id", transactionID),
	)
	return voided.Id, nil
}
