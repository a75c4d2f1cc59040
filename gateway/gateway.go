package gateway

import (
	"context"

	"github.com/apexsim/storefront-backend/models"
)

// CustomerResult is a vaulted gateway customer.
type CustomerResult struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SaleResult is the shaped outcome of an authorized sale.
type SaleResult struct {
	TransactionID         string `json:"id"`
	Status                string `json:"status"`
	AmountCents           int    `json:"amount"`
	ProcessorResponseCode string `json:"processorResponseCode"`
	ProcessorResponseText string `json:"processorResponseText"`
	PaymentMethodType     string `json:"paymentMethodType"`
}

// Processor is the payment gateway surface the checkout flow depends on.
// Implementations must not retry a charge: there are no idempotency keys,
// so a retried sale risks double-charging the buyer.
type Processor interface {
	// ClientToken returns a token for initializing the browser payment widget.
	ClientToken(ctx context.Context) (string, error)

	// CreateCustomer vaults a customer record for the given shipping info.
	// Fails with a gateway error when required fields are missing or the
	// processor rejects the request.
	CreateCustomer(ctx context.Context, shipping models.ShippingAddress) (*CustomerResult, error)

	// Sale authorizes and submits a charge for amountCents against the
	// payment method nonce. customerID is optional (empty for unvaulted
	// sales). A failure is terminal for this attempt.
	Sale(ctx context.Context, amountCents int, nonce, customerID string, shipping models.ShippingAddress) (*SaleResult, error)

	// Refund issues a best-effort compensation for a settled or submitted
	// transaction. Returns the refund transaction id.
	Refund(ctx context.Context, transactionID string) (string, error)

	// Environment reports which processor environment is active
	// (sandbox or production), recorded on every log entry.
	Environment() string
}
