package services

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/apexsim/storefront-backend/gateway"
	"github.com/apexsim/storefront-backend/models"
)

// fakeLogRepo records appended entries in memory.
type fakeLogRepo struct {
	entries    []models.TransactionLogEntry
	failAppend bool
}

func (f *fakeLogRepo) Append(_ context.Context, entry *models.TransactionLogEntry) error {
	if f.failAppend {
		return errors.New("log collection unavailable")
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeLogRepo) FindByTypeAndStatus(_ context.Context, eventType models.EventType, status string) ([]models.TransactionLogEntry, error) {
	var out []models.TransactionLogEntry
	for _, e := range f.entries {
		if e.Type == eventType && e.Status == status {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (f *fakeLogRepo) FindRecent(_ context.Context, limit int64) ([]models.TransactionLogEntry, error) {
	if int64(len(f.entries)) < limit {
		limit = int64(len(f.entries))
	}
	return f.entries[:limit], nil
}

func (f *fakeLogRepo) byType(eventType models.EventType) []models.TransactionLogEntry {
	var out []models.TransactionLogEntry
	for _, e := range f.entries {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// fakeGateway scripts gateway outcomes.
type fakeGateway struct {
	saleResult  *gateway.SaleResult
	saleErr     error
	customerErr error
	refundErr   error
	refundCalls []string
}

func (f *fakeGateway) Environment() string { return "sandbox" }

func (f *fakeGateway) ClientToken(context.Context) (string, error) {
	return "client-token", nil
}

func (f *fakeGateway) CreateCustomer(_ context.Context, shipping models.ShippingAddress) (*gateway.CustomerResult, error) {
	if f.customerErr != nil {
		return nil, f.customerErr
	}
	return &gateway.CustomerResult{ID: "gwcust_1", Email: shipping.Email}, nil
}

func (f *fakeGateway) Sale(_ context.Context, amountCents int, _, _ string, _ models.ShippingAddress) (*gateway.SaleResult, error) {
	if f.saleErr != nil {
		return nil, f.saleErr
	}
	if f.saleResult != nil {
		return f.saleResult, nil
	}
	return &gateway.SaleResult{
		TransactionID:         "tx_1",
		Status:                "submitted_for_settlement",
		AmountCents:           amountCents,
		ProcessorResponseCode: "1000",
		ProcessorResponseText: "Approved",
		PaymentMethodType:     "credit_card",
	}, nil
}

func (f *fakeGateway) Refund(_ context.Context, transactionID string) (string, error) {
	f.refundCalls = append(f.refundCalls, transactionID)
	if f.refundErr != nil {
		return "", f.refundErr
	}
	return "refund_1", nil
}

// fakeOrderRepo captures transactional writes.
type fakeOrderRepo struct {
	orders     []*models.Order
	customers  []*models.Customer
	failCreate bool
}

func (f *fakeOrderRepo) CreateWithCustomer(_ context.Context, order *models.Order, customer *models.Customer) (string, error) {
	if f.failCreate {
		return "", errors.New("document write failed")
	}
	f.orders = append(f.orders, order)
	f.customers = append(f.customers, customer)
	return order.ID.String(), nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeOrderRepo) FindByTransactionID(_ context.Context, transactionID string) (*models.Order, error) {
	for _, o := range f.orders {
		if o.TransactionID == transactionID {
			return o, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeOrderRepo) Update(_ context.Context, id uuid.UUID, updates map[string]interface{}) error {
	order, err := f.FindByID(context.Background(), id)
	if err != nil {
		return err
	}
	applyOrderUpdates(order, updates)
	return nil
}

func (f *fakeOrderRepo) UpdateByTransactionID(_ context.Context, transactionID string, updates map[string]interface{}) error {
	order, err := f.FindByTransactionID(context.Background(), transactionID)
	if err != nil {
		return err
	}
	applyOrderUpdates(order, updates)
	return nil
}

func applyOrderUpdates(order *models.Order, updates map[string]interface{}) {
	for k, v := range updates {
		s, _ := v.(string)
		switch k {
		case "status":
			order.Status = s
		case "fulfillment_status":
			order.FulfillmentStatus = s
		case "payment_status":
			order.PaymentStatus = s
		}
	}
}

// fakeCartRepo records deletions.
type fakeCartRepo struct {
	carts   map[string]*models.Cart
	deleted []string
}

func (f *fakeCartRepo) GetCart(_ context.Context, userID string) (*models.Cart, error) {
	if f.carts == nil {
		return nil, nil
	}
	return f.carts[userID], nil
}

func (f *fakeCartRepo) SaveCart(_ context.Context, cart *models.Cart) error {
	if f.carts == nil {
		f.carts = map[string]*models.Cart{}
	}
	f.carts[cart.UserID] = cart
	return nil
}

func (f *fakeCartRepo) DeleteCart(_ context.Context, userID string) error {
	f.deleted = append(f.deleted, userID)
	delete(f.carts, userID)
	return nil
}
