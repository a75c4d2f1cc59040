package controllers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"

	"github.com/apexsim/storefront-backend/models"
	"github.com/apexsim/storefront-backend/services"
)

// trackingOrderRepo fails loudly if the webhook touches state.
type trackingOrderRepo struct {
	calls int
}

func (r *trackingOrderRepo) CreateWithCustomer(context.Context, *models.Order, *models.Customer) (string, error) {
	r.calls++
	return "", errors.New("unexpected")
}

func (r *trackingOrderRepo) FindByID(context.Context, uuid.UUID) (*models.Order, error) {
	r.calls++
	return nil, errors.New("unexpected")
}

func (r *trackingOrderRepo) FindByTransactionID(context.Context, string) (*models.Order, error) {
	r.calls++
	return nil, errors.New("unexpected")
}

func (r *trackingOrderRepo) Update(context.Context, uuid.UUID, map[string]interface{}) error {
	r.calls++
	return errors.New("unexpected")
}

func (r *trackingOrderRepo) UpdateByTransactionID(context.Context, string, map[string]interface{}) error {
	r.calls++
	return errors.New("unexpected")
}

type noopLogRepo struct{}

func (noopLogRepo) Append(context.Context, *models.TransactionLogEntry) error { return nil }
func (noopLogRepo) FindByTypeAndStatus(context.Context, models.EventType, string) ([]models.TransactionLogEntry, error) {
	return nil, nil
}
func (noopLogRepo) FindRecent(context.Context, int64) ([]models.TransactionLogEntry, error) {
	return nil, nil
}

func TestStripeWebhook_BadSignatureIsRejectedWithoutStateChange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()
	orders := &trackingOrderRepo{}

	wc := &WebhookController{
		Stripe: services.NewStripeService("whsec_test"),
		Orders: orders,
		TxLog:  services.NewTransactionLogger(noopLogRepo{}, log),
		Events: services.NewEventPublisher(nil, nil, "", log),
		Logger: log,
	}

	r := gin.New()
	r.POST("/webhooks/stripe", wc.StripeWebhook)

	body := `{"type":"payment_intent.succeeded","data":{"object":{}}}`

	// No signature header at all.
	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Forged signature header.
	req = httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(body))
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, 0, orders.calls, "a rejected webhook must not touch stored orders")
}

// memoryOrderRepo holds one order and applies webhook updates to it.
type memoryOrderRepo struct {
	order   *models.Order
	updates []map[string]interface{}
}

func (r *memoryOrderRepo) CreateWithCustomer(context.Context, *models.Order, *models.Customer) (string, error) {
	return "", errors.New("unexpected")
}

func (r *memoryOrderRepo) FindByID(context.Context, uuid.UUID) (*models.Order, error) {
	return nil, errors.New("unexpected")
}

func (r *memoryOrderRepo) FindByTransactionID(_ context.Context, transactionID string) (*models.Order, error) {
	if r.order != nil && r.order.TransactionID == transactionID {
		return r.order, nil
	}
	return nil, errors.New("not found")
}

func (r *memoryOrderRepo) Update(context.Context, uuid.UUID, map[string]interface{}) error {
	return errors.New("unexpected")
}

func (r *memoryOrderRepo) UpdateByTransactionID(_ context.Context, transactionID string, updates map[string]interface{}) error {
	if r.order == nil || r.order.TransactionID != transactionID {
		return errors.New("not found")
	}
	r.updates = append(r.updates, updates)
	if s, ok := updates["payment_status"].(string); ok {
		r.order.PaymentStatus = s
	}
	if s, ok := updates["status"].(string); ok {
		r.order.Status = s
	}
	return nil
}

// recordingLogRepo captures appended transaction log entries.
type recordingLogRepo struct {
	entries []models.TransactionLogEntry
}

func (r *recordingLogRepo) Append(_ context.Context, entry *models.TransactionLogEntry) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *recordingLogRepo) FindByTypeAndStatus(context.Context, models.EventType, string) ([]models.TransactionLogEntry, error) {
	return nil, nil
}

func (r *recordingLogRepo) FindRecent(context.Context, int64) ([]models.TransactionLogEntry, error) {
	return nil, nil
}

// signStripePayload builds a valid Stripe-Signature header for the payload.
func signStripePayload(secret, payload string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func stripeEventPayload(eventType, objectID, transactionID string) string {
	return fmt.Sprintf(
		`{"id":"evt_1","api_version":%q,"type":%q,"data":{"object":{"id":%q,"metadata":{"transaction_id":%q}}}}`,
		stripe.APIVersion, eventType, objectID, transactionID,
	)
}

func newWebhookHarness(order *models.Order) (*gin.Engine, *memoryOrderRepo, *recordingLogRepo) {
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()
	orders := &memoryOrderRepo{order: order}
	logRepo := &recordingLogRepo{}

	wc := &WebhookController{
		Stripe: services.NewStripeService("whsec_test"),
		Orders: orders,
		TxLog:  services.NewTransactionLogger(logRepo, log),
		Events: services.NewEventPublisher(nil, nil, "", log),
		Logger: log,
	}

	r := gin.New()
	r.POST("/webhooks/stripe", wc.StripeWebhook)
	return r, orders, logRepo
}

func postSignedWebhook(r *gin.Engine, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(payload))
	req.Header.Set("Stripe-Signature", signStripePayload("whsec_test", payload))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStripeWebhook_PaymentSucceededMarksOrderPaid(t *testing.T) {
	order := &models.Order{ID: uuid.New(), TransactionID: "tx_1", TotalCents: 4999}
	r, orders, _ := newWebhookHarness(order)

	w := postSignedWebhook(r, stripeEventPayload("payment_intent.succeeded", "pi_1", "tx_1"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, orders.updates, 1)
	assert.Equal(t, models.PaymentStatusPaid, orders.updates[0]["payment_status"])
	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
}

func TestStripeWebhook_DuplicatePaymentEventIsSkipped(t *testing.T) {
	order := &models.Order{ID: uuid.New(), TransactionID: "tx_1", PaymentStatus: models.PaymentStatusPaid}
	r, orders, _ := newWebhookHarness(order)

	w := postSignedWebhook(r, stripeEventPayload("payment_intent.succeeded", "pi_1", "tx_1"))

	assert.Equal(t, http.StatusOK, w.Code, "redelivered events are acked")
	assert.Empty(t, orders.updates, "an order already paid must not be rewritten")
}

func TestStripeWebhook_PaymentFailedMarksOrderFailed(t *testing.T) {
	order := &models.Order{ID: uuid.New(), TransactionID: "tx_1", PaymentStatus: models.PaymentStatusPaid}
	r, orders, _ := newWebhookHarness(order)

	w := postSignedWebhook(r, stripeEventPayload("payment_intent.payment_failed", "pi_1", "tx_1"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, orders.updates, 1)
	assert.Equal(t, models.PaymentStatusFailed, orders.updates[0]["payment_status"])
	assert.Equal(t, models.OrderStatusFailed, orders.updates[0]["status"])
}

func TestStripeWebhook_ChargeRefundedLogsRefundExactlyOnce(t *testing.T) {
	order := &models.Order{
		ID:            uuid.New(),
		CustomerID:    "user_1",
		TransactionID: "tx_1",
		TotalCents:    4999,
		PaymentStatus: models.PaymentStatusPaid,
	}
	r, orders, logRepo := newWebhookHarness(order)
	payload := stripeEventPayload("charge.refunded", "ch_1", "tx_1")

	w := postSignedWebhook(r, payload)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.PaymentStatusRefunded, order.PaymentStatus)
	assert.Len(t, logRepo.entries, 1)
	entry := logRepo.entries[0]
	assert.Equal(t, models.EventRefundIssued, entry.Type)
	assert.Equal(t, models.LogStatusSuccess, entry.Status)
	assert.Equal(t, "tx_1", entry.Data.TransactionID)
	assert.Equal(t, order.ID.String(), entry.Data.OrderID)

	// Stripe redelivers; the second delivery must not double-log the refund.
	w = postSignedWebhook(r, payload)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, logRepo.entries, 1)
	assert.Len(t, orders.updates, 1)
}

func TestStripeWebhook_UnknownTransactionIsIgnored(t *testing.T) {
	r, orders, logRepo := newWebhookHarness(nil)

	w := postSignedWebhook(r, stripeEventPayload("charge.refunded", "ch_1", "tx_missing"))

	assert.Equal(t, http.StatusOK, w.Code, "unmatched events are acked so Stripe stops retrying")
	assert.Empty(t, orders.updates)
	assert.Empty(t, logRepo.entries)
}
