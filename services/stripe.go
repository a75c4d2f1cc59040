package services

import (
	"bytes"
	"io"
	"net/http"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/webhook"
)

// StripeService verifies and parses asynchronous payment confirmations
// arriving on the webhook endpoint.
type StripeService struct {
	WebhookKey string
}

func NewStripeService(webhookKey string) *StripeService {
	return &StripeService{WebhookKey: webhookKey}
}

// ParseWebhook verifies the Stripe-Signature header against the shared
// secret and decodes the event. A signature mismatch returns an error and
// must produce no state change in the caller.
func (s *StripeService) ParseWebhook(r *http.Request) (stripe.Event, error) {
	var event stripe.Event
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		return event, err
	}
	r.Body = io.NopCloser(bytes.NewBuffer(payload))
	sigHeader := r.Header.Get("Stripe-Signature")
	return webhook.ConstructEvent(payload, sigHeader, s.WebhookKey)
}
