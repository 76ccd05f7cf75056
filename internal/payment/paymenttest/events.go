// Package paymenttest builds signed Stripe webhook deliveries for tests.
package paymenttest

import (
	"encoding/json"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

type CheckoutSession struct {
	ID          string
	AmountTotal int64
	Currency    string
	Metadata    map[string]string
}

func CompletedEvent(cs CheckoutSession) []byte {
	object := map[string]any{
		"id":             cs.ID,
		"object":         "checkout.session",
		"mode":           "payment",
		"payment_status": "paid",
		"amount_total":   cs.AmountTotal,
		"currency":       cs.Currency,
	}
	if cs.Metadata != nil {
		object["metadata"] = cs.Metadata
	}

	return Event(string(stripe.EventTypeCheckoutSessionCompleted), object)
}

func Event(eventType string, object map[string]any) []byte {
	event := map[string]any{
		"id":          "evt_" + gofakeit.LetterN(24),
		"object":      "event",
		"type":        eventType,
		"api_version": stripe.APIVersion,
		"created":     time.Now().Unix(),
		"data": map[string]any{
			"object": object,
		},
	}

	payload, err := json.Marshal(event)
	if err != nil {
		panic(err)
	}

	return payload
}

// Sign returns the Stripe-Signature header value for payload.
func Sign(payload []byte, secret string) string {
	return SignAt(payload, secret, time.Now())
}

func SignAt(payload []byte, secret string, at time.Time) string {
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: at,
	})
	return signed.Header
}
