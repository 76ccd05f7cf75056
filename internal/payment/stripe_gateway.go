package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/codemarket/internal/domain"
	"github.com/nikolayk812/codemarket/internal/port"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

// SignatureHeader carries the webhook signature computed by Stripe.
const SignatureHeader = "Stripe-Signature"

type stripeGateway struct {
	secretKey     string
	webhookSecret string
	backend       stripe.Backend
	tolerance     time.Duration
}

type Option func(*stripeGateway)

// WithBackend replaces the HTTP backend, used to point the client at a stub server.
func WithBackend(b stripe.Backend) Option {
	return func(g *stripeGateway) {
		g.backend = b
	}
}

func WithTolerance(d time.Duration) Option {
	return func(g *stripeGateway) {
		g.tolerance = d
	}
}

// NewStripe returns a gateway even when secretKey is empty; session creation then
// fails with domain.ErrGatewayNotConfigured.
func NewStripe(secretKey, webhookSecret string, opts ...Option) port.PaymentGateway {
	g := &stripeGateway{
		secretKey:     secretKey,
		webhookSecret: webhookSecret,
		tolerance:     webhook.DefaultTolerance,
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.backend == nil {
		g.backend = stripe.GetBackend(stripe.APIBackend)
	}

	return g
}

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (domain.CheckoutSession, error) {
	var cs domain.CheckoutSession

	if g.secretKey == "" {
		return cs, domain.ErrGatewayNotConfigured
	}

	params := buildSessionParams(req)
	params.Context = ctx

	client := session.Client{B: g.backend, Key: g.secretKey}

	s, err := client.New(params)
	if err != nil {
		return cs, fmt.Errorf("session.New: %w", err)
	}

	if s.URL == "" {
		return cs, errors.New("session.New: empty checkout URL")
	}

	return domain.CheckoutSession{
		ID:  s.ID,
		URL: s.URL,
	}, nil
}

// ParseEvent fails closed: nothing from the payload is read before the signature is verified.
func (g *stripeGateway) ParseEvent(payload []byte, signature string) (domain.PaymentEvent, error) {
	var e domain.PaymentEvent

	if g.webhookSecret == "" {
		return e, fmt.Errorf("%w: webhook secret is not configured", domain.ErrWebhookIntegrity)
	}

	if signature == "" {
		return e, fmt.Errorf("%w: missing %s header", domain.ErrWebhookIntegrity, SignatureHeader)
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		Tolerance:                g.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return e, fmt.Errorf("%w: webhook.ConstructEvent: %w", domain.ErrWebhookIntegrity, err)
	}

	e = domain.PaymentEvent{
		ID:   event.ID,
		Type: domain.PaymentEventType(event.Type),
	}

	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		return e, nil
	}

	if event.Data == nil || len(event.Data.Raw) == 0 {
		return e, fmt.Errorf("%w: event has no data", domain.ErrWebhookIntegrity)
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return e, fmt.Errorf("%w: json.Unmarshal: %w", domain.ErrWebhookIntegrity, err)
	}

	e.SessionID = cs.ID
	e.AmountTotal = cs.AmountTotal
	e.Currency = string(cs.Currency)
	e.Metadata = cs.Metadata

	return e, nil
}

func buildSessionParams(req domain.CheckoutRequest) *stripe.CheckoutSessionParams {
	productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(req.ItemName),
	}
	// Stripe rejects an empty description
	if req.ItemDesc != "" {
		productData.Description = stripe.String(req.ItemDesc)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String(req.Currency),
					ProductData: productData,
					UnitAmount:  stripe.Int64(req.UnitAmount),
				},
				Quantity: stripe.Int64(req.Quantity),
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}

	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}

	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	return params
}
