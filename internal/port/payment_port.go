package port

import (
	"context"

	"github.com/nikolayk812/codemarket/internal/domain"
)

type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (domain.CheckoutSession, error)

	// ParseEvent verifies the signature over the raw payload before decoding it.
	ParseEvent(payload []byte, signature string) (domain.PaymentEvent, error)
}
