package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/codemarket/internal/domain"
)

type PurchaseRepository interface {
	// InsertPurchase is idempotent on GatewaySessionID: for an already recorded
	// session it returns the existing ID and inserted=false.
	InsertPurchase(ctx context.Context, purchase domain.Purchase) (id uuid.UUID, inserted bool, err error)

	GetPurchaseBySessionID(ctx context.Context, sessionID string) (domain.Purchase, error)
	ListPurchasesByBuyer(ctx context.Context, buyerID string) ([]domain.Purchase, error)
}
