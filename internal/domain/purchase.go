package domain

import (
	"time"

	"github.com/google/uuid"
)

// Purchase is an entry of the append-only ledger.
// GatewaySessionID is unique across all purchases.
type Purchase struct {
	ID               uuid.UUID
	BuyerID          string
	ProjectID        uuid.UUID
	GatewaySessionID string
	Status           PurchaseStatus
	PricePaid        Money

	CreatedAt time.Time
}
