package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/codemarket/internal/domain"
	"github.com/nikolayk812/codemarket/internal/port"
)

type PurchaseService struct {
	purchases port.PurchaseRepository
}

func NewPurchase(purchases port.PurchaseRepository) (*PurchaseService, error) {
	if purchases == nil {
		return nil, errors.New("purchases is nil")
	}

	return &PurchaseService{purchases: purchases}, nil
}

// ListPurchases returns the buyer's ledger entries, newest first.
func (s *PurchaseService) ListPurchases(ctx context.Context, buyer domain.User) ([]domain.Purchase, error) {
	if !buyer.IsAuthenticated() {
		return nil, domain.ErrAuthenticationRequired
	}

	purchases, err := s.purchases.ListPurchasesByBuyer(ctx, buyer.ID)
	if err != nil {
		return nil, fmt.Errorf("purchases.ListPurchasesByBuyer: %w", err)
	}
	return purchases, nil
}
