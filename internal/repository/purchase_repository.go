package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/codemarket/internal/db"
	"github.com/nikolayk812/codemarket/internal/domain"
	"github.com/nikolayk812/codemarket/internal/port"
)

type purchaseRepository struct {
	q *db.Queries
}

func NewPurchase(pool *pgxpool.Pool) port.PurchaseRepository {
	return &purchaseRepository{
		q: db.New(pool),
	}
}

func NewPurchaseWithTx(tx pgx.Tx) port.PurchaseRepository {
	return &purchaseRepository{
		q: db.New(tx),
	}
}

func (r *purchaseRepository) InsertPurchase(ctx context.Context, purchase domain.Purchase) (uuid.UUID, bool, error) {
	if purchase.GatewaySessionID == "" {
		return uuid.Nil, false, errors.New("gatewaySessionID is empty")
	}

	if purchase.BuyerID == "" {
		return uuid.Nil, false, errors.New("buyerID is empty")
	}

	if purchase.ProjectID == uuid.Nil {
		return uuid.Nil, false, errors.New("projectID is empty")
	}

	if purchase.Status == "" {
		return uuid.Nil, false, errors.New("status is empty")
	}

	purchaseID, err := r.q.InsertPurchase(ctx, db.InsertPurchaseParams{
		BuyerID:           purchase.BuyerID,
		ProjectID:         purchase.ProjectID,
		GatewaySessionID:  purchase.GatewaySessionID,
		Status:            string(purchase.Status),
		PricePaidAmount:   purchase.PricePaid.Amount,
		PricePaidCurrency: purchase.PricePaid.Currency.String(),
	})
	if err == nil {
		return purchaseID, true, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, false, fmt.Errorf("q.InsertPurchase: %w", err)
	}

	// ON CONFLICT DO NOTHING returned no row: the session is already recorded
	existing, err := r.q.GetPurchaseBySessionID(ctx, purchase.GatewaySessionID)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("q.GetPurchaseBySessionID: %w", err)
	}

	return existing.ID, false, nil
}

func (r *purchaseRepository) GetPurchaseBySessionID(ctx context.Context, sessionID string) (domain.Purchase, error) {
	var p domain.Purchase

	dbPurchase, err := r.q.GetPurchaseBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, fmt.Errorf("q.GetPurchaseBySessionID: %w", domain.ErrPurchaseNotFound)
		}
		return p, fmt.Errorf("q.GetPurchaseBySessionID: %w", err)
	}

	p, err = mapDBPurchaseToDomain(dbPurchase)
	if err != nil {
		return p, fmt.Errorf("mapDBPurchaseToDomain: %w", err)
	}

	return p, nil
}

func (r *purchaseRepository) ListPurchasesByBuyer(ctx context.Context, buyerID string) ([]domain.Purchase, error) {
	if buyerID == "" {
		return nil, errors.New("buyerID is empty")
	}

	dbPurchases, err := r.q.ListPurchasesByBuyer(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("q.ListPurchasesByBuyer: %w", err)
	}

	purchases := make([]domain.Purchase, 0, len(dbPurchases))
	for _, row := range dbPurchases {
		p, err := mapDBPurchaseToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapDBPurchaseToDomain: %w", err)
		}
		purchases = append(purchases, p)
	}

	return purchases, nil
}

func mapDBPurchaseToDomain(row db.Purchase) (domain.Purchase, error) {
	parsedCurrency, err := domain.ParseCurrency(row.PricePaidCurrency)
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("domain.ParseCurrency: %w", err)
	}

	status, err := domain.ToPurchaseStatus(row.Status)
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("domain.ToPurchaseStatus[%s]: %w", row.Status, err)
	}

	return domain.Purchase{
		ID:               row.ID,
		BuyerID:          row.BuyerID,
		ProjectID:        row.ProjectID,
		GatewaySessionID: row.GatewaySessionID,
		Status:           status,
		PricePaid:        domain.Money{Amount: row.PricePaidAmount, Currency: parsedCurrency},
		CreatedAt:        row.CreatedAt,
	}, nil
}
