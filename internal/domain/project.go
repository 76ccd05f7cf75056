package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Project struct {
	ID          uuid.UUID
	SellerID    string
	Name        string
	Description string
	Price       Money
	ImageURL    string
	FileURL     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Project) IsOwnedBy(userID string) bool {
	return userID != "" && p.SellerID == userID
}

type ProjectDetails struct {
	Project Project
	Reviews []Review
}

// AverageRating is zero when there are no reviews.
func (d ProjectDetails) AverageRating() decimal.Decimal {
	if len(d.Reviews) == 0 {
		return decimal.Zero
	}

	total := decimal.Zero
	for _, r := range d.Reviews {
		total = total.Add(decimal.NewFromInt(int64(r.Rating)))
	}

	return total.DivRound(decimal.NewFromInt(int64(len(d.Reviews))), 1)
}
