package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/nikolayk812/codemarket/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
)

func randomProject() domain.Project {
	return domain.Project{
		SellerID:    gofakeit.UUID(),
		Name:        gofakeit.AppName(),
		Description: gofakeit.Sentence(12),
		Price:       randomPrice(),
		ImageURL:    gofakeit.URL(),
		FileURL:     gofakeit.URL(),
	}
}

func randomPrice() domain.Money {
	return domain.Money{
		Amount:   decimal.NewFromFloat(gofakeit.Price(1, 500)).Round(2),
		Currency: currency.BRL,
	}
}

func randomPurchase(projectID uuid.UUID) domain.Purchase {
	return domain.Purchase{
		BuyerID:          gofakeit.UUID(),
		ProjectID:        projectID,
		GatewaySessionID: "cs_test_" + gofakeit.LetterN(24),
		Status:           domain.PurchaseStatusPaid,
		PricePaid:        randomPrice(),
	}
}

func randomReview(projectID uuid.UUID) domain.Review {
	return domain.Review{
		ProjectID:  projectID,
		AuthorID:   gofakeit.UUID(),
		AuthorName: gofakeit.Name(),
		Rating:     gofakeit.Number(domain.MinRating, domain.MaxRating),
		Comment:    gofakeit.Sentence(8),
	}
}

var currencyComparer = cmp.Comparer(func(x, y currency.Unit) bool {
	return x.String() == y.String()
})

func assertProject(t *testing.T, expected, actual domain.Project) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.Project{}, "ID", "CreatedAt", "UpdatedAt"),
		currencyComparer,
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)
}

func assertPurchase(t *testing.T, expected, actual domain.Purchase) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.Purchase{}, "ID", "CreatedAt"),
		currencyComparer,
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)
}

func assertReviews(t *testing.T, expected, actual []domain.Review) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.Review{}, "ID", "CreatedAt"),
		cmpopts.SortSlices(func(a, b domain.Review) bool { return a.AuthorID < b.AuthorID }),
		cmpopts.EquateEmpty(),
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)
}
