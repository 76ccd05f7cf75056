package service_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/codemarket/internal/domain"
	"github.com/nikolayk812/codemarket/internal/port/porttest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func randomUser() domain.User {
	return domain.User{
		ID:    gofakeit.UUID(),
		Email: gofakeit.Email(),
		Name:  gofakeit.Name(),
	}
}

func newProject(t *testing.T, projects *porttest.Projects, seller domain.User, price string) domain.Project {
	t.Helper()

	p := domain.Project{
		SellerID:    seller.ID,
		Name:        gofakeit.AppName(),
		Description: gofakeit.Sentence(8),
		Price: domain.Money{
			Amount:   decimal.RequireFromString(price),
			Currency: currency.BRL,
		},
		ImageURL: gofakeit.URL(),
		FileURL:  gofakeit.URL(),
	}

	id, err := projects.InsertProject(context.Background(), p)
	require.NoError(t, err)

	p, err = projects.GetProject(context.Background(), id)
	require.NoError(t, err)

	return p
}

func upload(name string, size int) *domain.Upload {
	return &domain.Upload{
		Filename: name,
		Size:     int64(size),
		Body:     bytes.NewReader(make([]byte, size)),
	}
}
