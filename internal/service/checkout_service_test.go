package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nikolayk812/codemarket/internal/domain"
	"github.com/nikolayk812/codemarket/internal/port/porttest"
	"github.com/nikolayk812/codemarket/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCheckout(t *testing.T) {
	projects := porttest.NewProjects(nil)
	gateway := &porttest.Gateway{}

	_, err := service.NewCheckout(nil, gateway, "https://market.test", discardLogger())
	require.EqualError(t, err, "projects is nil")

	_, err = service.NewCheckout(projects, nil, "https://market.test", discardLogger())
	require.EqualError(t, err, "gateway is nil")

	_, err = service.NewCheckout(projects, gateway, "market.test", discardLogger())
	require.Error(t, err)
}

func TestBuyProject(t *testing.T) {
	seller := randomUser()
	buyer := randomUser()

	tests := []struct {
		name        string
		buyer       domain.User
		inputFunc   func(p domain.Project) domain.CheckoutInput
		createFunc  func(ctx context.Context, req domain.CheckoutRequest) (domain.CheckoutSession, error)
		wantErrorIs error
		wantError   string
	}{
		{
			name:  "buy project: ok",
			buyer: buyer,
			inputFunc: func(p domain.Project) domain.CheckoutInput {
				return domain.CheckoutInput{ProjectID: p.ID.String()}
			},
		},
		{
			name:  "anonymous buyer: authentication required",
			buyer: domain.User{},
			inputFunc: func(p domain.Project) domain.CheckoutInput {
				return domain.CheckoutInput{ProjectID: p.ID.String()}
			},
			wantErrorIs: domain.ErrAuthenticationRequired,
		},
		{
			name:  "project id not uuid: invalid input",
			buyer: buyer,
			inputFunc: func(domain.Project) domain.CheckoutInput {
				return domain.CheckoutInput{ProjectID: "not-a-uuid"}
			},
			wantErrorIs: domain.ErrInvalidInput,
		},
		{
			name:  "empty project id: invalid input",
			buyer: buyer,
			inputFunc: func(domain.Project) domain.CheckoutInput {
				return domain.CheckoutInput{}
			},
			wantErrorIs: domain.ErrInvalidInput,
		},
		{
			name:  "unknown project: not found",
			buyer: buyer,
			inputFunc: func(domain.Project) domain.CheckoutInput {
				return domain.CheckoutInput{ProjectID: "6f1c1b1e-5b0a-4d55-9d2b-0b7c1f3a9e11"}
			},
			wantErrorIs: domain.ErrProjectNotFound,
		},
		{
			name:  "seller buys own project: forbidden",
			buyer: seller,
			inputFunc: func(p domain.Project) domain.CheckoutInput {
				return domain.CheckoutInput{ProjectID: p.ID.String()}
			},
			wantErrorIs: domain.ErrForbidden,
		},
		{
			name:  "gateway not configured: configuration error",
			buyer: buyer,
			inputFunc: func(p domain.Project) domain.CheckoutInput {
				return domain.CheckoutInput{ProjectID: p.ID.String()}
			},
			createFunc: func(context.Context, domain.CheckoutRequest) (domain.CheckoutSession, error) {
				return domain.CheckoutSession{}, domain.ErrGatewayNotConfigured
			},
			wantErrorIs: domain.ErrGatewayNotConfigured,
		},
		{
			name:  "gateway fails: provider text hidden",
			buyer: buyer,
			inputFunc: func(p domain.Project) domain.CheckoutInput {
				return domain.CheckoutInput{ProjectID: p.ID.String()}
			},
			createFunc: func(context.Context, domain.CheckoutRequest) (domain.CheckoutSession, error) {
				return domain.CheckoutSession{}, errors.New("session.New: card_declined: No such price")
			},
			wantError: "payment gateway error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()

			projects := porttest.NewProjects(nil)
			gateway := &porttest.Gateway{CreateFunc: tt.createFunc}

			svc, err := service.NewCheckout(projects, gateway, "https://market.test", discardLogger())
			require.NoError(t, err)

			project := newProject(t, projects, seller, "49.90")

			url, err := svc.BuyProject(ctx, tt.buyer, tt.inputFunc(project))
			if tt.wantErrorIs != nil || tt.wantError != "" {
				if tt.wantErrorIs != nil {
					require.ErrorIs(t, err, tt.wantErrorIs)
				}
				if tt.wantError != "" {
					require.EqualError(t, err, tt.wantError)
				}
				assert.Empty(t, url)
				return
			}
			require.NoError(t, err)

			requests := gateway.Requests()
			require.Len(t, requests, 1)
			req := requests[0]

			assert.True(t, strings.HasPrefix(url, "https://checkout.test/pay/cs_test_"), url)
			assert.Equal(t, int64(4990), req.UnitAmount)
			assert.Equal(t, "brl", req.Currency)
			assert.Equal(t, int64(1), req.Quantity)
			assert.Equal(t, project.Name, req.ItemName)
			assert.Equal(t, project.Description, req.ItemDesc)
			assert.Equal(t, tt.buyer.Email, req.CustomerEmail)
			assert.Equal(t, map[string]string{
				domain.MetadataProjectID: project.ID.String(),
				domain.MetadataUserID:    tt.buyer.ID,
			}, req.Metadata)
			assert.Equal(t, "https://market.test/?success=true", req.SuccessURL)
			assert.Equal(t, "https://market.test/", req.CancelURL)
		})
	}
}

func TestBuyProjectUnitAmountRounding(t *testing.T) {
	tests := []struct {
		price string
		want  int64
	}{
		{price: "49.90", want: 4990},
		{price: "0", want: 0},
		{price: "0.01", want: 1},
		{price: "1234.5", want: 123450},
	}

	seller := randomUser()
	buyer := randomUser()

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			projects := porttest.NewProjects(nil)
			gateway := &porttest.Gateway{}

			svc, err := service.NewCheckout(projects, gateway, "https://market.test/shop/", discardLogger())
			require.NoError(t, err)

			project := newProject(t, projects, seller, tt.price)

			_, err = svc.BuyProject(context.Background(), buyer, domain.CheckoutInput{ProjectID: project.ID.String()})
			require.NoError(t, err)

			requests := gateway.Requests()
			require.Len(t, requests, 1)
			assert.Equal(t, tt.want, requests[0].UnitAmount)
			assert.Equal(t, "https://market.test/shop/?success=true", requests[0].SuccessURL)
			assert.Equal(t, "https://market.test/shop/", requests[0].CancelURL)
		})
	}
}
