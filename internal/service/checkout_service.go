package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/nikolayk812/codemarket/internal/domain"
	"github.com/nikolayk812/codemarket/internal/metrics"
	"github.com/nikolayk812/codemarket/internal/port"
)

type CheckoutService struct {
	projects port.ProjectRepository
	gateway  port.PaymentGateway
	baseURL  *url.URL
	log      *slog.Logger
}

func NewCheckout(projects port.ProjectRepository, gateway port.PaymentGateway, baseURL string, log *slog.Logger) (*CheckoutService, error) {
	if projects == nil {
		return nil, errors.New("projects is nil")
	}
	if gateway == nil {
		return nil, errors.New("gateway is nil")
	}
	if log == nil {
		return nil, errors.New("log is nil")
	}

	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("url.Parse: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("baseURL[%s] must be absolute", baseURL)
	}

	return &CheckoutService{
		projects: projects,
		gateway:  gateway,
		baseURL:  u,
		log:      log,
	}, nil
}

// BuyProject creates a hosted payment session for the project and returns the URL
// the buyer has to be redirected to. Nothing is stored locally: the purchase is
// recorded only when the gateway confirms the payment.
func (s *CheckoutService) BuyProject(ctx context.Context, buyer domain.User, in domain.CheckoutInput) (string, error) {
	if !buyer.IsAuthenticated() {
		return "", domain.ErrAuthenticationRequired
	}

	projectID, err := in.ParseProjectID()
	if err != nil {
		return "", err
	}

	project, err := s.projects.GetProject(ctx, projectID)
	if err != nil {
		return "", fmt.Errorf("projects.GetProject: %w", err)
	}

	if project.IsOwnedBy(buyer.ID) {
		return "", fmt.Errorf("%w: sellers cannot buy their own project", domain.ErrForbidden)
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, s.buildRequest(buyer, project))
	if err != nil {
		if errors.Is(err, domain.ErrGatewayNotConfigured) {
			metrics.CheckoutSessions.WithLabelValues(metrics.CheckoutNotConfigured).Inc()
			return "", err
		}

		metrics.CheckoutSessions.WithLabelValues(metrics.CheckoutGatewayError).Inc()
		s.log.Error("checkout session creation failed",
			"method", "CheckoutService.BuyProject",
			"projectID", project.ID,
			"buyerID", buyer.ID,
			"error", err)

		return "", domain.ErrPaymentGateway
	}

	metrics.CheckoutSessions.WithLabelValues(metrics.CheckoutCreated).Inc()
	s.log.Info("checkout session created",
		"method", "CheckoutService.BuyProject",
		"projectID", project.ID,
		"buyerID", buyer.ID,
		"sessionID", session.ID)

	return session.URL, nil
}

func (s *CheckoutService) buildRequest(buyer domain.User, project domain.Project) domain.CheckoutRequest {
	cancel := *s.baseURL
	cancel.Path = strings.TrimRight(cancel.Path, "/") + "/"
	cancel.RawQuery = ""
	cancel.Fragment = ""

	success := cancel
	success.RawQuery = "success=true"

	return domain.CheckoutRequest{
		CustomerEmail: buyer.Email,
		ItemName:      project.Name,
		ItemDesc:      project.Description,
		UnitAmount:    project.Price.MinorUnits(),
		Currency:      strings.ToLower(project.Price.Currency.String()),
		Quantity:      1,
		Metadata: map[string]string{
			domain.MetadataProjectID: project.ID.String(),
			domain.MetadataUserID:    buyer.ID,
		},
		SuccessURL: success.String(),
		CancelURL:  cancel.String(),
	}
}
