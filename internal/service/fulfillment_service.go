package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nikolayk812/codemarket/internal/domain"
	"github.com/nikolayk812/codemarket/internal/metrics"
	"github.com/nikolayk812/codemarket/internal/port"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/currency"
)

type WebhookResult string

const (
	WebhookRecorded  WebhookResult = "recorded"
	WebhookDuplicate WebhookResult = "duplicate"
	WebhookIgnored   WebhookResult = "ignored"
)

type FulfillmentService struct {
	purchases       port.PurchaseRepository
	gateway         port.PaymentGateway
	defaultCurrency currency.Unit
	log             *slog.Logger
}

// NewFulfillment uses defaultCurrency for completed sessions that carry no currency.
func NewFulfillment(purchases port.PurchaseRepository, gateway port.PaymentGateway, defaultCurrency currency.Unit, log *slog.Logger) (*FulfillmentService, error) {
	if purchases == nil {
		return nil, errors.New("purchases is nil")
	}
	if gateway == nil {
		return nil, errors.New("gateway is nil")
	}
	if log == nil {
		return nil, errors.New("log is nil")
	}

	return &FulfillmentService{
		purchases:       purchases,
		gateway:         gateway,
		defaultCurrency: defaultCurrency,
		log:             log,
	}, nil
}

// HandleWebhook verifies a gateway delivery and records the purchase it confirms.
// Verification failures and incomplete metadata return domain.ErrWebhookIntegrity
// and write nothing. A repeated delivery of the same session is a successful no-op.
func (s *FulfillmentService) HandleWebhook(ctx context.Context, payload []byte, signature string) (WebhookResult, error) {
	timer := prometheus.NewTimer(metrics.WebhookProcessingTime)
	defer timer.ObserveDuration()

	event, err := s.gateway.ParseEvent(payload, signature)
	if err != nil {
		metrics.WebhookEvents.WithLabelValues(metrics.WebhookRejected).Inc()
		s.log.Warn("webhook rejected",
			"method", "FulfillmentService.HandleWebhook",
			"error", err)
		return "", fmt.Errorf("gateway.ParseEvent: %w", err)
	}

	if event.Type != domain.PaymentEventCheckoutCompleted {
		metrics.WebhookEvents.WithLabelValues(metrics.WebhookIgnored).Inc()
		s.log.Debug("webhook event ignored",
			"method", "FulfillmentService.HandleWebhook",
			"eventID", event.ID,
			"type", event.Type)
		return WebhookIgnored, nil
	}

	purchase, err := s.purchaseFromEvent(event)
	if err != nil {
		metrics.WebhookEvents.WithLabelValues(metrics.WebhookRejected).Inc()
		s.log.Warn("completed session rejected",
			"method", "FulfillmentService.HandleWebhook",
			"eventID", event.ID,
			"sessionID", event.SessionID,
			"error", err)
		return "", err
	}

	id, inserted, err := s.purchases.InsertPurchase(ctx, purchase)
	if err != nil {
		metrics.WebhookEvents.WithLabelValues(metrics.WebhookFailed).Inc()
		s.log.Error("purchase not recorded",
			"method", "FulfillmentService.HandleWebhook",
			"eventID", event.ID,
			"sessionID", event.SessionID,
			"error", err)
		return "", fmt.Errorf("purchases.InsertPurchase: %w", err)
	}

	if !inserted {
		metrics.WebhookEvents.WithLabelValues(metrics.WebhookDuplicate).Inc()
		s.log.Info("purchase already recorded",
			"method", "FulfillmentService.HandleWebhook",
			"purchaseID", id,
			"sessionID", event.SessionID)
		return WebhookDuplicate, nil
	}

	metrics.WebhookEvents.WithLabelValues(metrics.WebhookRecorded).Inc()
	s.log.Info("purchase recorded",
		"method", "FulfillmentService.HandleWebhook",
		"purchaseID", id,
		"sessionID", event.SessionID,
		"buyerID", purchase.BuyerID,
		"projectID", purchase.ProjectID,
		"pricePaid", purchase.PricePaid.String())

	return WebhookRecorded, nil
}

func (s *FulfillmentService) purchaseFromEvent(event domain.PaymentEvent) (domain.Purchase, error) {
	var p domain.Purchase

	if event.SessionID == "" {
		return p, fmt.Errorf("%w: session id is missing", domain.ErrWebhookIntegrity)
	}

	userID := event.Metadata[domain.MetadataUserID]
	if userID == "" {
		return p, fmt.Errorf("%w: metadata %s is missing", domain.ErrWebhookIntegrity, domain.MetadataUserID)
	}

	rawProjectID := event.Metadata[domain.MetadataProjectID]
	if rawProjectID == "" {
		return p, fmt.Errorf("%w: metadata %s is missing", domain.ErrWebhookIntegrity, domain.MetadataProjectID)
	}

	projectID, err := uuid.Parse(rawProjectID)
	if err != nil {
		return p, fmt.Errorf("%w: metadata %s[%s] is not valid", domain.ErrWebhookIntegrity, domain.MetadataProjectID, rawProjectID)
	}

	if event.AmountTotal < 0 {
		return p, fmt.Errorf("%w: amount_total is negative", domain.ErrWebhookIntegrity)
	}

	cur := s.defaultCurrency
	if event.Currency != "" {
		if cur, err = domain.ParseCurrency(event.Currency); err != nil {
			return p, fmt.Errorf("%w: %w", domain.ErrWebhookIntegrity, err)
		}
	}

	return domain.Purchase{
		BuyerID:          userID,
		ProjectID:        projectID,
		GatewaySessionID: event.SessionID,
		Status:           domain.PurchaseStatusPaid,
		PricePaid:        domain.MoneyFromMinorUnits(event.AmountTotal, cur),
	}, nil
}
