package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Label values for CheckoutSessions.
const (
	CheckoutCreated       = "created"
	CheckoutNotConfigured = "not_configured"
	CheckoutGatewayError  = "gateway_error"
)

// Label values for WebhookEvents.
const (
	WebhookRecorded  = "recorded"
	WebhookDuplicate = "duplicate"
	WebhookIgnored   = "ignored"
	WebhookRejected  = "rejected"
	WebhookFailed    = "failed"
)

var (
	CheckoutSessions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_checkout_sessions_total",
			Help: "Number of checkout session attempts by result",
		},
		[]string{"result"},
	)

	WebhookEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_webhook_events_total",
			Help: "Number of payment webhook deliveries by outcome",
		},
		[]string{"outcome"},
	)

	WebhookProcessingTime = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name: "marketplace_webhook_processing_seconds",
			Help: "Time taken to verify and record a payment webhook",
		},
	)
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(CheckoutSessions, WebhookEvents, WebhookProcessingTime)
	})
}
