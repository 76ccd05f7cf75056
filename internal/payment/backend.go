package payment

import (
	"fmt"
	"log/slog"

	"github.com/stripe/stripe-go/v82"
)

// NewBackend returns the Stripe API backend with request retries and the
// client's own diagnostics routed to log.
func NewBackend(maxNetworkRetries int64, log *slog.Logger) stripe.Backend {
	return stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(maxNetworkRetries),
		LeveledLogger:     leveledLogger{log: log.With("component", "stripe")},
	})
}

type leveledLogger struct {
	log *slog.Logger
}

func (l leveledLogger) Debugf(format string, v ...any) {
	l.log.Debug(fmt.Sprintf(format, v...))
}

func (l leveledLogger) Infof(format string, v ...any) {
	l.log.Debug(fmt.Sprintf(format, v...))
}

func (l leveledLogger) Warnf(format string, v ...any) {
	l.log.Warn(fmt.Sprintf(format, v...))
}

func (l leveledLogger) Errorf(format string, v ...any) {
	l.log.Error(fmt.Sprintf(format, v...))
}
