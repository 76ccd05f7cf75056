package domain

import "errors"

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrInvalidInput           = errors.New("invalid input")
	ErrForbidden              = errors.New("forbidden")

	ErrProjectNotFound  = errors.New("project not found")
	ErrPurchaseNotFound = errors.New("purchase not found")

	// ErrGatewayNotConfigured is returned when the payment provider credential is missing.
	ErrGatewayNotConfigured = errors.New("payment gateway is not configured")
	// ErrPaymentGateway never carries the provider's error text.
	ErrPaymentGateway = errors.New("payment gateway error")
	// ErrWebhookIntegrity covers a bad signature and incomplete event metadata.
	ErrWebhookIntegrity = errors.New("webhook integrity check failed")
)
