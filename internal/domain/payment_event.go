package domain

type PaymentEventType string

const (
	PaymentEventCheckoutCompleted PaymentEventType = "checkout.session.completed"
)

// PaymentEvent is a verified gateway event. Session fields are only
// populated for checkout session events.
type PaymentEvent struct {
	ID   string
	Type PaymentEventType

	SessionID   string
	AmountTotal int64 // minor units
	Currency    string
	Metadata    map[string]string
}
