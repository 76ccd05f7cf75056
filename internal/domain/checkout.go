package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Metadata keys attached to a checkout session. The gateway echoes them back in the
// completion event; they are the only link between a payment and the buyer.
const (
	MetadataProjectID = "projectId"
	MetadataUserID    = "userId"
)

type CheckoutInput struct {
	ProjectID string
}

func (in CheckoutInput) ParseProjectID() (uuid.UUID, error) {
	s := strings.TrimSpace(in.ProjectID)
	if s == "" {
		return uuid.Nil, fmt.Errorf("%w: projectId is required", ErrInvalidInput)
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: projectId[%s] is not valid", ErrInvalidInput, s)
	}

	return id, nil
}

// CheckoutRequest describes a hosted payment session with a single line item.
type CheckoutRequest struct {
	CustomerEmail string
	ItemName      string
	ItemDesc      string
	UnitAmount    int64 // minor units
	Currency      string
	Quantity      int64
	Metadata      map[string]string
	SuccessURL    string
	CancelURL     string
}

type CheckoutSession struct {
	ID  string
	URL string
}
