package domain

import "errors"

type PurchaseStatus string

// remember to add new statuses to the validPurchaseStatuses map
const (
	PurchaseStatusPaid PurchaseStatus = "paid"
)

var validPurchaseStatuses = map[PurchaseStatus]struct{}{
	PurchaseStatusPaid: {},
}

func ToPurchaseStatus(s string) (PurchaseStatus, error) {
	status := PurchaseStatus(s)
	if _, ok := validPurchaseStatuses[status]; ok {
		return status, nil
	}

	return "", errors.New("invalid purchase status")
}
