package domain

import (
	"errors"
	"strings"
)

const (
	DefaultSearchLimit = 50
	MaxSearchLimit     = 200
)

// ProjectFilter has AND semantics across fields.
// Query matches name OR description, case-insensitively.
type ProjectFilter struct {
	Query    string
	SellerID string
	Limit    int
	Offset   int
}

func (f ProjectFilter) Validate() error {
	if f.Limit < 0 {
		return errors.New("limit is negative")
	}

	if f.Limit > MaxSearchLimit {
		return errors.New("limit is too large")
	}

	if f.Offset < 0 {
		return errors.New("offset is negative")
	}

	return nil
}

// Normalize trims the query and applies the default limit.
func (f ProjectFilter) Normalize() ProjectFilter {
	f.Query = strings.TrimSpace(f.Query)
	f.SellerID = strings.TrimSpace(f.SellerID)
	if f.Limit == 0 {
		f.Limit = DefaultSearchLimit
	}
	return f
}
