package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// maxPrice is the exclusive upper bound of a stored price, NUMERIC(12,2).
var maxPrice = decimal.New(1, 10)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// MinorUnits converts the amount into the currency's smallest unit (cents for BRL),
// rounding to the nearest integer.
func (m Money) MinorUnits() int64 {
	return m.Amount.Shift(currencyScale(m.Currency)).Round(0).IntPart()
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(currencyScale(m.Currency)), m.Currency)
}

func MoneyFromMinorUnits(minor int64, cur currency.Unit) Money {
	return Money{
		Amount:   decimal.New(minor, -currencyScale(cur)),
		Currency: cur,
	}
}

// ParsePrice parses a user supplied decimal price, rejecting non-numeric,
// negative, over-precise and out of range values.
func ParsePrice(s string, cur currency.Unit) (Money, error) {
	var m Money

	s = strings.TrimSpace(s)
	if s == "" {
		return m, fmt.Errorf("%w: price is required", ErrInvalidInput)
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return m, fmt.Errorf("%w: price[%s] is not a number", ErrInvalidInput, s)
	}

	if amount.IsNegative() {
		return m, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	if amount.GreaterThanOrEqual(maxPrice) {
		return m, fmt.Errorf("%w: price must be less than %s", ErrInvalidInput, maxPrice.String())
	}

	scale := currencyScale(cur)
	if !amount.Equal(amount.Round(scale)) {
		return m, fmt.Errorf("%w: price has more than %d decimal places", ErrInvalidInput, scale)
	}

	return Money{Amount: amount, Currency: cur}, nil
}

// ParseCurrency accepts ISO codes in any letter case, as payment providers send them lowercase.
func ParseCurrency(s string) (currency.Unit, error) {
	cur, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", s, err)
	}
	return cur, nil
}

func currencyScale(cur currency.Unit) int32 {
	scale, _ := currency.Standard.Rounding(cur)
	return int32(scale)
}
