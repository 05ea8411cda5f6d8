// Package moneypkg provides helpers for decimal money amounts.
//
// Amounts travel through the application as decimal strings and are only
// ever manipulated through shopspring/decimal to avoid float drift.
package moneypkg

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrMalformed indicates an amount that does not parse as a decimal.
	ErrMalformed = errors.New("malformed amount")
	// ErrNotPositive indicates a zero or negative amount.
	ErrNotPositive = errors.New("amount must be positive")
)

// ParsePositive parses s and ensures it is strictly positive.
func ParsePositive(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, ErrMalformed
	}

	if d.LessThanOrEqual(decimal.Zero) {
		return d, ErrNotPositive
	}

	return d, nil
}

// Neg returns the additive inverse of the amount string in canonical form.
// Prefixing the raw string would produce garbage for inputs carrying an
// explicit sign, such as "+5".
func Neg(s string) string {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return "-" + s
	}

	return d.Neg().String()
}

// LessThan reports whether decimal string a is less than decimal string b.
func LessThan(a, b string) (bool, error) {
	da, err := decimal.NewFromString(a)
	if err != nil {
		return false, ErrMalformed
	}

	db, err := decimal.NewFromString(b)
	if err != nil {
		return false, ErrMalformed
	}

	return da.LessThan(db), nil
}

// IsZero reports whether s parses to exactly zero.
func IsZero(s string) (bool, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false, ErrMalformed
	}

	return d.IsZero(), nil
}
