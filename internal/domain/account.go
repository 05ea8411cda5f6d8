// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrFromAccountNotFound indicates that the source account of a transfer is not found.
	ErrFromAccountNotFound = errors.New("source account not found")
	// ErrToAccountNotFound indicates that the destination account of a transfer is not found.
	ErrToAccountNotFound = errors.New("destination account not found")
	// ErrInvalidAccountType indicates an unknown account type.
	ErrInvalidAccountType = errors.New("invalid account type")
)

// AccountType classifies an account. It is fixed at creation.
type AccountType string

// Supported account types.
const (
	AccountTypeSavings  AccountType = "SAVINGS"
	AccountTypeChecking AccountType = "CHECKING"
)

// Valid reports whether t is a supported account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeSavings, AccountTypeChecking:
		return true
	}

	return false
}

// Account holds the current balance of one user account.
//
// Balance is a non-negative decimal string; arithmetic on it goes through
// shopspring/decimal, never floats.
type Account struct {
	ID        int32       `json:"id"`
	UserID    int32       `json:"user_id"`
	Type      AccountType `json:"type"`
	Balance   string      `json:"balance"`
	CreatedAt time.Time   `json:"created_at"`
}
