package domain

import "errors"

var (
	// ErrInvalidAmount indicates an amount that is malformed or not positive.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrSameAccount indicates a transfer where both sides are the same account.
	ErrSameAccount = errors.New("transfer to the same account")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	// It is a business rejection, not a fault.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrAccessDenied indicates that the principal may not act on the account.
	ErrAccessDenied = errors.New("access denied")
)

// EntryResult is the result of a committed deposit or withdrawal.
type EntryResult struct {
	Account     Account     `json:"account"`
	Transaction Transaction `json:"transaction"`
}

// CreateTransferParams is the input data for the transfer transaction.
type CreateTransferParams struct {
	FromAccountID int32  `json:"from_account_id"`
	ToAccountID   int32  `json:"to_account_id"`
	Amount        string `json:"amount"`
}

// TransferTxResult is the result of a committed transfer: both updated
// accounts and the paired audit records.
type TransferTxResult struct {
	FromAccount Account     `json:"from_account"`
	ToAccount   Account     `json:"to_account"`
	OutRecord   Transaction `json:"out_record"`
	InRecord    Transaction `json:"in_record"`
}
