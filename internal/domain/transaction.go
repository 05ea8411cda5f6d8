package domain

import "time"

// TransactionKind classifies a balance-affecting event.
type TransactionKind string

// The closed set of transaction kinds.
const (
	KindDeposit     TransactionKind = "DEPOSIT"
	KindWithdraw    TransactionKind = "WITHDRAW"
	KindTransferOut TransactionKind = "TRANSFER_OUT"
	KindTransferIn  TransactionKind = "TRANSFER_IN"
)

// Valid reports whether k is a known transaction kind.
func (k TransactionKind) Valid() bool {
	switch k {
	case KindDeposit, KindWithdraw, KindTransferOut, KindTransferIn:
		return true
	}

	return false
}

// Transaction is one immutable audit record. Rows are only ever appended,
// never updated or deleted.
type Transaction struct {
	ID             int64           `json:"id"`
	AccountID      int32           `json:"account_id"`
	Kind           TransactionKind `json:"kind"`
	Amount         string          `json:"amount"` // always positive
	Time           time.Time       `json:"time"`
	Description    string          `json:"description"`
	CounterpartyID *int32          `json:"counterparty_id,omitempty"` // set for transfer kinds only
}

// CreateTransactionParams is the input data for appending a transaction record.
type CreateTransactionParams struct {
	AccountID      int32
	Kind           TransactionKind
	Amount         string
	Description    string
	CounterpartyID *int32
}
