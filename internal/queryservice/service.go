// Package queryservice provides read-only projections over the ledger.
//
// Nothing here mutates state or enforces invariants; it reads whatever the
// store and log currently hold.
package queryservice

import (
	"context"

	"github.com/go-yaro/bank-ledger/internal/domain"
)

// DefaultStatementLimit matches the prior mini-statement behavior.
const DefaultStatementLimit = 10

// AccountGetter provides account reads needed by the query layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package queryservice
type AccountGetter interface {
	Get(ctx context.Context, id int32) (domain.Account, error)
}

// Log provides transaction log reads needed by the query layer.
type Log interface {
	Recent(ctx context.Context, accountID, limit int32) ([]domain.Transaction, error)
}

// Service facilitates read-only ledger queries.
type Service struct {
	accounts AccountGetter
	log      Log
}

// New returns query service struct.
func New(ag AccountGetter, tl Log) *Service {
	return &Service{
		accounts: ag,
		log:      tl,
	}
}

// Balance returns the current balance of the account.
func (s *Service) Balance(ctx context.Context, accountID int32) (string, error) {
	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return "", err
	}

	return account.Balance, nil
}

// Statement returns up to limit records for the account, most recent first.
// A non-positive limit falls back to DefaultStatementLimit.
func (s *Service) Statement(ctx context.Context, accountID, limit int32) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = DefaultStatementLimit
	}

	if _, err := s.accounts.Get(ctx, accountID); err != nil {
		return nil, err
	}

	return s.log.Recent(ctx, accountID, limit)
}
