// Package ledgerservice manages business logic layer of ledger operations.
package ledgerservice

import (
	"context"

	"github.com/go-yaro/bank-ledger/internal/domain"
	"github.com/go-yaro/bank-ledger/pkg/moneypkg"

	"github.com/rs/zerolog"
)

// Repo provides the atomic money-movement units needed by the service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type Repo interface {
	DepositTx(ctx context.Context, accountID int32, amount string) (domain.EntryResult, error)
	WithdrawTx(ctx context.Context, accountID int32, amount string) (domain.EntryResult, error)
	TransferTx(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
}

// AccessChecker answers whether a principal may act on an account. The
// implementation lives outside the ledger core.
type AccessChecker interface {
	CanAct(ctx context.Context, principal string, accountID int32) error
}

// Service facilitates ledger service layer logic. It validates requests and
// delegates each operation to a single atomic unit; it never retries a
// failed unit, leaving retry policy to the caller.
type Service struct {
	repo   Repo
	access AccessChecker
}

// New returns ledger service struct to manage ledger business logic.
func New(lr Repo, ac AccessChecker) *Service {
	return &Service{
		repo:   lr,
		access: ac,
	}
}

// validAmount checks that amount is strictly positive and returns its
// canonical decimal form, so variants like "+5" or "5.00" reach the store
// normalized.
func validAmount(ctx context.Context, amount string) (string, error) {
	l := zerolog.Ctx(ctx)

	d, err := moneypkg.ParsePositive(amount)
	if err != nil {
		l.Info().Err(err).Str("amount", amount).Send()
		return "", domain.ErrInvalidAmount
	}

	return d.String(), nil
}

// Deposit adds amount to the account on behalf of the principal and returns
// the updated account with the appended record.
func (s *Service) Deposit(ctx context.Context, principal string, accountID int32, amount string) (domain.EntryResult, error) {
	amount, err := validAmount(ctx, amount)
	if err != nil {
		return domain.EntryResult{}, err
	}

	if err := s.access.CanAct(ctx, principal, accountID); err != nil {
		return domain.EntryResult{}, err
	}

	return s.repo.DepositTx(ctx, accountID, amount)
}

// Withdraw subtracts amount from the account on behalf of the principal.
// An insufficient balance comes back as domain.ErrInsufficientBalance with
// no state change.
func (s *Service) Withdraw(ctx context.Context, principal string, accountID int32, amount string) (domain.EntryResult, error) {
	amount, err := validAmount(ctx, amount)
	if err != nil {
		return domain.EntryResult{}, err
	}

	if err := s.access.CanAct(ctx, principal, accountID); err != nil {
		return domain.EntryResult{}, err
	}

	return s.repo.WithdrawTx(ctx, accountID, amount)
}

// Transfer moves amount between two accounts on behalf of the principal,
// who must be allowed to act on the source account.
func (s *Service) Transfer(ctx context.Context, principal string, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	amount, err := validAmount(ctx, arg.Amount)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	arg.Amount = amount

	if arg.FromAccountID == arg.ToAccountID {
		return domain.TransferTxResult{}, domain.ErrSameAccount
	}

	if err := s.access.CanAct(ctx, principal, arg.FromAccountID); err != nil {
		if err == domain.ErrAccountNotFound {
			return domain.TransferTxResult{}, domain.ErrFromAccountNotFound
		}

		return domain.TransferTxResult{}, err
	}

	return s.repo.TransferTx(ctx, arg)
}
