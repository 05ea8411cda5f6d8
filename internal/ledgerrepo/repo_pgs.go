// Package ledgerrepo implements the money-movement atomic units.
//
// Every operation here is a single database transaction: the balance reads,
// invariant checks, balance writes and transaction-log appends either all
// commit or all roll back. Row locks are taken with SELECT ... FOR UPDATE in
// ascending account id order so two opposite transfers between the same pair
// of accounts cannot deadlock.
package ledgerrepo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-yaro/bank-ledger/internal/accountrepo"
	"github.com/go-yaro/bank-ledger/internal/domain"
	"github.com/go-yaro/bank-ledger/internal/transactionrepo"
	"github.com/go-yaro/bank-ledger/pkg/errorspkg"
	"github.com/go-yaro/bank-ledger/pkg/moneypkg"

	"github.com/rs/zerolog"
)

// RepoPGS runs ledger operations against Postgres.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns ledger RepoPGS with a connection to start transactions.
func NewRepoPGS(conn *sql.DB) *RepoPGS {
	return &RepoPGS{conn: conn}
}

// runTx executes fn inside a database transaction with account and
// transaction-log repositories bound to it. Any error from fn rolls the
// transaction back. Storage failures under an expired deadline are surfaced
// as ErrTimeout; business rejections pass through unchanged.
func (r *RepoPGS) runTx(ctx context.Context, fn func(accounts *accountrepo.RepoPGS, records *transactionrepo.RepoPGS) error) error {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return storageErr(ctx, err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	accounts := accountrepo.NewRepoPGS(tx)
	records := transactionrepo.NewRepoPGS(tx)

	if err := fn(accounts, records); err != nil {
		if err == errorspkg.ErrInternal && ctx.Err() == context.DeadlineExceeded {
			return errorspkg.ErrTimeout
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return storageErr(ctx, err)
	}

	return nil
}

func storageErr(ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return errorspkg.ErrTimeout
	}

	return errorspkg.ErrInternal
}

// DepositTx adds amount to the account and appends the DEPOSIT record as one
// atomic unit. The amount must already be validated as positive.
func (r *RepoPGS) DepositTx(ctx context.Context, accountID int32, amount string) (domain.EntryResult, error) {
	var result domain.EntryResult

	err := r.runTx(ctx, func(accounts *accountrepo.RepoPGS, records *transactionrepo.RepoPGS) error {
		if _, err := accounts.GetForUpdate(ctx, accountID); err != nil {
			return err
		}

		account, err := accounts.AddBalance(ctx, amount, accountID)
		if err != nil {
			return err
		}

		record, err := records.Create(ctx, domain.CreateTransactionParams{
			AccountID:   accountID,
			Kind:        domain.KindDeposit,
			Amount:      amount,
			Description: "Deposit",
		})
		if err != nil {
			return err
		}

		result = domain.EntryResult{Account: account, Transaction: record}

		return nil
	})

	if err != nil {
		return domain.EntryResult{}, err
	}

	return result, nil
}

// WithdrawTx subtracts amount from the account and appends the WITHDRAW
// record as one atomic unit. The balance check happens under the row lock,
// so a losing concurrent withdrawal is rejected, never applied partially.
func (r *RepoPGS) WithdrawTx(ctx context.Context, accountID int32, amount string) (domain.EntryResult, error) {
	var result domain.EntryResult

	err := r.runTx(ctx, func(accounts *accountrepo.RepoPGS, records *transactionrepo.RepoPGS) error {
		account, err := accounts.GetForUpdate(ctx, accountID)
		if err != nil {
			return err
		}

		insufficient, err := moneypkg.LessThan(account.Balance, amount)
		if err != nil {
			return errorspkg.ErrInternal
		}

		if insufficient {
			return domain.ErrInsufficientBalance
		}

		account, err = accounts.AddBalance(ctx, moneypkg.Neg(amount), accountID)
		if err != nil {
			return err
		}

		record, err := records.Create(ctx, domain.CreateTransactionParams{
			AccountID:   accountID,
			Kind:        domain.KindWithdraw,
			Amount:      amount,
			Description: "Withdraw",
		})
		if err != nil {
			return err
		}

		result = domain.EntryResult{Account: account, Transaction: record}

		return nil
	})

	if err != nil {
		return domain.EntryResult{}, err
	}

	return result, nil
}

// TransferTx moves amount between two accounts, appending the paired
// TRANSFER_OUT and TRANSFER_IN records, all within one atomic unit.
// It reports which side of the transfer is missing.
func (r *RepoPGS) TransferTx(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	var result domain.TransferTxResult

	err := r.runTx(ctx, func(accounts *accountrepo.RepoPGS, records *transactionrepo.RepoPGS) error {
		if err := lockPair(ctx, accounts, arg.FromAccountID, arg.ToAccountID); err != nil {
			return err
		}

		fromAccount, err := accounts.Get(ctx, arg.FromAccountID)
		if err != nil {
			return err
		}

		insufficient, err := moneypkg.LessThan(fromAccount.Balance, arg.Amount)
		if err != nil {
			return errorspkg.ErrInternal
		}

		if insufficient {
			return domain.ErrInsufficientBalance
		}

		// Locks are already held; keep the writes in ascending id order anyway.
		if arg.FromAccountID < arg.ToAccountID {
			result.FromAccount, err = accounts.AddBalance(ctx, moneypkg.Neg(arg.Amount), arg.FromAccountID)
			if err == nil {
				result.ToAccount, err = accounts.AddBalance(ctx, arg.Amount, arg.ToAccountID)
			}
		} else {
			result.ToAccount, err = accounts.AddBalance(ctx, arg.Amount, arg.ToAccountID)
			if err == nil {
				result.FromAccount, err = accounts.AddBalance(ctx, moneypkg.Neg(arg.Amount), arg.FromAccountID)
			}
		}

		if err != nil {
			return err
		}

		toID, fromID := arg.ToAccountID, arg.FromAccountID

		result.OutRecord, err = records.Create(ctx, domain.CreateTransactionParams{
			AccountID:      arg.FromAccountID,
			Kind:           domain.KindTransferOut,
			Amount:         arg.Amount,
			Description:    fmt.Sprintf("Transfer to %d", toID),
			CounterpartyID: &toID,
		})
		if err != nil {
			return err
		}

		result.InRecord, err = records.Create(ctx, domain.CreateTransactionParams{
			AccountID:      arg.ToAccountID,
			Kind:           domain.KindTransferIn,
			Amount:         arg.Amount,
			Description:    fmt.Sprintf("Transfer from %d", fromID),
			CounterpartyID: &fromID,
		})

		return err
	})

	if err != nil {
		return domain.TransferTxResult{}, err
	}

	return result, nil
}

// lockPair locks both account rows in ascending id order, translating a
// missing row into the side-specific not-found error.
func lockPair(ctx context.Context, accounts *accountrepo.RepoPGS, fromID, toID int32) error {
	lock := func(id int32) error {
		_, err := accounts.GetForUpdate(ctx, id)
		if err == domain.ErrAccountNotFound {
			if id == fromID {
				return domain.ErrFromAccountNotFound
			}

			return domain.ErrToAccountNotFound
		}

		return err
	}

	first, second := fromID, toID
	if toID < fromID {
		first, second = toID, fromID
	}

	if err := lock(first); err != nil {
		return err
	}

	return lock(second)
}

// OpenAccountTx creates the account row and, for a non-zero starting
// balance, the seeding DEPOSIT record, as one atomic unit.
func (r *RepoPGS) OpenAccountTx(ctx context.Context, userID int32, accountType domain.AccountType, initialDeposit string) (domain.Account, error) {
	var created domain.Account

	err := r.runTx(ctx, func(accounts *accountrepo.RepoPGS, records *transactionrepo.RepoPGS) error {
		account, err := accounts.Create(ctx, userID, accountType, initialDeposit)
		if err != nil {
			return err
		}

		zero, err := moneypkg.IsZero(initialDeposit)
		if err != nil {
			return errorspkg.ErrInternal
		}

		if !zero {
			if _, err := records.Create(ctx, domain.CreateTransactionParams{
				AccountID:   account.ID,
				Kind:        domain.KindDeposit,
				Amount:      initialDeposit,
				Description: "Initial deposit",
			}); err != nil {
				return err
			}
		}

		created = account

		return nil
	})

	if err != nil {
		return domain.Account{}, err
	}

	return created, nil
}
