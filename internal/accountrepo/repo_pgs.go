// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/go-yaro/bank-ledger/internal/domain"
	"github.com/go-yaro/bank-ledger/pkg/dbpkg"
	"github.com/go-yaro/bank-ledger/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    accounts (user_id, account_type, balance)
VALUES
    ($1, $2, $3)
RETURNING id, user_id, account_type, balance, created_at
`

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, userID int32, accountType domain.AccountType, balance string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, userID, accountType, balance)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Type,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_user_id_fkey":
				return a, domain.ErrUserNotFound
			case "accounts_balance_check":
				return a, domain.ErrInvalidAmount
			case "accounts_account_type_check":
				return a, domain.ErrInvalidAccountType
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	id, user_id, account_type, balance, created_at
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.Account, error) {
	return r.scanOne(ctx, getQuery, id)
}

const getForUpdateQuery = `
SELECT
	id, user_id, account_type, balance, created_at
FROM accounts
WHERE id = $1
FOR UPDATE
`

// GetForUpdate returns the account with the given id and locks its row until
// the surrounding transaction completes. Callers locking more than one
// account must do so in ascending id order.
func (r *RepoPGS) GetForUpdate(ctx context.Context, id int32) (domain.Account, error) {
	return r.scanOne(ctx, getForUpdateQuery, id)
}

func (r *RepoPGS) scanOne(ctx context.Context, query string, id int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, query, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Type,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const addBalanceQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE id = $2
RETURNING id, user_id, account_type, balance, created_at
`

// AddBalance applies a signed delta to the account's balance and returns the
// changed account. It must only be called inside the atomic unit that also
// appends the matching transaction record.
func (r *RepoPGS) AddBalance(ctx context.Context, amount string, id int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, addBalanceQuery, amount, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Type,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientBalance
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listForUserQuery = `
SELECT
	id, user_id, account_type, balance, created_at
FROM accounts
WHERE user_id = $1
ORDER BY id
LIMIT $2 OFFSET $3
`

// ListForUser returns the specified number of accounts owned by the given user.
func (r *RepoPGS) ListForUser(ctx context.Context, userID int32, limit, offset int32) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listForUserQuery, userID, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.Balance, &a.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
