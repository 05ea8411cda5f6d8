// Package transactionrepo manages repository layer of the append-only transaction log.
package transactionrepo

import (
	"context"
	"database/sql"

	"github.com/go-yaro/bank-ledger/internal/domain"
	"github.com/go-yaro/bank-ledger/pkg/dbpkg"
	"github.com/go-yaro/bank-ledger/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates transaction log repository layer logic.
//
// Records are append-only: there is deliberately no update or delete here.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    transactions (account_id, kind, amount, description, counterparty_account_id)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING id, account_id, kind, amount, tx_time, description, counterparty_account_id
`

// Create appends the record, letting the database assign its id and commit
// timestamp. It must run inside the caller's atomic unit.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	var counterparty sql.NullInt32
	if arg.CounterpartyID != nil {
		counterparty = sql.NullInt32{Int32: *arg.CounterpartyID, Valid: true}
	}

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.AccountID,
		arg.Kind,
		arg.Amount,
		arg.Description,
		counterparty,
	)

	tx, err := scanTransaction(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_account_id_fkey":
				return tx, domain.ErrAccountNotFound
			case "transactions_amount_check":
				return tx, domain.ErrInvalidAmount
			}
		}

		return tx, errorspkg.ErrInternal
	}

	return tx, nil
}

const recentQuery = `
SELECT
	id, account_id, kind, amount, tx_time, description, counterparty_account_id
FROM transactions
WHERE account_id = $1
ORDER BY id DESC
LIMIT $2
`

// Recent returns up to limit records for the account, most recent first.
// Ordering is by id: ids are assigned while the account row lock is held,
// so per account they follow commit order even when a writer that blocked
// on the lock carries an older tx_time. Each call re-queries current state.
func (r *RepoPGS) Recent(ctx context.Context, accountID, limit int32) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, recentQuery, accountID, limit)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, tx)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row scanner) (domain.Transaction, error) {
	var (
		tx           domain.Transaction
		counterparty sql.NullInt32
	)

	err := row.Scan(
		&tx.ID,
		&tx.AccountID,
		&tx.Kind,
		&tx.Amount,
		&tx.Time,
		&tx.Description,
		&counterparty,
	)
	if err != nil {
		return tx, err
	}

	if counterparty.Valid {
		id := counterparty.Int32
		tx.CounterpartyID = &id
	}

	return tx, nil
}
