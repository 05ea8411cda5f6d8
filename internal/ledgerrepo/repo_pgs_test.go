package ledgerrepo

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"

	"github.com/go-yaro/bank-ledger/internal/accountrepo"
	"github.com/go-yaro/bank-ledger/internal/domain"
	"github.com/go-yaro/bank-ledger/internal/transactionrepo"
	"github.com/go-yaro/bank-ledger/internal/userrepo"
	"github.com/go-yaro/bank-ledger/pkg/configpkg"
	"github.com/go-yaro/bank-ledger/pkg/errorspkg"
	"github.com/go-yaro/bank-ledger/pkg/randompkg"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	_ "github.com/lib/pq"
)

var (
	testRepo            *RepoPGS
	testAccountRepo     *accountrepo.RepoPGS
	testTransactionRepo *transactionrepo.RepoPGS
	testUserRepo        *userrepo.RepoPGS
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	testDB, err := sql.Open(config.DBDriver, config.DBSource)
	if err != nil {
		log.Fatal("cannot connect to db:", err)
	}

	testRepo = NewRepoPGS(testDB)
	testAccountRepo = accountrepo.NewRepoPGS(testDB)
	testTransactionRepo = transactionrepo.NewRepoPGS(testDB)
	testUserRepo = userrepo.NewRepoPGS(testDB)

	os.Exit(m.Run())
}

func createRandomUser(t *testing.T) domain.User {
	t.Helper()

	user, err := testUserRepo.Create(context.Background(), domain.CreateUserParams{
		Username: randompkg.Owner(),
		FullName: randompkg.Owner(),
		Status:   domain.StatusActive,
	})
	require.NoError(t, err)
	require.NotEmpty(t, user)

	return user
}

func createRandomAccount(t *testing.T, balance string) domain.Account {
	t.Helper()

	user := createRandomUser(t)

	account, err := testAccountRepo.Create(context.Background(), user.ID, domain.AccountTypeSavings, balance)
	require.NoError(t, err)
	require.NotZero(t, account.ID)

	return account
}

func requireEqualAmount(t *testing.T, want, got string) {
	t.Helper()

	wantDec, err := decimal.NewFromString(want)
	require.NoError(t, err)
	gotDec, err := decimal.NewFromString(got)
	require.NoError(t, err)

	require.True(t, wantDec.Equal(gotDec), "want %s, got %s", want, got)
}

func statementLength(t *testing.T, accountID int32) int {
	t.Helper()

	records, err := testTransactionRepo.Recent(context.Background(), accountID, 1000)
	require.NoError(t, err)

	return len(records)
}

func TestDepositTx(t *testing.T) {
	account := createRandomAccount(t, "0")

	result, err := testRepo.DepositTx(context.Background(), account.ID, "100")
	require.NoError(t, err)

	requireEqualAmount(t, "100", result.Account.Balance)
	require.Equal(t, domain.KindDeposit, result.Transaction.Kind)
	requireEqualAmount(t, "100", result.Transaction.Amount)
	require.Equal(t, account.ID, result.Transaction.AccountID)
	require.Nil(t, result.Transaction.CounterpartyID)
	require.NotZero(t, result.Transaction.ID)
	require.NotZero(t, result.Transaction.Time)
}

func TestDepositTxAccountNotFound(t *testing.T) {
	_, err := testRepo.DepositTx(context.Background(), -1, "100")
	require.EqualError(t, err, domain.ErrAccountNotFound.Error())
}

func TestWithdrawTx(t *testing.T) {
	account := createRandomAccount(t, "500")

	result, err := testRepo.WithdrawTx(context.Background(), account.ID, "30")
	require.NoError(t, err)

	requireEqualAmount(t, "470", result.Account.Balance)
	require.Equal(t, domain.KindWithdraw, result.Transaction.Kind)
	requireEqualAmount(t, "30", result.Transaction.Amount)
}

func TestWithdrawTxInsufficientBalance(t *testing.T) {
	account := createRandomAccount(t, "500")

	before := statementLength(t, account.ID)

	result, err := testRepo.WithdrawTx(context.Background(), account.ID, "600")
	require.EqualError(t, err, domain.ErrInsufficientBalance.Error())
	require.Empty(t, result)

	// The rejected withdrawal must leave no trace.
	got, err := testAccountRepo.Get(context.Background(), account.ID)
	require.NoError(t, err)
	requireEqualAmount(t, "500", got.Balance)
	require.Equal(t, before, statementLength(t, account.ID))
}

func TestTransferTx(t *testing.T) {
	from := createRandomAccount(t, "1000")
	to := createRandomAccount(t, "0")

	result, err := testRepo.TransferTx(context.Background(), domain.CreateTransferParams{
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		Amount:        "250",
	})
	require.NoError(t, err)

	requireEqualAmount(t, "750", result.FromAccount.Balance)
	requireEqualAmount(t, "250", result.ToAccount.Balance)

	// Exactly one OUT and one IN record with equal amounts and mutual
	// counterparty references.
	require.Equal(t, domain.KindTransferOut, result.OutRecord.Kind)
	require.Equal(t, domain.KindTransferIn, result.InRecord.Kind)
	requireEqualAmount(t, result.OutRecord.Amount, result.InRecord.Amount)
	require.Equal(t, from.ID, result.OutRecord.AccountID)
	require.Equal(t, to.ID, result.InRecord.AccountID)
	require.NotNil(t, result.OutRecord.CounterpartyID)
	require.NotNil(t, result.InRecord.CounterpartyID)
	require.Equal(t, to.ID, *result.OutRecord.CounterpartyID)
	require.Equal(t, from.ID, *result.InRecord.CounterpartyID)

	require.Equal(t, 1, statementLength(t, from.ID))
	require.Equal(t, 1, statementLength(t, to.ID))
}

func TestTransferTxInsufficientBalance(t *testing.T) {
	from := createRandomAccount(t, "100")
	to := createRandomAccount(t, "50")

	result, err := testRepo.TransferTx(context.Background(), domain.CreateTransferParams{
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		Amount:        "200",
	})
	require.EqualError(t, err, domain.ErrInsufficientBalance.Error())
	require.Empty(t, result)

	gotFrom, err := testAccountRepo.Get(context.Background(), from.ID)
	require.NoError(t, err)
	gotTo, err := testAccountRepo.Get(context.Background(), to.ID)
	require.NoError(t, err)

	requireEqualAmount(t, "100", gotFrom.Balance)
	requireEqualAmount(t, "50", gotTo.Balance)
	require.Equal(t, 0, statementLength(t, from.ID))
	require.Equal(t, 0, statementLength(t, to.ID))
}

func TestTransferTxMissingAccounts(t *testing.T) {
	account := createRandomAccount(t, "100")

	_, err := testRepo.TransferTx(context.Background(), domain.CreateTransferParams{
		FromAccountID: -1,
		ToAccountID:   account.ID,
		Amount:        "10",
	})
	require.EqualError(t, err, domain.ErrFromAccountNotFound.Error())

	_, err = testRepo.TransferTx(context.Background(), domain.CreateTransferParams{
		FromAccountID: account.ID,
		ToAccountID:   -1,
		Amount:        "10",
	})
	require.EqualError(t, err, domain.ErrToAccountNotFound.Error())

	requireEqualAmount(t, "100", account.Balance)
	require.Equal(t, 0, statementLength(t, account.ID))
}

func TestConcurrentDeposits(t *testing.T) {
	account := createRandomAccount(t, "0")

	n := 100
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		go func() {
			_, err := testRepo.DepositTx(context.Background(), account.ID, "1")
			errs <- err
		}()
	}

	for i := 0; i < n; i++ {
		require.NoError(t, <-errs)
	}

	got, err := testAccountRepo.Get(context.Background(), account.ID)
	require.NoError(t, err)
	requireEqualAmount(t, "100", got.Balance)
	require.Equal(t, n, statementLength(t, account.ID))
}

func TestConcurrentOppositeTransfers(t *testing.T) {
	account1 := createRandomAccount(t, "1000")
	account2 := createRandomAccount(t, "1000")

	// Opposite directions between the same pair must not deadlock.
	n := 10
	errs := make(chan error, 2*n)

	for i := 0; i < n; i++ {
		go func() {
			_, err := testRepo.TransferTx(context.Background(), domain.CreateTransferParams{
				FromAccountID: account1.ID,
				ToAccountID:   account2.ID,
				Amount:        "10",
			})
			errs <- err
		}()
		go func() {
			_, err := testRepo.TransferTx(context.Background(), domain.CreateTransferParams{
				FromAccountID: account2.ID,
				ToAccountID:   account1.ID,
				Amount:        "10",
			})
			errs <- err
		}()
	}

	for i := 0; i < 2*n; i++ {
		require.NoError(t, <-errs)
	}

	got1, err := testAccountRepo.Get(context.Background(), account1.ID)
	require.NoError(t, err)
	got2, err := testAccountRepo.Get(context.Background(), account2.ID)
	require.NoError(t, err)

	requireEqualAmount(t, "1000", got1.Balance)
	requireEqualAmount(t, "1000", got2.Balance)
}

func TestOperationSequence(t *testing.T) {
	accountA := createRandomAccount(t, "500")
	accountB := createRandomAccount(t, "0")

	ctx := context.Background()

	_, err := testRepo.DepositTx(ctx, accountA.ID, "100")
	require.NoError(t, err)

	_, err = testRepo.WithdrawTx(ctx, accountA.ID, "30")
	require.NoError(t, err)

	_, err = testRepo.TransferTx(ctx, domain.CreateTransferParams{
		FromAccountID: accountA.ID,
		ToAccountID:   accountB.ID,
		Amount:        "20",
	})
	require.NoError(t, err)

	gotA, err := testAccountRepo.Get(ctx, accountA.ID)
	require.NoError(t, err)
	gotB, err := testAccountRepo.Get(ctx, accountB.ID)
	require.NoError(t, err)

	requireEqualAmount(t, "550", gotA.Balance)
	requireEqualAmount(t, "20", gotB.Balance)

	records, err := testTransactionRepo.Recent(ctx, accountA.ID, 10)
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.Equal(t, domain.KindTransferOut, records[0].Kind)
	requireEqualAmount(t, "20", records[0].Amount)
	require.Equal(t, domain.KindWithdraw, records[1].Kind)
	requireEqualAmount(t, "30", records[1].Amount)
	require.Equal(t, domain.KindDeposit, records[2].Kind)
	requireEqualAmount(t, "100", records[2].Amount)

	// Replaying the log reproduces the balance.
	balance := decimal.RequireFromString(accountA.Balance)
	for _, record := range records {
		amount := decimal.RequireFromString(record.Amount)

		switch record.Kind {
		case domain.KindDeposit, domain.KindTransferIn:
			balance = balance.Add(amount)
		case domain.KindWithdraw, domain.KindTransferOut:
			balance = balance.Sub(amount)
		}
	}
	requireEqualAmount(t, balance.String(), gotA.Balance)
}

func TestOpenAccountTx(t *testing.T) {
	user := createRandomUser(t)

	account, err := testRepo.OpenAccountTx(context.Background(), user.ID, domain.AccountTypeChecking, "300")
	require.NoError(t, err)
	require.Equal(t, domain.AccountTypeChecking, account.Type)
	requireEqualAmount(t, "300", account.Balance)

	records, err := testTransactionRepo.Recent(context.Background(), account.ID, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, domain.KindDeposit, records[0].Kind)
	require.Equal(t, "Initial deposit", records[0].Description)
}

func TestOpenAccountTxZeroDeposit(t *testing.T) {
	user := createRandomUser(t)

	account, err := testRepo.OpenAccountTx(context.Background(), user.ID, domain.AccountTypeSavings, "0")
	require.NoError(t, err)
	requireEqualAmount(t, "0", account.Balance)
	require.Equal(t, 0, statementLength(t, account.ID))
}

// expiredDeadlineCtx reports a passed deadline from Err without ever closing
// Done, so statements still execute while ctx.Err() is non-nil.
type expiredDeadlineCtx struct {
	context.Context
}

func (expiredDeadlineCtx) Err() error { return context.DeadlineExceeded }

func TestWithdrawTxBusinessErrorNotReclassified(t *testing.T) {
	account := createRandomAccount(t, "10")

	ctx := expiredDeadlineCtx{context.Background()}

	// A business rejection must come back as itself even when the caller's
	// deadline has passed by the time the unit fails.
	_, err := testRepo.WithdrawTx(ctx, account.ID, "100")
	require.EqualError(t, err, domain.ErrInsufficientBalance.Error())

	account, err = testAccountRepo.Get(context.Background(), account.ID)
	require.NoError(t, err)
	requireEqualAmount(t, "10", account.Balance)
}

func TestDepositTxStorageErrorUnderDeadline(t *testing.T) {
	account := createRandomAccount(t, "10")

	ctx := expiredDeadlineCtx{context.Background()}

	// A malformed amount fails inside the store; with the deadline passed
	// that failure surfaces as the timeout kind.
	_, err := testRepo.DepositTx(ctx, account.ID, "not-a-number")
	require.EqualError(t, err, errorspkg.ErrTimeout.Error())
}
