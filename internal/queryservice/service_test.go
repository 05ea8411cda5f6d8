package queryservice

import (
	"context"
	"testing"
	"time"

	"github.com/go-yaro/bank-ledger/internal/domain"
	"github.com/go-yaro/bank-ledger/pkg/errorspkg"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestBalance(t *testing.T) {
	testAccount := domain.Account{
		ID:      1,
		UserID:  1,
		Type:    domain.AccountTypeSavings,
		Balance: "750.50",
	}

	testCases := []struct {
		name          string
		buildStubs    func(accounts *MockAccountGetter, log *MockLog)
		checkResponse func(balance string, err error)
	}{
		{
			name: "NotFound",
			buildStubs: func(accounts *MockAccountGetter, log *MockLog) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			checkResponse: func(balance string, err error) {
				require.Empty(t, balance)
				require.EqualError(t, err, domain.ErrAccountNotFound.Error())
			},
		},
		{
			name: "InternalError",
			buildStubs: func(accounts *MockAccountGetter, log *MockLog) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount.ID)).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
			},
			checkResponse: func(balance string, err error) {
				require.Empty(t, balance)
				require.EqualError(t, err, errorspkg.ErrInternal.Error())
			},
		},
		{
			name: "OK",
			buildStubs: func(accounts *MockAccountGetter, log *MockLog) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount.ID)).
					Times(1).
					Return(testAccount, nil)
			},
			checkResponse: func(balance string, err error) {
				require.NoError(t, err)
				require.Equal(t, testAccount.Balance, balance)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			accounts := NewMockAccountGetter(ctrl)
			log := NewMockLog(ctrl)
			tc.buildStubs(accounts, log)

			service := New(accounts, log)

			balance, err := service.Balance(context.Background(), testAccount.ID)

			tc.checkResponse(balance, err)
		})
	}
}

func TestStatement(t *testing.T) {
	testAccount := domain.Account{ID: 1, UserID: 1, Balance: "100"}

	testRecords := []domain.Transaction{
		{ID: 3, AccountID: 1, Kind: domain.KindWithdraw, Amount: "30", Time: time.Now()},
		{ID: 2, AccountID: 1, Kind: domain.KindDeposit, Amount: "100", Time: time.Now().Add(-time.Minute)},
	}

	testCases := []struct {
		name          string
		limit         int32
		buildStubs    func(accounts *MockAccountGetter, log *MockLog)
		checkResponse func(records []domain.Transaction, err error)
	}{
		{
			name:  "DefaultLimit",
			limit: 0,
			buildStubs: func(accounts *MockAccountGetter, log *MockLog) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount.ID)).
					Times(1).
					Return(testAccount, nil)
				log.EXPECT().Recent(gomock.Any(), gomock.Eq(testAccount.ID), gomock.Eq(int32(DefaultStatementLimit))).
					Times(1).
					Return(testRecords, nil)
			},
			checkResponse: func(records []domain.Transaction, err error) {
				require.NoError(t, err)
				require.Equal(t, testRecords, records)
			},
		},
		{
			name:  "ExplicitLimit",
			limit: 2,
			buildStubs: func(accounts *MockAccountGetter, log *MockLog) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount.ID)).
					Times(1).
					Return(testAccount, nil)
				log.EXPECT().Recent(gomock.Any(), gomock.Eq(testAccount.ID), gomock.Eq(int32(2))).
					Times(1).
					Return(testRecords, nil)
			},
			checkResponse: func(records []domain.Transaction, err error) {
				require.NoError(t, err)
				require.Equal(t, testRecords, records)
			},
		},
		{
			name:  "AccountNotFound",
			limit: 10,
			buildStubs: func(accounts *MockAccountGetter, log *MockLog) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
				log.EXPECT().Recent(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(records []domain.Transaction, err error) {
				require.Nil(t, records)
				require.EqualError(t, err, domain.ErrAccountNotFound.Error())
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			accounts := NewMockAccountGetter(ctrl)
			log := NewMockLog(ctrl)
			tc.buildStubs(accounts, log)

			service := New(accounts, log)

			records, err := service.Statement(context.Background(), testAccount.ID, tc.limit)

			tc.checkResponse(records, err)
		})
	}
}
