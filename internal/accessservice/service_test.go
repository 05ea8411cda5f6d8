package accessservice

import (
	"context"
	"testing"

	"github.com/go-yaro/bank-ledger/internal/domain"
	"github.com/go-yaro/bank-ledger/pkg/errorspkg"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestCanAct(t *testing.T) {
	testUser := domain.User{
		ID:       1,
		Username: "alice",
		FullName: "Alice Smith",
		Status:   domain.StatusActive,
	}

	testAccount := domain.Account{
		ID:      10,
		UserID:  testUser.ID,
		Type:    domain.AccountTypeSavings,
		Balance: "100",
	}

	frozenUser := testUser
	frozenUser.Status = domain.StatusFrozen

	testCases := []struct {
		name       string
		principal  string
		buildStubs func(accounts *MockAccountGetter, users *MockUserGetter)
		wantErr    error
	}{
		{
			name:      "AccountNotFound",
			principal: testUser.Username,
			buildStubs: func(accounts *MockAccountGetter, users *MockUserGetter) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
				users.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name:      "UserLookupFails",
			principal: testUser.Username,
			buildStubs: func(accounts *MockAccountGetter, users *MockUserGetter) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount.ID)).
					Times(1).
					Return(testAccount, nil)
				users.EXPECT().Get(gomock.Any(), gomock.Eq(testUser.ID)).
					Times(1).
					Return(domain.User{}, errorspkg.ErrInternal)
			},
			wantErr: errorspkg.ErrInternal,
		},
		{
			name:      "NotOwner",
			principal: "mallory",
			buildStubs: func(accounts *MockAccountGetter, users *MockUserGetter) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount.ID)).
					Times(1).
					Return(testAccount, nil)
				users.EXPECT().Get(gomock.Any(), gomock.Eq(testUser.ID)).
					Times(1).
					Return(testUser, nil)
			},
			wantErr: domain.ErrAccessDenied,
		},
		{
			name:      "FrozenOwner",
			principal: testUser.Username,
			buildStubs: func(accounts *MockAccountGetter, users *MockUserGetter) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount.ID)).
					Times(1).
					Return(testAccount, nil)
				users.EXPECT().Get(gomock.Any(), gomock.Eq(testUser.ID)).
					Times(1).
					Return(frozenUser, nil)
			},
			wantErr: domain.ErrUserNotActive,
		},
		{
			name:      "OK",
			principal: testUser.Username,
			buildStubs: func(accounts *MockAccountGetter, users *MockUserGetter) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount.ID)).
					Times(1).
					Return(testAccount, nil)
				users.EXPECT().Get(gomock.Any(), gomock.Eq(testUser.ID)).
					Times(1).
					Return(testUser, nil)
			},
			wantErr: nil,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			accounts := NewMockAccountGetter(ctrl)
			users := NewMockUserGetter(ctrl)
			tc.buildStubs(accounts, users)

			service := New(accounts, users)

			err := service.CanAct(context.Background(), tc.principal, testAccount.ID)

			if tc.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.EqualError(t, err, tc.wantErr.Error())
			}
		})
	}
}
