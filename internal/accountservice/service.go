// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/go-yaro/bank-ledger/internal/domain"
	"github.com/go-yaro/bank-ledger/pkg/moneypkg"

	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Get(ctx context.Context, id int32) (domain.Account, error)
	ListForUser(ctx context.Context, userID int32, limit, offset int32) ([]domain.Account, error)
}

// Opener creates the account row and its optional seeding deposit record
// as one atomic unit.
type Opener interface {
	OpenAccountTx(ctx context.Context, userID int32, accountType domain.AccountType, initialDeposit string) (domain.Account, error)
}

// UserGetter provides user reads needed to gate account opening.
type UserGetter interface {
	Get(ctx context.Context, id int32) (domain.User, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo   Repo
	opener Opener
	users  UserGetter
}

// New returns account service struct to manage account business logic.
func New(ar Repo, op Opener, ug UserGetter) *Service {
	return &Service{
		repo:   ar,
		opener: op,
		users:  ug,
	}
}

// Open creates an account of the given type for an active user. A non-empty
// initial deposit must be positive and is recorded in the transaction log.
func (s *Service) Open(ctx context.Context, userID int32, accountType domain.AccountType, initialDeposit string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if !accountType.Valid() {
		return domain.Account{}, domain.ErrInvalidAccountType
	}

	if initialDeposit == "" {
		initialDeposit = "0"
	}

	if zero, err := moneypkg.IsZero(initialDeposit); err != nil || !zero {
		if _, perr := moneypkg.ParsePositive(initialDeposit); perr != nil {
			l.Info().Err(perr).Str("initial_deposit", initialDeposit).Send()
			return domain.Account{}, domain.ErrInvalidAmount
		}
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return domain.Account{}, err
	}

	if user.Status != domain.StatusActive {
		return domain.Account{}, domain.ErrUserNotActive
	}

	return s.opener.OpenAccountTx(ctx, userID, accountType, initialDeposit)
}

// Get returns the account with the given id.
func (s *Service) Get(ctx context.Context, id int32) (domain.Account, error) {
	return s.repo.Get(ctx, id)
}

// List returns accounts owned by the given user.
func (s *Service) List(ctx context.Context, userID, pageSize, pageID int32) ([]domain.Account, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	return s.repo.ListForUser(ctx, userID, limit, offset)
}
