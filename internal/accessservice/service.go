// Package accessservice answers "may this principal act on this account".
//
// It is a collaborator of the ledger engine, not part of it: the engine only
// sees the CanAct result. Credential checking happens upstream; by the time
// a request reaches here the principal is already authenticated.
package accessservice

import (
	"context"

	"github.com/go-yaro/bank-ledger/internal/domain"

	"github.com/rs/zerolog"
)

// AccountGetter provides account reads needed by the access check.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accessservice
type AccountGetter interface {
	Get(ctx context.Context, id int32) (domain.Account, error)
}

// UserGetter provides user reads needed by the access check.
type UserGetter interface {
	Get(ctx context.Context, id int32) (domain.User, error)
}

// Service implements the account access check.
type Service struct {
	accounts AccountGetter
	users    UserGetter
}

// New returns access service struct.
func New(ag AccountGetter, ug UserGetter) *Service {
	return &Service{
		accounts: ag,
		users:    ug,
	}
}

// CanAct returns nil when principal owns the account and is active.
// It returns domain.ErrAccountNotFound for an unknown account,
// domain.ErrAccessDenied for someone else's account and
// domain.ErrUserNotActive for a pending or frozen owner.
func (s *Service) CanAct(ctx context.Context, principal string, accountID int32) error {
	l := zerolog.Ctx(ctx)

	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return err
	}

	user, err := s.users.Get(ctx, account.UserID)
	if err != nil {
		return err
	}

	if user.Username != principal {
		l.Info().Str("principal", principal).Int32("account_id", accountID).Msg("access denied")
		return domain.ErrAccessDenied
	}

	if user.Status != domain.StatusActive {
		return domain.ErrUserNotActive
	}

	return nil
}
