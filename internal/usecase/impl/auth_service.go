// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "campus/internal/delivery/context"
	"campus/internal/domain/entity"
	domainerrors "campus/internal/domain/errors"
	"campus/internal/domain/repository"
	"campus/internal/domain/service"
	"campus/internal/usecase"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login executes the credential-verification sequence in fixed order inside
// one transaction. The account row is read under a row lock so concurrent
// attempts against the same account serialize: two simultaneous wrong
// passwords count as two attempts, never one.
//
// Business denials (wrong credentials, blocked, inactive) are carried out of
// the transaction body through `denial` and the body returns nil, so the
// lockout side effects (counter increment, lock trigger, auto-unlock) COMMIT.
// Only infrastructure failures return an error and roll back.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("username", input.Username))

	var account *entity.Account
	var denial error

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		acct, findErr := accountRepo.FindByUsernameForUpdate(ctx, input.Username)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrAccountNotFound) {
				// Same generic denial as a wrong password; the response
				// never reveals whether the username exists.
				denial = domainerrors.ErrInvalidCredentials.WrapMessage("login failed")

				return nil
			}

			return errors.Wrap(findErr, "failed to find account by username")
		}

		now := time.Now()
		if acct.ClearExpiredLock(now) {
			if err := accountRepo.Save(ctx, acct); err != nil {
				return errors.Wrap(err, "failed to persist lock expiry")
			}
		}

		if acct.Locked(now) {
			denial = domainerrors.NewBlockedAccountError(acct.Lock.UntilPtr())

			return nil
		}

		if !acct.CanLogin(now) {
			denial = domainerrors.ErrAccountNotActive.WrapMessage("login failed")

			return nil
		}

		// The bcrypt check runs while holding the row lock: the counter
		// update and the final persisted state must be one atomic unit
		// per attempt.
		if !srv.hasher.Check(input.Password, acct.PasswordHash) {
			acct.RecordFailedLogin()
			if err := accountRepo.Save(ctx, acct); err != nil {
				return errors.Wrap(err, "failed to persist failed login attempt")
			}
			denial = domainerrors.ErrInvalidCredentials.WrapMessage("login failed")

			return nil
		}

		acct.RecordSuccessfulLogin()
		if err := accountRepo.Save(ctx, acct); err != nil {
			return errors.Wrap(err, "failed to persist successful login")
		}
		account = acct

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute login transaction", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute login transaction")
	}

	if denial != nil {
		srv.log(ctx).Warn("Login denied", slog.String("username", input.Username), slog.Any("error", denial))

		return nil, denial
	}

	token, err := srv.tokenService.Issue(account)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.log(ctx).Debug("Login succeeded", slog.Any("accountID", account.ID))

	return &usecase.LoginOutput{
		AccountID: account.ID,
		Username:  account.Username,
		Email:     account.Email,
		Role:      account.Role,
		EntityID:  account.EntityID,
		Token:     token,
	}, nil
}

// CheckAccess re-derives the live account behind a validated token and
// re-runs the can-login check, so a token becomes unusable as soon as its
// account is blocked or deactivated, within the token's TTL. An expired
// temporary lock observed here is cleared and persisted.
func (srv *authService) CheckAccess(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	var account *entity.Account
	var denial error

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		acct, findErr := accountRepo.FindByIDForUpdate(ctx, accountID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrAccountNotFound) {
				denial = domainerrors.ErrAccountNotFound.WrapMessage("token subject no longer exists")

				return nil
			}

			return errors.Wrap(findErr, "failed to find account by id")
		}

		now := time.Now()
		if acct.ClearExpiredLock(now) {
			if err := accountRepo.Save(ctx, acct); err != nil {
				return errors.Wrap(err, "failed to persist lock expiry")
			}
		}

		if !acct.CanLogin(now) {
			denial = domainerrors.ErrAccountNotActive.WrapMessage("account can no longer authenticate")

			return nil
		}

		account = acct

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute access check transaction")
	}

	if denial != nil {
		return nil, denial
	}

	return account, nil
}
