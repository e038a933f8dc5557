package impl

import (
	"context"
	"log/slog"

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

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager: params.TxManager,
		hasher:    params.Hasher,
		logger:    params.Logger,
	}
}

func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register provisions a new account in PENDING_ACTIVATION.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterAccountInput) (*usecase.AccountOutput, error) {
	srv.log(ctx).Info("Registering account", slog.String("username", input.Username), slog.Any("role", input.Role))

	if !input.Role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown role")
	}

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password rejected by strength policy", slog.String("username", input.Username))

		return nil, errors.Wrap(domainerrors.ErrPasswordStrength, "password rejected")
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password")
	}

	account := entity.NewAccount(input.Username, input.Email, passwordHash, input.Role)

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.AccountRepo().Create(ctx, account)
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to register account", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute account registration transaction")
	}

	srv.log(ctx).Debug("Account registered", slog.Any("accountID", account.ID))

	return usecase.NewAccountOutput(account), nil
}

// Activate transitions an account from PENDING_ACTIVATION to ACTIVE.
func (srv *accountService) Activate(ctx context.Context, accountID uuid.UUID) (*usecase.AccountOutput, error) {
	return srv.mutateAccount(ctx, accountID, "activate", func(account *entity.Account) error {
		return account.Activate()
	})
}

// Unblock reactivates a blocked account, clearing lock and counter.
func (srv *accountService) Unblock(ctx context.Context, accountID uuid.UUID) (*usecase.AccountOutput, error) {
	return srv.mutateAccount(ctx, accountID, "unblock", func(account *entity.Account) error {
		account.Unblock()

		return nil
	})
}

// BlockPermanently blocks an account until manual intervention.
func (srv *accountService) BlockPermanently(ctx context.Context, accountID uuid.UUID) (*usecase.AccountOutput, error) {
	return srv.mutateAccount(ctx, accountID, "block", func(account *entity.Account) error {
		account.BlockPermanently()

		return nil
	})
}

// LinkEntity ties an account to a platform record (student, teacher, ...).
func (srv *accountService) LinkEntity(ctx context.Context, accountID, entityID uuid.UUID) (*usecase.AccountOutput, error) {
	return srv.mutateAccount(ctx, accountID, "link entity", func(account *entity.Account) error {
		account.LinkEntity(entityID)

		return nil
	})
}

// ChangePassword replaces an account's password after a strength check.
func (srv *accountService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return errors.Wrap(domainerrors.ErrPasswordStrength, "password rejected")
	}

	passwordHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password")
	}

	_, err = srv.mutateAccount(ctx, input.AccountID, "change password", func(account *entity.Account) error {
		account.ChangePassword(passwordHash)

		return nil
	})

	return err
}

// mutateAccount loads an account under a row lock, applies the mutation and
// persists the result, all inside one transaction.
func (srv *accountService) mutateAccount(
	ctx context.Context,
	accountID uuid.UUID,
	operation string,
	mutate func(*entity.Account) error,
) (*usecase.AccountOutput, error) {
	var account *entity.Account

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		acct, findErr := accountRepo.FindByIDForUpdate(ctx, accountID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound.WrapMessage(operation + " failed")
			}

			return errors.Wrap(findErr, "failed to find account by id")
		}

		if mutateErr := mutate(acct); mutateErr != nil {
			return mutateErr
		}

		if saveErr := accountRepo.Save(ctx, acct); saveErr != nil {
			return errors.Wrap(saveErr, "failed to save account")
		}

		account = acct

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Account mutation failed", slog.String("operation", operation), slog.Any("accountID", accountID), slog.Any("error", err))

		return nil, errors.Wrapf(err, "failed to execute account %s transaction", operation)
	}

	srv.log(ctx).Debug("Account mutated", slog.String("operation", operation), slog.Any("accountID", accountID))

	return usecase.NewAccountOutput(account), nil
}
