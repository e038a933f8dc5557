package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"campus/internal/domain/entity"
	domainerrors "campus/internal/domain/errors"
	"campus/internal/domain/repository"
	mockRepo "campus/internal/mocks/repository"
	mockSvc "campus/internal/mocks/service"
	"campus/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type accountServiceFixture struct {
	txManager   *mockRepo.MockTransactionManager
	accountRepo *mockRepo.MockAccountRepository
	hasher      *mockSvc.MockPasswordHasher
	service     usecase.AccountUsecase
}

func newAccountServiceFixture(t *testing.T) *accountServiceFixture {
	t.Helper()

	txManager := mockRepo.NewMockTransactionManager(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)

	service := NewAccountService(AccountServiceParams{
		TxManager: txManager,
		Hasher:    hasher,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return &accountServiceFixture{
		txManager:   txManager,
		accountRepo: accountRepo,
		hasher:      hasher,
		service:     service,
	}
}

func (f *accountServiceFixture) expectTransaction(t *testing.T) {
	t.Helper()

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().AccountRepo().Return(f.accountRepo).Maybe()

	f.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}

func TestAccountService_Register(t *testing.T) {
	f := newAccountServiceFixture(t)
	f.expectTransaction(t)

	f.hasher.EXPECT().
		ValidatePasswordStrength("Sup3r-Secret!").
		Return(nil)
	f.hasher.EXPECT().
		Hash("Sup3r-Secret!").
		Return("$2a$12$hashed", nil)
	f.accountRepo.EXPECT().
		Create(mock.Anything, mock.AnythingOfType("*entity.Account")).
		Return(nil)

	output, err := f.service.Register(context.Background(), &usecase.RegisterAccountInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Sup3r-Secret!",
		Role:     entity.RoleTeacher,
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", output.Username)
	assert.Equal(t, entity.RoleTeacher, output.Role)
	assert.Equal(t, entity.StatusPendingActivation, output.Status)
}

func TestAccountService_Register_RejectsUnknownRole(t *testing.T) {
	f := newAccountServiceFixture(t)

	_, err := f.service.Register(context.Background(), &usecase.RegisterAccountInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Sup3r-Secret!",
		Role:     entity.Role("SUPERUSER"),
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAccountService_Register_RejectsWeakPassword(t *testing.T) {
	f := newAccountServiceFixture(t)

	f.hasher.EXPECT().
		ValidatePasswordStrength("weak").
		Return(errors.New("too short"))

	_, err := f.service.Register(context.Background(), &usecase.RegisterAccountInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "weak",
		Role:     entity.RoleStudent,
	})
	assert.ErrorIs(t, err, domainerrors.ErrPasswordStrength)
}

func TestAccountService_Register_DuplicateUsername(t *testing.T) {
	f := newAccountServiceFixture(t)
	f.expectTransaction(t)

	f.hasher.EXPECT().
		ValidatePasswordStrength("Sup3r-Secret!").
		Return(nil)
	f.hasher.EXPECT().
		Hash("Sup3r-Secret!").
		Return("$2a$12$hashed", nil)
	f.accountRepo.EXPECT().
		Create(mock.Anything, mock.AnythingOfType("*entity.Account")).
		Return(domainerrors.ErrAccountAlreadyExists.WrapMessage("username or email already exists"))

	_, err := f.service.Register(context.Background(), &usecase.RegisterAccountInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Sup3r-Secret!",
		Role:     entity.RoleStudent,
	})
	assert.ErrorIs(t, err, domainerrors.ErrAccountAlreadyExists)
}

func TestAccountService_Activate(t *testing.T) {
	f := newAccountServiceFixture(t)
	f.expectTransaction(t)

	account := entity.NewAccount("alice", "alice@example.com", "$2a$12$hashed", entity.RoleStudent)

	f.accountRepo.EXPECT().
		FindByIDForUpdate(mock.Anything, account.ID).
		Return(account, nil)
	f.accountRepo.EXPECT().
		Save(mock.Anything, account).
		Return(nil)

	output, err := f.service.Activate(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, output.Status)
}

func TestAccountService_Activate_AlreadyActive(t *testing.T) {
	f := newAccountServiceFixture(t)
	f.expectTransaction(t)

	account := entity.NewAccount("alice", "alice@example.com", "$2a$12$hashed", entity.RoleStudent)
	require.NoError(t, account.Activate())

	f.accountRepo.EXPECT().
		FindByIDForUpdate(mock.Anything, account.ID).
		Return(account, nil)

	_, err := f.service.Activate(context.Background(), account.ID)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStateTransition)
}

func TestAccountService_Unblock(t *testing.T) {
	f := newAccountServiceFixture(t)
	f.expectTransaction(t)

	account := entity.NewAccount("alice", "alice@example.com", "$2a$12$hashed", entity.RoleStudent)
	require.NoError(t, account.Activate())
	account.BlockPermanently()

	f.accountRepo.EXPECT().
		FindByIDForUpdate(mock.Anything, account.ID).
		Return(account, nil)
	f.accountRepo.EXPECT().
		Save(mock.Anything, account).
		Return(nil)

	output, err := f.service.Unblock(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, output.Status)
	assert.Equal(t, entity.LockNone, account.Lock.Kind)
}

func TestAccountService_BlockPermanently(t *testing.T) {
	f := newAccountServiceFixture(t)
	f.expectTransaction(t)

	account := entity.NewAccount("alice", "alice@example.com", "$2a$12$hashed", entity.RoleStudent)
	require.NoError(t, account.Activate())

	f.accountRepo.EXPECT().
		FindByIDForUpdate(mock.Anything, account.ID).
		Return(account, nil)
	f.accountRepo.EXPECT().
		Save(mock.Anything, account).
		Return(nil)

	output, err := f.service.BlockPermanently(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusBlocked, output.Status)
	assert.Equal(t, entity.LockPermanent, account.Lock.Kind)
}

func TestAccountService_LinkEntity(t *testing.T) {
	f := newAccountServiceFixture(t)
	f.expectTransaction(t)

	account := entity.NewAccount("alice", "alice@example.com", "$2a$12$hashed", entity.RoleStudent)
	entityID := uuid.New()

	f.accountRepo.EXPECT().
		FindByIDForUpdate(mock.Anything, account.ID).
		Return(account, nil)
	f.accountRepo.EXPECT().
		Save(mock.Anything, account).
		Return(nil)

	output, err := f.service.LinkEntity(context.Background(), account.ID, entityID)
	require.NoError(t, err)
	require.NotNil(t, output.EntityID)
	assert.Equal(t, entityID, *output.EntityID)
}

func TestAccountService_ChangePassword(t *testing.T) {
	f := newAccountServiceFixture(t)
	f.expectTransaction(t)

	account := entity.NewAccount("alice", "alice@example.com", "$2a$12$old", entity.RoleStudent)

	f.hasher.EXPECT().
		ValidatePasswordStrength("N3w-Secret!").
		Return(nil)
	f.hasher.EXPECT().
		Hash("N3w-Secret!").
		Return("$2a$12$new", nil)
	f.accountRepo.EXPECT().
		FindByIDForUpdate(mock.Anything, account.ID).
		Return(account, nil)
	f.accountRepo.EXPECT().
		Save(mock.Anything, account).
		Return(nil)

	err := f.service.ChangePassword(context.Background(), &usecase.ChangePasswordInput{
		AccountID:   account.ID,
		NewPassword: "N3w-Secret!",
	})
	require.NoError(t, err)
	assert.Equal(t, "$2a$12$new", account.PasswordHash)
}

func TestAccountService_MutationOnMissingAccount(t *testing.T) {
	f := newAccountServiceFixture(t)
	f.expectTransaction(t)

	missingID := uuid.New()

	f.accountRepo.EXPECT().
		FindByIDForUpdate(mock.Anything, missingID).
		Return(nil, repository.ErrAccountNotFound)

	_, err := f.service.Activate(context.Background(), missingID)
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}
