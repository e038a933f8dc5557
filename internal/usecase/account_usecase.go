package usecase

import (
	"context"

	"github.com/google/uuid"

	"campus/internal/domain/entity"
)

// RegisterAccountInput defines the data required to provision a new account.
type RegisterAccountInput struct {
	Username string      `json:"username" validate:"required,min=3,max=100"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required"`
	Role     entity.Role `json:"role" validate:"required"`
}

// ChangePasswordInput defines the data required to replace an account's password.
type ChangePasswordInput struct {
	AccountID   uuid.UUID
	NewPassword string `json:"newPassword" validate:"required"`
}

// AccountOutput returns an account snapshot without credential material.
type AccountOutput struct {
	AccountID uuid.UUID     `json:"accountId"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	Role      entity.Role   `json:"role"`
	Status    entity.Status `json:"status"`
	EntityID  *uuid.UUID    `json:"entityId,omitempty"`
}

// NewAccountOutput maps an account entity to its outward snapshot.
func NewAccountOutput(account *entity.Account) *AccountOutput {
	return &AccountOutput{
		AccountID: account.ID,
		Username:  account.Username,
		Email:     account.Email,
		Role:      account.Role,
		Status:    account.Status,
		EntityID:  account.EntityID,
	}
}

// AccountUsecase defines the administrative account operations: provisioning
// and the explicit state-machine transitions (activation, blocking,
// unblocking). All of them are guarded by administrative roles at the
// delivery layer.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterAccountInput) (*AccountOutput, error)
	Activate(ctx context.Context, accountID uuid.UUID) (*AccountOutput, error)
	Unblock(ctx context.Context, accountID uuid.UUID) (*AccountOutput, error)
	BlockPermanently(ctx context.Context, accountID uuid.UUID) (*AccountOutput, error)
	LinkEntity(ctx context.Context, accountID, entityID uuid.UUID) (*AccountOutput, error)
	ChangePassword(ctx context.Context, input *ChangePasswordInput) error
}
