// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"campus/internal/domain/entity"
)

// --- Input DTOs ---

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// LoginOutput returns the authenticated account snapshot and the issued token.
type LoginOutput struct {
	AccountID uuid.UUID   `json:"accountId"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      entity.Role `json:"role"`
	EntityID  *uuid.UUID  `json:"entityId,omitempty"`
	Token     string      `json:"token"`
}

// AuthUsecase defines the authentication operations the delivery layer
// depends on.
type AuthUsecase interface {
	// Login runs the full credential-verification sequence for one attempt
	// as a single unit of work and returns the account snapshot plus a
	// signed token.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// CheckAccess re-checks that the account behind a validated token is
	// still allowed to authenticate, applying the auto-unlock transition
	// when a temporary lock has expired. It is invoked once per
	// authenticated request by the authentication gate.
	CheckAccess(ctx context.Context, accountID uuid.UUID) (*entity.Account, error)
}
