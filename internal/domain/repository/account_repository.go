// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"campus/internal/domain/entity"
)

// ErrAccountNotFound is a domain-specific error returned when an account is
// not found. "Not found" is reported through this sentinel; lookups never
// panic or throw through the boundary.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the standard operations for account persistence.
// The application layer depends on this interface, not the concrete
// implementation.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByUsername retrieves a single account by its unique username.
	FindByUsername(ctx context.Context, username string) (*entity.Account, error)

	// FindByIDForUpdate retrieves an account by ID holding a row lock for
	// the duration of the surrounding transaction, serializing concurrent
	// read-modify-write sequences against the same account.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByUsernameForUpdate is FindByUsername with the same row lock.
	FindByUsernameForUpdate(ctx context.Context, username string) (*entity.Account, error)

	// Create persists a freshly provisioned account.
	Create(ctx context.Context, account *entity.Account) error

	// Save persists the current state of an existing account.
	Save(ctx context.Context, account *entity.Account) error
}
