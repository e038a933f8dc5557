package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"campus/internal/domain/entity"
)

// Claims defines the custom claims carried by an issued token.
type Claims struct {
	AccountID uuid.UUID   `json:"-"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      entity.Role `json:"role"`
	EntityID  *uuid.UUID  `json:"entityId,omitempty"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating signed tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a signed token asserting the account's identity and role.
	Issue(account *entity.Account) (string, error)

	// Validate checks the token's signature and expiry and returns the
	// decoded claims on success. There is no way to read claims from a
	// token that did not validate: validation and decoding are one
	// operation. Fails closed on any parse, signature, or expiry problem.
	Validate(tokenString string) (*Claims, error)
}
