// Package model holds the GORM persistence models mirroring the database schema.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. PostgreSQL generates UUIDs via
// uuid_generate_v7(). The lock state is stored the way the schema encodes
// it: status plus a nullable locked_until (NULL while BLOCKED means a
// permanent block). It is an exported type so it can be used by the GORM
// Gen tool from other packages.
type AccountModel struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Username            string    `gorm:"type:varchar(100);unique;not null"`
	Email               string    `gorm:"type:varchar(255);unique;not null"`
	PasswordHash        string    `gorm:"type:varchar(255);not null"`
	Role                string    `gorm:"type:varchar(20);not null"`
	Status              string    `gorm:"type:varchar(30);not null"`
	FailedLoginAttempts int       `gorm:"not null;default:0"`
	LockedUntil         *time.Time
	LastLoginAt         *time.Time
	EntityID            *uuid.UUID `gorm:"type:uuid"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
