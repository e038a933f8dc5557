// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"

	domainerrors "campus/internal/domain/errors"
)

const (
	// MaxFailedLoginAttempts is the number of consecutive failed logins
	// that triggers a temporary lock.
	MaxFailedLoginAttempts = 5

	// FailedLoginLockDuration is how long the lockout policy suspends an
	// account once the attempt threshold is reached.
	FailedLoginLockDuration = 30 * time.Minute
)

// Account is the sole authentication subject of the platform. It owns the
// credentials, the single role, and the lockout state machine. All
// authentication-relevant mutations go through its methods; the struct holds
// no I/O and can be exercised entirely in memory.
type Account struct {
	ID           uuid.UUID // Stable unique identifier, immutable for the account's life.
	Username     string    // Unique login identifier.
	Email        string    // Contact email carried into issued tokens.
	PasswordHash string    // bcrypt hash; the plaintext is never stored.
	Role         Role      // Exactly one role from the closed set.
	Status       Status    // Lifecycle status: pending activation, active, or blocked.

	// Lockout tracking.
	FailedLoginAttempts int
	Lock                Lock

	// EntityID optionally links the account to a platform record
	// (a student, a teacher, ...). Authentication never inspects it.
	EntityID *uuid.UUID

	// Audit.
	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewAccount creates a freshly provisioned account in PENDING_ACTIVATION.
func NewAccount(username, email, passwordHash string, role Role) *Account {
	now := time.Now()

	return &Account{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Status:       StatusPendingActivation,
		Lock:         NoLock(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Activate transitions the account from PENDING_ACTIVATION to ACTIVE.
// Any other starting status is an invalid transition.
func (a *Account) Activate() error {
	if a.Status != StatusPendingActivation {
		return domainerrors.ErrInvalidStateTransition.WrapMessage("account is not pending activation")
	}
	a.Status = StatusActive
	a.touch()

	return nil
}

// RecordFailedLogin increments the failed-attempt counter. Reaching the
// threshold locks the account for FailedLoginLockDuration as a side effect.
// The operation itself never fails.
func (a *Account) RecordFailedLogin() {
	a.FailedLoginAttempts++
	a.touch()

	if a.FailedLoginAttempts >= MaxFailedLoginAttempts {
		a.LockFor(FailedLoginLockDuration)
	}
}

// RecordSuccessfulLogin resets the failed-attempt counter and stamps the
// last-login time.
func (a *Account) RecordSuccessfulLogin() {
	a.FailedLoginAttempts = 0
	now := time.Now()
	a.LastLoginAt = &now
	a.touch()
}

// LockFor blocks the account for the given duration.
func (a *Account) LockFor(d time.Duration) {
	a.Status = StatusBlocked
	a.Lock = LockUntilTime(time.Now().Add(d))
	a.touch()
}

// BlockPermanently blocks the account until manual intervention.
func (a *Account) BlockPermanently() {
	a.Status = StatusBlocked
	a.Lock = PermanentLock()
	a.touch()
}

// Unblock reactivates the account, clearing the lock and the
// failed-attempt counter.
func (a *Account) Unblock() {
	a.Status = StatusActive
	a.Lock = NoLock()
	a.FailedLoginAttempts = 0
	a.touch()
}

// Locked is the pure lock predicate: it reports whether the stored state is
// an effective block at the given instant, without mutating anything.
// A temporary lock whose expiry has passed no longer counts as locked;
// callers observing that condition run ClearExpiredLock and persist the
// result to realize the auto-unlock.
func (a *Account) Locked(now time.Time) bool {
	if a.Status != StatusBlocked {
		return false
	}

	return !a.Lock.Expired(now)
}

// ClearExpiredLock performs the auto-unlock transition: if the account is
// blocked by a temporary lock whose expiry has passed, it becomes ACTIVE
// with the lock and the failed-attempt counter cleared. It reports whether
// the account changed so the caller knows to persist it.
func (a *Account) ClearExpiredLock(now time.Time) bool {
	if a.Status != StatusBlocked || !a.Lock.Expired(now) {
		return false
	}
	a.Unblock()

	return true
}

// CanLogin reports whether the account may authenticate at the given
// instant: it must be ACTIVE and not effectively locked.
func (a *Account) CanLogin(now time.Time) bool {
	return a.Status == StatusActive && !a.Locked(now)
}

// LinkEntity ties the account to a platform record such as a student or a
// teacher.
func (a *Account) LinkEntity(entityID uuid.UUID) {
	id := entityID
	a.EntityID = &id
	a.touch()
}

// ChangeEmail updates the contact email.
func (a *Account) ChangeEmail(email string) {
	a.Email = email
	a.touch()
}

// ChangePassword replaces the stored password hash.
func (a *Account) ChangePassword(passwordHash string) {
	a.PasswordHash = passwordHash
	a.touch()
}

func (a *Account) touch() {
	a.UpdatedAt = time.Now()
}
