// Package entity contains the core business objects of the project.
package entity

import "time"

// LockKind discriminates the lock variants of an account.
type LockKind string

const (
	// LockNone means the account carries no lock.
	LockNone LockKind = "NONE"
	// LockUntil means the account is locked until a known instant and
	// unlocks automatically once that instant has passed.
	LockUntil LockKind = "UNTIL"
	// LockPermanent means the account stays locked until manual intervention.
	LockPermanent LockKind = "PERMANENT"
)

// Lock is the tagged lock state of an account. It replaces the
// "expiry timestamp present vs absent" encoding with an explicit variant,
// so callers match on Kind instead of probing a nullable timestamp.
type Lock struct {
	Kind  LockKind
	Until time.Time // meaningful only when Kind == LockUntil
}

// NoLock returns the unlocked variant.
func NoLock() Lock {
	return Lock{Kind: LockNone}
}

// LockUntilTime returns a temporary lock expiring at t.
func LockUntilTime(t time.Time) Lock {
	return Lock{Kind: LockUntil, Until: t}
}

// PermanentLock returns the permanent lock variant.
func PermanentLock() Lock {
	return Lock{Kind: LockPermanent}
}

// Expired reports whether a temporary lock has passed at the given instant.
// Permanent locks never expire; the unlocked variant has nothing to expire.
func (l Lock) Expired(now time.Time) bool {
	return l.Kind == LockUntil && now.After(l.Until)
}

// UntilPtr returns the unlock instant for a temporary lock, or nil for
// the other variants. Used when surfacing blocked-account errors and when
// mapping to the persistence schema.
func (l Lock) UntilPtr() *time.Time {
	if l.Kind != LockUntil {
		return nil
	}
	until := l.Until

	return &until
}
