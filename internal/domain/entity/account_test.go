package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActiveAccount(t *testing.T) *Account {
	t.Helper()

	account := NewAccount("alice", "alice@example.com", "$2a$12$hash", RoleStudent)
	require.NoError(t, account.Activate())

	return account
}

func TestNewAccount_StartsPendingActivation(t *testing.T) {
	account := NewAccount("alice", "alice@example.com", "$2a$12$hash", RoleStudent)

	assert.Equal(t, StatusPendingActivation, account.Status)
	assert.Equal(t, LockNone, account.Lock.Kind)
	assert.Zero(t, account.FailedLoginAttempts)
	assert.NotEqual(t, account.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.False(t, account.CanLogin(time.Now()))
}

func TestAccount_Activate(t *testing.T) {
	account := NewAccount("alice", "alice@example.com", "$2a$12$hash", RoleStudent)

	require.NoError(t, account.Activate())
	assert.Equal(t, StatusActive, account.Status)
	assert.True(t, account.CanLogin(time.Now()))
}

func TestAccount_Activate_OnlyFromPending(t *testing.T) {
	account := newActiveAccount(t)

	err := account.Activate()
	assert.Error(t, err)
	assert.Equal(t, StatusActive, account.Status)

	account.BlockPermanently()
	err = account.Activate()
	assert.Error(t, err)
	assert.Equal(t, StatusBlocked, account.Status)
}

func TestAccount_RecordFailedLogin_BelowThresholdDoesNotLock(t *testing.T) {
	account := newActiveAccount(t)

	for i := 0; i < MaxFailedLoginAttempts-1; i++ {
		account.RecordFailedLogin()
	}

	assert.Equal(t, MaxFailedLoginAttempts-1, account.FailedLoginAttempts)
	assert.Equal(t, StatusActive, account.Status)
	assert.True(t, account.CanLogin(time.Now()))
}

func TestAccount_RecordFailedLogin_ThresholdLocksAccount(t *testing.T) {
	account := newActiveAccount(t)

	before := time.Now()
	for i := 0; i < MaxFailedLoginAttempts; i++ {
		account.RecordFailedLogin()
	}
	after := time.Now()

	assert.Equal(t, StatusBlocked, account.Status)
	require.Equal(t, LockUntil, account.Lock.Kind)

	// The lock expiry lands at lock time plus the configured duration.
	assert.False(t, account.Lock.Until.Before(before.Add(FailedLoginLockDuration)))
	assert.False(t, account.Lock.Until.After(after.Add(FailedLoginLockDuration)))

	assert.True(t, account.Locked(time.Now()))
	assert.False(t, account.CanLogin(time.Now()))
}

func TestAccount_RecordSuccessfulLogin_ResetsCounter(t *testing.T) {
	account := newActiveAccount(t)

	account.RecordFailedLogin()
	account.RecordFailedLogin()
	require.Equal(t, 2, account.FailedLoginAttempts)

	account.RecordSuccessfulLogin()

	assert.Zero(t, account.FailedLoginAttempts)
	require.NotNil(t, account.LastLoginAt)
	assert.WithinDuration(t, time.Now(), *account.LastLoginAt, time.Second)
}

func TestAccount_Locked_IsPure(t *testing.T) {
	account := newActiveAccount(t)
	account.LockFor(FailedLoginLockDuration)
	account.FailedLoginAttempts = MaxFailedLoginAttempts

	afterExpiry := time.Now().Add(FailedLoginLockDuration + time.Minute)

	// The predicate reports the expired lock as not locked but must not
	// mutate anything.
	assert.False(t, account.Locked(afterExpiry))
	assert.Equal(t, StatusBlocked, account.Status)
	assert.Equal(t, LockUntil, account.Lock.Kind)
	assert.Equal(t, MaxFailedLoginAttempts, account.FailedLoginAttempts)
}

func TestAccount_ClearExpiredLock(t *testing.T) {
	account := newActiveAccount(t)
	account.LockFor(FailedLoginLockDuration)
	account.FailedLoginAttempts = MaxFailedLoginAttempts

	// Before expiry nothing changes.
	assert.False(t, account.ClearExpiredLock(time.Now()))
	assert.Equal(t, StatusBlocked, account.Status)

	// After expiry the transition runs: active, lock gone, counter reset.
	afterExpiry := time.Now().Add(FailedLoginLockDuration + time.Minute)
	assert.True(t, account.ClearExpiredLock(afterExpiry))
	assert.Equal(t, StatusActive, account.Status)
	assert.Equal(t, LockNone, account.Lock.Kind)
	assert.Zero(t, account.FailedLoginAttempts)
	assert.True(t, account.CanLogin(afterExpiry))

	// Running it again is a no-op.
	assert.False(t, account.ClearExpiredLock(afterExpiry))
}

func TestAccount_PermanentBlockNeverExpires(t *testing.T) {
	account := newActiveAccount(t)
	account.BlockPermanently()

	farFuture := time.Now().Add(100 * 365 * 24 * time.Hour)

	assert.True(t, account.Locked(farFuture))
	assert.False(t, account.ClearExpiredLock(farFuture))
	assert.Equal(t, StatusBlocked, account.Status)
	assert.Nil(t, account.Lock.UntilPtr())
}

func TestAccount_Unblock(t *testing.T) {
	account := newActiveAccount(t)
	for i := 0; i < MaxFailedLoginAttempts; i++ {
		account.RecordFailedLogin()
	}
	require.Equal(t, StatusBlocked, account.Status)

	account.Unblock()

	assert.Equal(t, StatusActive, account.Status)
	assert.Equal(t, LockNone, account.Lock.Kind)
	assert.Zero(t, account.FailedLoginAttempts)
	assert.True(t, account.CanLogin(time.Now()))
}

func TestAccount_CanLogin(t *testing.T) {
	now := time.Now()

	pending := NewAccount("p", "p@example.com", "h", RoleStudent)
	assert.False(t, pending.CanLogin(now))

	active := newActiveAccount(t)
	assert.True(t, active.CanLogin(now))

	temporarilyLocked := newActiveAccount(t)
	temporarilyLocked.LockFor(FailedLoginLockDuration)
	assert.False(t, temporarilyLocked.CanLogin(now))
	// A blocked status with an expired lock still denies login until the
	// explicit clear transition runs.
	assert.False(t, temporarilyLocked.CanLogin(now.Add(FailedLoginLockDuration+time.Minute)))

	permanentlyBlocked := newActiveAccount(t)
	permanentlyBlocked.BlockPermanently()
	assert.False(t, permanentlyBlocked.CanLogin(now))
}

func TestAccount_LinkEntity(t *testing.T) {
	account := newActiveAccount(t)
	require.Nil(t, account.EntityID)

	entityID := account.ID // any uuid will do
	account.LinkEntity(entityID)

	require.NotNil(t, account.EntityID)
	assert.Equal(t, entityID, *account.EntityID)
}

func TestLock_UntilPtr(t *testing.T) {
	until := time.Now().Add(time.Hour)

	assert.Nil(t, NoLock().UntilPtr())
	assert.Nil(t, PermanentLock().UntilPtr())

	ptr := LockUntilTime(until).UntilPtr()
	require.NotNil(t, ptr)
	assert.True(t, ptr.Equal(until))
}
