// Package entity contains the core business objects of the project.
package entity

// Status represents the lifecycle status of an account.
type Status string

const (
	// StatusPendingActivation marks an account that has been provisioned
	// but not yet activated. It cannot log in.
	StatusPendingActivation Status = "PENDING_ACTIVATION"
	// StatusActive marks an account that is allowed to log in.
	StatusActive Status = "ACTIVE"
	// StatusBlocked marks an account suspended by the lockout policy or
	// by administrative action.
	StatusBlocked Status = "BLOCKED"
)

// String returns the string representation of the Status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks if the Status is a valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusPendingActivation, StatusActive, StatusBlocked:
		return true
	default:
		return false
	}
}
