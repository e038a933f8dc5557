// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the single role an account holds in the platform.
// Roles drive downstream authorization only; they never change the
// outcome of authentication itself.
type Role string

const (
	// RoleAdmin indicates a platform administrator with full access.
	RoleAdmin Role = "ADMIN"
	// RoleTeacher indicates a teacher managing classes, grades and attendance.
	RoleTeacher Role = "TEACHER"
	// RoleStudent indicates a student viewing their own records.
	RoleStudent Role = "STUDENT"
	// RoleGuardian indicates a guardian viewing a linked student's records.
	RoleGuardian Role = "GUARDIAN"
	// RoleStaff indicates administrative staff (secretary).
	RoleStaff Role = "STAFF"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleGuardian, RoleStaff:
		return true
	default:
		return false
	}
}

// IsAdministrative reports whether the role may perform administrative
// operations (account provisioning, unblocking, reports).
func (r Role) IsAdministrative() bool {
	return r == RoleAdmin || r == RoleStaff
}

// IsEducator reports whether the role belongs to teaching staff.
func (r Role) IsEducator() bool {
	return r == RoleTeacher
}

// IsStudent reports whether the role is a student.
func (r Role) IsStudent() bool {
	return r == RoleStudent
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// RoleFromString converts a string to a Role, reporting whether the
// value belongs to the closed role set.
func RoleFromString(s string) (Role, bool) {
	role := Role(s)

	return role, role.IsValid()
}
