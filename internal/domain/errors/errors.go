package errors

import (
	"net/http"
	"time"

	"campus/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// ErrInvalidCredentials is deliberately generic: it never discloses
	// whether the username or the password was wrong.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"invalid username or password",
		"",
	)

	// ErrAccountNotActive covers accounts that exist but cannot log in for
	// a reason other than locking, e.g. still pending activation.
	ErrAccountNotActive = NewBaseError(
		http.StatusForbidden,
		"ACCOUNT_NOT_ACTIVE",
		"account is not active",
		"",
	)

	// ErrAccountNotFound is surfaced internally only; token bearers are
	// never told whether an account exists.
	ErrAccountNotFound = NewBaseError(
		http.StatusNotFound,
		"ACCOUNT_NOT_FOUND",
		"account not found",
		"",
	)

	ErrAccountAlreadyExists = NewBaseError(
		http.StatusConflict,
		"ACCOUNT_ALREADY_EXISTS",
		"username or email already registered",
		"",
	)

	ErrInvalidStateTransition = NewBaseError(
		http.StatusConflict,
		"INVALID_STATE_TRANSITION",
		"operation not allowed in the account's current state",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	ErrPasswordStrength = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_STRENGTH",
		"password does not meet the strength policy",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"failed to process password",
		"",
	)

	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"database transaction failed",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"access denied",
		"",
	)
)

// BlockedAccountError reports a login attempt against a blocked account.
// It carries the unlock instant for temporary locks; a nil unlock time
// means the block is permanent. Implements the AppError interface.
type BlockedAccountError struct {
	lockedUntil *time.Time
}

// NewBlockedAccountError creates a blocked-account error. Pass nil for a
// permanent block.
func NewBlockedAccountError(lockedUntil *time.Time) *BlockedAccountError {
	return &BlockedAccountError{lockedUntil: lockedUntil}
}

// LockedUntil returns the unlock instant, or nil for a permanent block.
func (e *BlockedAccountError) LockedUntil() *time.Time {
	return e.lockedUntil
}

// Error implements the error interface
func (e *BlockedAccountError) Error() string {
	return e.Message()
}

// HTTPCode returns the HTTP status code
func (e *BlockedAccountError) HTTPCode() int {
	return http.StatusForbidden
}

// ErrorCode returns the business error code
func (e *BlockedAccountError) ErrorCode() string {
	return "ACCOUNT_BLOCKED"
}

// Message returns the user-friendly error message
func (e *BlockedAccountError) Message() string {
	if e.lockedUntil == nil {
		return "account is permanently blocked"
	}

	return "account is temporarily blocked"
}

// Details returns detailed error information
func (e *BlockedAccountError) Details() string {
	if e.lockedUntil == nil {
		return ""
	}

	return "blocked until " + e.lockedUntil.Format(time.RFC3339)
}

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
