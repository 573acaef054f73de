// Package errors defines the application's error taxonomy: recoverable
// operational errors returned as ordinary Go errors, and contract
// violations that panic since the structure they are raised against is
// left in an undefined state.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for the application.
const (
	CodeUnknown            = "UNKNOWN_ERROR"
	CodeArityMismatch      = "ARITY_MISMATCH"
	CodeUnknownID          = "UNKNOWN_ID"
	CodeSlotOutOfRange     = "SLOT_OUT_OF_RANGE"
	CodeInvalidPermutation = "INVALID_PERMUTATION"
	CodeInvariantViolation = "INVARIANT_VIOLATION"
	CodeDatabaseError      = "DATABASE_ERROR"
	CodeStorageError       = "STORAGE_ERROR"
	CodeSnapshotError      = "SNAPSHOT_ERROR"
	CodeConfigError        = "CONFIG_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidInput       = "INVALID_INPUT"
)

// AppError represents an application error with a code and message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target by code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an existing error with an AppError.
func Wrap(code, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// Common recoverable error instances, returned by the ambient store,
// storage, and config layers.
var (
	ErrDatabaseError = New(CodeDatabaseError, "database error")
	ErrStorageError  = New(CodeStorageError, "storage error")
	ErrSnapshotError = New(CodeSnapshotError, "snapshot error")
	ErrConfigError   = New(CodeConfigError, "configuration error")
	ErrNotFound      = New(CodeNotFound, "resource not found")
	ErrInvalidInput  = New(CodeInvalidInput, "invalid input")
)

// IsDatabaseError checks if the error is a database error.
func IsDatabaseError(err error) bool {
	return errors.Is(err, ErrDatabaseError)
}

// IsStorageError checks if the error is a storage error.
func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorageError)
}

// IsNotFound checks if the error is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// Contract is a panic-carried AppError signaling a programming-contract
// violation against the slotted union-find: arity mismatch, unknown id,
// out-of-range slot, or a non-matching permutation length. These are
// fatal by design (§7 of the spec): the structure is left in an
// undefined state and there is no partial-failure recovery for an
// in-memory algorithm.
type Contract struct {
	*AppError
}

// Fatalf panics with a Contract error built from code and a formatted
// message. Call sites in internal/suf and internal/slot use this instead
// of a bare panic so that a recovering caller (e.g. a CLI command) can
// distinguish a contract violation from any other panic via errors.As.
func Fatalf(code, format string, args ...any) {
	panic(Contract{AppError: New(code, fmt.Sprintf(format, args...))})
}
