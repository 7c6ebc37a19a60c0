// Package apperror defines the application's error taxonomy.
//
// Sentinel errors classify WHAT went wrong; AppError carries the message a
// client is allowed to see. The service layer returns these untouched, and
// the HTTP handlers are the single place where kinds are mapped to status
// codes (via errors.Is / errors.As).
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrDuplicate          = errors.New("duplicate")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AppError is an error with a user-facing message.
//
// The Message field is what ends up in the HTTP response body, so it must
// never contain internals (SQL, file paths, wrapped driver errors). Err
// carries the sentinel used for classification.
type AppError struct {
	Err     error  // sentinel: classifies the error kind
	Message string // human-readable, safe to return to clients
	Field   string // optional: field that caused a validation error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that a resource does not exist.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

// ValidationFailed reports a request body that breaks the schema rules.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// DuplicateAccount reports a registration against an already-taken email.
// The message is fixed — it is part of the API contract.
func DuplicateAccount() *AppError {
	return &AppError{
		Err:     ErrDuplicate,
		Message: "User with this email already exists",
	}
}

// InvalidCredentials reports a failed login.
//
// The same message covers both "no such email" and "wrong password" so that
// a response cannot be used to enumerate registered addresses.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: "Invalid email or password",
	}
}
