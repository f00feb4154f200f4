package services

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
)

// ValidationError marks caller input that failed a precondition. It is always
// returned before any I/O is attempted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// DataAccessError wraps a storage failure. The boundary layer turns it into a
// generic server error; the wrapped cause only goes to the log sink.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *DataAccessError) Unwrap() error { return e.Err }
