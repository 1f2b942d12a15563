package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrAccountNotFound indicates that a ledger write referenced an unknown
// financial account name. Accounts are never created implicitly.
var ErrAccountNotFound = errors.New("financial account not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientStock indicates a sale or consumption exceeding on-hand quantity.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrInvalidDirection indicates an unsupported cash direction value.
var ErrInvalidDirection = errors.New("invalid transaction direction")

// ErrInvalidReferenceType indicates an unsupported ledger reference type.
var ErrInvalidReferenceType = errors.New("invalid reference type")

// ErrInvalidEntityType indicates an unsupported ledger entity type.
var ErrInvalidEntityType = errors.New("invalid entity type")

// AppError wraps a lower-level error with an HTTP-ish status code and a message.
// Repositories use it for infrastructure failures; the sentinel errors above
// cover the domain taxonomy.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that also matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
