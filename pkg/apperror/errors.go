package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrBadRequest   = errors.New("bad request")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnavailable  = errors.New("service unavailable")
	ErrInternal     = errors.New("internal server error")
)

// AppError carries the HTTP status and the user-facing message of a failed operation.
// Err keeps the underlying cause for errors.Is/As.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Invalid reports a validation failure with a message shown to the user as-is.
func Invalid(message string, err error) *AppError {
	if err == nil {
		err = ErrInvalidInput
	}
	return New(http.StatusBadRequest, message, err)
}

// Internal wraps a backend failure; the message keeps the underlying error text.
func Internal(prefix string, err error) *AppError {
	msg := prefix
	if err != nil {
		msg = prefix + ": " + err.Error()
	}
	return New(http.StatusInternalServerError, msg, err)
}

// MapErrorToStatus maps common errors to HTTP status codes
func MapErrorToStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrUnavailable) {
		return http.StatusServiceUnavailable
	}
	// Default to internal server error
	return http.StatusInternalServerError
}
