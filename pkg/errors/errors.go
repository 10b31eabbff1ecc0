package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies an error class using the callable-endpoint
// vocabulary the mobile client already understands.
type ErrorCode string

const (
	ErrInvalidArgument ErrorCode = "invalid-argument"
	ErrNotFound        ErrorCode = "not-found"
	ErrInternal        ErrorCode = "internal"
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
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

// HTTPStatus maps the error code onto an HTTP status for the REST surface.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case ErrInvalidArgument:
		return http.StatusBadRequest
	case ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error constructors
func InvalidArgument(message string, err error) *AppError {
	return &AppError{
		Code:    ErrInvalidArgument,
		Message: message,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: message,
		Err:     err,
	}
}

// AsAppError unwraps err into an *AppError, or wraps it as internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("internal server error", err)
}
