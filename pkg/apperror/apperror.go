package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrPermission   = errors.New("permission denied")
	ErrInternal     = errors.New("internal server error")
)

// AppError carries the taxonomy kind (BaseError) plus a client-safe
// Message and an internal cause that must never reach the response body.
type AppError struct {
	BaseError error
	Message   string
	Err       error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.BaseError.Error(), e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.BaseError.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.BaseError
}

func New(base error, msg string, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Err: err}
}

func NewNotFound(resource, identifier string) *AppError {
	return New(ErrNotFound, fmt.Sprintf("%s '%s' not found", resource, identifier), nil)
}

func NewConflict(msg string) *AppError {
	return New(ErrConflict, msg, nil)
}

func NewInvalidInput(msg string, err error) *AppError {
	return New(ErrInvalidInput, msg, err)
}

func NewUnauthorized(msg string, err error) *AppError {
	return New(ErrUnauthorized, msg, err)
}

func NewPermissionDenied(msg string) *AppError {
	return New(ErrPermission, msg, nil)
}

func NewInternal(msg string, err error) *AppError {
	return New(ErrInternal, msg, err)
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrPermission):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
