package apperror

import (
	"errors"
	"net/http"
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation signals malformed or missing input (empty rejection reason,
// missing financial scoring, inverted date range).
func Validation(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message, nil)
}

// Permission signals a failed capability check for the acting user.
func Permission(message string) *AppError {
	return New(http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

// Conflict signals that an entity is not in the state the operation
// requires: a stale read or a duplicate submission. Callers must re-fetch
// before retrying.
func Conflict(message string) *AppError {
	return New(http.StatusConflict, message, nil)
}

// External wraps a record-store or downstream failure outside workflow logic.
func External(err error) *AppError {
	return New(http.StatusBadGateway, "Upstream service failed", err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}

// IsConflict reports whether err carries the conflict status code.
func IsConflict(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == http.StatusConflict
}

// IsValidation reports whether err carries the bad-request status code.
func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest
}

// IsPermission reports whether err carries the forbidden status code.
func IsPermission(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == http.StatusForbidden
}

// IsNotFound reports whether err carries the not-found status code.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == http.StatusNotFound
}
