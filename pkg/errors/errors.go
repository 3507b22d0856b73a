package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
	// Gates carries the unmet onboarding gate names, in check order.
	Gates []string `json:"missing,omitempty"`
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

// StatusCode maps the error code to an HTTP status. Consumed by the
// error-handling middleware.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrBadRequest, ErrWorkspaceInactive, ErrInvalidStatus, ErrOnboardingGateUnmet:
		return http.StatusBadRequest
	case ErrSlotAlreadyBooked:
		return http.StatusConflict
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrUnauthorized
	ErrForbidden
	ErrInternal
	ErrWorkspaceInactive
	ErrSlotAlreadyBooked
	ErrInvalidStatus
	ErrOnboardingGateUnmet
)

// Error constructors
func NewNotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func NewBadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

func NewInternal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// Common errors
func NotFound(resource string, err error) *AppError {
	return NewNotFound(resource, err)
}

func BadRequest(message string, err error) *AppError {
	return NewBadRequest(message, err)
}

func Internal(err error) *AppError {
	return NewInternal(err)
}

func Unauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

func WorkspaceInactive() *AppError {
	return &AppError{
		Code:    ErrWorkspaceInactive,
		Message: "workspace is not active",
	}
}

func SlotAlreadyBooked() *AppError {
	return &AppError{
		Code:    ErrSlotAlreadyBooked,
		Message: "slot is already booked",
	}
}

func InvalidStatus(status string, allowed []string) *AppError {
	return &AppError{
		Code:    ErrInvalidStatus,
		Message: fmt.Sprintf("invalid status %q, must be one of: %s", status, strings.Join(allowed, ", ")),
	}
}

func OnboardingGateUnmet(gates []string) *AppError {
	return &AppError{
		Code:    ErrOnboardingGateUnmet,
		Message: fmt.Sprintf("onboarding requirements not met: %s", strings.Join(gates, ", ")),
		Gates:   gates,
	}
}

// Is reports whether err is an AppError with the given code.
func Is(err error, code ErrorCode) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}
