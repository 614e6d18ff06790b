package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies the kind of failure returned to API clients.
type ErrorCode string

const (
	ErrCodeValidation          ErrorCode = "VALIDATION_ERROR"
	ErrCodeUnauthorized        ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden           ErrorCode = "FORBIDDEN"
	ErrCodeNotFound            ErrorCode = "NOT_FOUND"
	ErrCodeUserExists          ErrorCode = "USER_EXISTS"
	ErrCodeCooldown            ErrorCode = "COOLDOWN"
	ErrCodeInsufficientCredits ErrorCode = "INSUFFICIENT_CREDITS"
	ErrCodeRateLimited         ErrorCode = "RATE_LIMITED"
	ErrCodeInternal            ErrorCode = "INTERNAL_ERROR"
)

// AppError is the error type every service returns for expected failures.
type AppError struct {
	Code    ErrorCode
	Message string
	Status  int
	Err     error
	Meta    map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, status int, message string, err error) *AppError {
	return &AppError{Code: code, Status: status, Message: message, Err: err}
}

func Validation(message string) *AppError {
	return New(ErrCodeValidation, http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(ErrCodeUnauthorized, http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(ErrCodeForbidden, http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(ErrCodeNotFound, http.StatusNotFound, message, nil)
}

func UserExists() *AppError {
	return New(ErrCodeUserExists, http.StatusBadRequest, "User with this mobile number already exists", nil)
}

// Cooldown reports a check-in attempted inside the cooldown window.
func Cooldown(minutesRemaining int) *AppError {
	e := New(ErrCodeCooldown, http.StatusBadRequest,
		fmt.Sprintf("You have checked in recently. Please try again in %d minutes.", minutesRemaining), nil)
	e.Meta = map[string]interface{}{"minutesRemaining": minutesRemaining}
	return e
}

func InsufficientCredits(required int) *AppError {
	e := New(ErrCodeInsufficientCredits, http.StatusBadRequest,
		fmt.Sprintf("You do not have enough credits for this gym. It costs %d credits.", required), nil)
	e.Meta = map[string]interface{}{"required": required}
	return e
}

func RateLimited() *AppError {
	return New(ErrCodeRateLimited, http.StatusTooManyRequests, "Too many requests", nil)
}

// Internal hides err from the client; it is only logged.
func Internal(err error) *AppError {
	return New(ErrCodeInternal, http.StatusInternalServerError, "Internal server error", err)
}

// As extracts an *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}
