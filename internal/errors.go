package internal

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "VALIDATION_ERROR"
	ErrorTypeAuth        ErrorType = "AUTH_ERROR"
	ErrorTypeTransport   ErrorType = "TRANSPORT_ERROR"
	ErrorTypeApplication ErrorType = "APPLICATION_ERROR"
)

type ErrorCode string

const (
	ErrCodeInvalidAmount     ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidDate       ErrorCode = "INVALID_DATE"
	ErrCodeMissingParameter  ErrorCode = "MISSING_PARAMETER"
	ErrCodeNotAuthenticated  ErrorCode = "NOT_AUTHENTICATED"
	ErrCodeWrongRole         ErrorCode = "WRONG_ROLE"
	ErrCodeRequestFailed     ErrorCode = "REQUEST_FAILED"
	ErrCodeServerRejected    ErrorCode = "SERVER_REJECTED"
	ErrCodeNoExpenseSelected ErrorCode = "NO_EXPENSE_SELECTED"
)

// AppError is the error shape used across the client. Message carries the
// server-provided error string verbatim for application failures; transport
// failures carry only a cause.
type AppError struct {
	Type       ErrorType
	Code       ErrorCode
	Message    string
	StatusCode int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		if e.Message == "" {
			return e.Cause.Error()
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
	}
}

func NewAuthError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeAuth,
		Code:    code,
		Message: message,
	}
}

func NewTransportError(cause error) *AppError {
	return &AppError{
		Type:  ErrorTypeTransport,
		Code:  ErrCodeRequestFailed,
		Cause: cause,
	}
}

// NewApplicationError wraps a non-2xx response. message is the server's error
// string and may be empty when the payload carried none.
func NewApplicationError(message string, statusCode int) *AppError {
	return &AppError{
		Type:       ErrorTypeApplication,
		Code:       ErrCodeServerRejected,
		Message:    message,
		StatusCode: statusCode,
	}
}

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsTransportError(err error) bool {
	appErr, ok := IsAppError(err)
	return ok && appErr.Type == ErrorTypeTransport
}

// FailureMessage maps an error to the text shown in a message region:
// transport failures get the generic network text, application and validation
// failures surface their own message, anything else falls back.
func FailureMessage(err error, fallback string) string {
	appErr, ok := IsAppError(err)
	if !ok {
		return fallback
	}
	switch appErr.Type {
	case ErrorTypeTransport:
		return "Network error. Please try again."
	case ErrorTypeApplication, ErrorTypeValidation:
		if appErr.Message != "" {
			return appErr.Message
		}
	}
	return fallback
}

var (
	ErrNotAuthenticated  = NewAuthError("not authenticated", ErrCodeNotAuthenticated)
	ErrWrongRole         = NewAuthError("wrong role for this portal", ErrCodeWrongRole)
	ErrNoExpenseSelected = NewValidationError("no expense selected for review", ErrCodeNoExpenseSelected)
)
