package speech

import (
	"errors"
	"fmt"
)

// Code classifies a generation failure.
type Code string

// Failure taxonomy. Retryability is a property of the failure, not a
// policy: the engine never retries, it only tags the error so callers
// can decide.
const (
	CodeInvalidInput      Code = "INVALID_INPUT"
	CodeCostLimitExceeded Code = "COST_LIMIT_EXCEEDED"
	CodeRateLimit         Code = "RATE_LIMIT"
	CodeQuotaExceeded     Code = "QUOTA_EXCEEDED"
	CodeAuthError         Code = "AUTH_ERROR"
	CodeAPIError          Code = "API_ERROR"
	CodeNotImplemented    Code = "NOT_IMPLEMENTED"
	CodeStorageError      Code = "STORAGE_ERROR"
)

// Validation errors raised before any external call.
var (
	ErrEmptyText        = errors.New("text cannot be empty")
	ErrTextTooLong      = errors.New("text exceeds the provider's character limit")
	ErrSpeedOutOfRange  = errors.New("speed must be between 0.25 and 4.0")
	ErrUnknownVoice     = errors.New("requested voice not found")
	ErrVoiceUnavailable = errors.New("requested voice is not available")
	ErrUnknownProvider  = errors.New("unknown provider")
)

// Error is the structured failure every engine operation returns.
type Error struct {
	Code      Code
	Provider  string // provider involved, if any
	Retryable bool
	Message   string
	Err       error // underlying cause
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Provider != "" {
		return fmt.Sprintf("%s (%s): %s", e.Code, e.Provider, msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates an Error with the default retryability for its code.
// Only RATE_LIMIT and STORAGE_ERROR default to retryable; API_ERROR is
// conditional and set explicitly by the provider adapter.
func NewError(code Code, message string) *Error {
	return &Error{
		Code:      code,
		Message:   message,
		Retryable: code == CodeRateLimit || code == CodeStorageError,
	}
}

// WithProvider tags the error with the provider it came from.
func (e *Error) WithProvider(provider string) *Error {
	e.Provider = provider
	return e
}

// WithCause attaches the underlying error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// WithRetryable overrides the default retryability.
func (e *Error) WithRetryable(retryable bool) *Error {
	e.Retryable = retryable
	return e
}

// AsError extracts the structured error from an error chain.
func AsError(err error) (*Error, bool) {
	var speechErr *Error
	ok := errors.As(err, &speechErr)
	return speechErr, ok
}

// IsRetryable reports whether the caller may usefully retry.
func IsRetryable(err error) bool {
	if speechErr, ok := AsError(err); ok {
		return speechErr.Retryable
	}
	return false
}

// CodeOf returns the failure code, or empty for unclassified errors.
func CodeOf(err error) Code {
	if speechErr, ok := AsError(err); ok {
		return speechErr.Code
	}
	return ""
}
