package types

import (
	"errors"
	"fmt"
)

// Error is a domain error carrying a stable code.
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Error codes
const (
	ErrCodeCoderNotFound       = "CODER_NOT_FOUND"
	ErrCodeServiceNotFound     = "SERVICE_NOT_FOUND"
	ErrCodeStreamNotFound      = "STREAM_NOT_FOUND"
	ErrCodeChannelNotFound     = "CHANNEL_NOT_FOUND"
	ErrCodeIncompatibleService = "INCOMPATIBLE_SERVICE"
	ErrCodeNoSuitableEncoder   = "NO_SUITABLE_ENCODER"
	ErrCodeInvalidAddress      = "INVALID_ADDRESS"
	ErrCodeBackendError        = "BACKEND_ERROR"
)

// NewError creates a new domain error.
func NewError(code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// HasCode reports whether err is a domain error with the given code.
func HasCode(err error, code string) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}
