package core

import (
	"errors"
	"fmt"
	"net/http"
)

// Error code constants
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeConfiguration = "CONFIGURATION_ERROR"
	ErrCodeCredential    = "CREDENTIAL_ERROR"
	ErrCodeUpstream      = "UPSTREAM_ERROR"
	ErrCodeTimeout       = "TIMEOUT_ERROR"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// RelayError is the unified error type for the generation pipeline.
// Status is the HTTP status the relay reports for it; for upstream
// failures that is the upstream status code, unchanged.
type RelayError struct {
	Status  int
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *RelayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap supports errors.Is / errors.As chains.
func (e *RelayError) Unwrap() error {
	return e.Cause
}

// NewValidationError reports bad caller input (400).
func NewValidationError(message string) *RelayError {
	return &RelayError{Status: http.StatusBadRequest, Code: ErrCodeValidation, Message: message}
}

// NewConfigurationError reports missing credentials or project id (500).
// The process keeps serving; the condition repeats until fixed.
func NewConfigurationError(message string) *RelayError {
	return &RelayError{Status: http.StatusInternalServerError, Code: ErrCodeConfiguration, Message: message}
}

// NewCredentialError reports a failed credential refresh (500).
func NewCredentialError(message string, cause error) *RelayError {
	return &RelayError{Status: http.StatusInternalServerError, Code: ErrCodeCredential, Message: message, Cause: cause}
}

// NewUpstreamError forwards a non-success upstream status with an
// enriched message.
func NewUpstreamError(status int, message string) *RelayError {
	return &RelayError{Status: status, Code: ErrCodeUpstream, Message: message}
}

// NewTimeoutError reports an outbound call exceeding its bound (500).
func NewTimeoutError(message string, cause error) *RelayError {
	return &RelayError{Status: http.StatusInternalServerError, Code: ErrCodeTimeout, Message: message, Cause: cause}
}

// NewInternalError reports any other pipeline failure (500).
func NewInternalError(message string, cause error) *RelayError {
	return &RelayError{Status: http.StatusInternalServerError, Code: ErrCodeInternal, Message: message, Cause: cause}
}

// AsRelayError extracts a RelayError from an error chain; unknown
// errors map to an internal error carrying the original text.
func AsRelayError(err error) *RelayError {
	var relayErr *RelayError
	if errors.As(err, &relayErr) {
		return relayErr
	}
	return NewInternalError(err.Error(), err)
}
