// Package errors provides the error types returned by the Gemini generation adapter.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrGenerationFailed is matched by every network or provider failure,
	// so callers can treat them as one error kind.
	ErrGenerationFailed = errors.New("generation failed")
	ErrMissingAPIKey    = errors.New("no API key found: set GEMINI_API_KEY or GOOGLE_API_KEY")
	ErrEmptyPrompt      = errors.New("prompt cannot be empty")
	ErrInvalidResponse  = errors.New("invalid response format")
	ErrNoContent        = errors.New("no content in response")
	ErrClientClosed     = errors.New("client is closed")
)

// APIError represents a non-200 answer from the generation endpoint
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
	Status     string // provider status string, e.g. "INVALID_ARGUMENT"
}

func (e *APIError) Error() string {
	msg := e.Message
	if e.Status != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Status)
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, msg)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, msg)
}

// Is allows comparison with sentinel errors
func (e *APIError) Is(target error) bool {
	if target == ErrGenerationFailed {
		return true
	}
	_, ok := target.(*APIError)
	return ok
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message, status string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
		Status:     status,
	}
}

// NetworkError represents a transport failure before any response arrived
type NetworkError struct {
	Operation string
	Endpoint  string
	Err       error
}

func (e *NetworkError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("network error during %s at %s: %v", e.Operation, e.Endpoint, e.Err)
	}
	return fmt.Sprintf("network error during %s: %v", e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is allows comparison with sentinel errors
func (e *NetworkError) Is(target error) bool {
	if target == ErrGenerationFailed {
		return true
	}
	_, ok := target.(*NetworkError)
	return ok
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(operation, endpoint string, err error) *NetworkError {
	return &NetworkError{Operation: operation, Endpoint: endpoint, Err: err}
}

// BlockedError represents a prompt or answer rejected by the provider's safety filter
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	if e.Reason == "" {
		return "content blocked"
	}
	return fmt.Sprintf("content blocked: %s", e.Reason)
}

// Is allows comparison with sentinel errors
func (e *BlockedError) Is(target error) bool {
	if target == ErrGenerationFailed {
		return true
	}
	_, ok := target.(*BlockedError)
	return ok
}

// NewBlockedError creates a new BlockedError
func NewBlockedError(reason string) *BlockedError {
	return &BlockedError{Reason: reason}
}

// ParseError represents a response parsing error
type ParseError struct {
	Message string
	Path    string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse error at %q: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is allows comparison with sentinel errors
func (e *ParseError) Is(target error) bool {
	if target == ErrGenerationFailed || target == ErrInvalidResponse {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// NewNoContentError creates a ParseError that also matches ErrNoContent
func NewNoContentError(path string) *ParseError {
	return &ParseError{Message: ErrNoContent.Error(), Path: path, Err: ErrNoContent}
}

// ProviderError wraps a failure raised inside a generation backend, either
// by the SDK or before a request could be sent
type ProviderError struct {
	Backend string
	Err     error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider error: %v", e.Backend, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is allows comparison with sentinel errors
func (e *ProviderError) Is(target error) bool {
	if target == ErrGenerationFailed {
		return true
	}
	_, ok := target.(*ProviderError)
	return ok
}

// NewProviderError creates a new ProviderError
func NewProviderError(backend string, err error) *ProviderError {
	return &ProviderError{Backend: backend, Err: err}
}

// IsNetworkError reports whether err is a transport failure
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsBlockedError reports whether err is a safety block
func IsBlockedError(err error) bool {
	var blocked *BlockedError
	return errors.As(err, &blocked)
}

// IsAuthError reports whether err is an HTTP 401/403 from the endpoint,
// which almost always means a bad or missing API key.
func IsAuthError(err error) bool {
	status := GetHTTPStatus(err)
	return status == 401 || status == 403
}

// IsRateLimitError reports whether err is an HTTP 429 from the endpoint
func IsRateLimitError(err error) bool {
	return GetHTTPStatus(err) == 429
}

// GetHTTPStatus returns the HTTP status code carried by err, or 0
func GetHTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// GetEndpoint returns the endpoint carried by err, or ""
func GetEndpoint(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Endpoint
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Endpoint
	}
	return ""
}
