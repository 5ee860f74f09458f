package fetcher

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType is the category of a failed provider call.
type ErrorType string

const (
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeRateLimit  ErrorType = "rate_limit"
	ErrorTypeServer     ErrorType = "server"
	ErrorTypeClient     ErrorType = "client"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeTimeout    ErrorType = "timeout"
	// ErrorTypeUnknown covers statuses outside 4xx/5xx, e.g. an unfollowed redirect
	ErrorTypeUnknown ErrorType = "unknown"
)

// FetchError is the failure adapters report. Only ErrorTypeRateLimit changes
// what the orchestrator does; the other types end up in logs.
type FetchError struct {
	Type       ErrorType
	StatusCode int
	Message    string
	Cause      error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Type, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// TypeOf returns the category of err, or ErrorTypeUnknown when err carries
// no FetchError.
func TypeOf(err error) ErrorType {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Type
	}
	return ErrorTypeUnknown
}

func NewNetworkError(cause error) *FetchError {
	return &FetchError{Type: ErrorTypeNetwork, Message: "network request failed", Cause: cause}
}

func NewTimeoutError(cause error) *FetchError {
	return &FetchError{Type: ErrorTypeTimeout, Message: "request timed out", Cause: cause}
}

// NewRateLimitError is an HTTP-level throttling response.
func NewRateLimitError(statusCode int) *FetchError {
	return &FetchError{Type: ErrorTypeRateLimit, StatusCode: statusCode, Message: "rate limit exceeded"}
}

// NewRateLimitNotice is throttling reported inside an otherwise successful
// response body.
func NewRateLimitNotice(message string) *FetchError {
	return &FetchError{Type: ErrorTypeRateLimit, Message: message}
}

func NewClientError(statusCode int, message string) *FetchError {
	return &FetchError{Type: ErrorTypeClient, StatusCode: statusCode, Message: message}
}

// NewValidationError reports a response that arrived but could not be used.
func NewValidationError(message string) *FetchError {
	return &FetchError{Type: ErrorTypeValidation, Message: message}
}

// ClassifyHTTPError maps a non-2xx status from a provider to a FetchError.
func ClassifyHTTPError(statusCode int) *FetchError {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return NewRateLimitError(statusCode)
	case statusCode >= 500:
		return &FetchError{Type: ErrorTypeServer, StatusCode: statusCode, Message: "server returned an error"}
	case statusCode >= 400:
		return NewClientError(statusCode, fmt.Sprintf("client error: HTTP %d", statusCode))
	default:
		return &FetchError{Type: ErrorTypeUnknown, StatusCode: statusCode, Message: fmt.Sprintf("unexpected status code: %d", statusCode)}
	}
}
