package fetcher

import (
	"encoding/json"
	"time"
)

// ProviderNone is the provider attribution of a result no provider produced.
const ProviderNone = "none"

// Result is the uniform envelope returned by every orchestrated operation.
// A successful result always carries Data; a failed one carries the zero
// value of T, a non-empty Error, and encodes its data as null.
type Result[T any] struct {
	// Data is the payload produced by Provider. Zero when Success is false.
	Data T `json:"data"`

	// Provider names the provider that answered, or "none".
	Provider string `json:"provider"`

	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	// Timestamp is when the result was produced. Cached results keep the
	// timestamp of the original fetch.
	Timestamp time.Time `json:"timestamp"`

	// Degraded is set when every candidate was rate-limited and the
	// cooling-down providers were tried anyway.
	Degraded bool `json:"degraded,omitempty"`
}

// Succeeded builds a successful result.
func Succeeded[T any](data T, provider string, at time.Time) Result[T] {
	return Result[T]{Data: data, Provider: provider, Success: true, Timestamp: at}
}

// Failed builds a failed result attributed to no provider.
func Failed[T any](msg string, at time.Time) Result[T] {
	var zero T
	return Result[T]{Data: zero, Provider: ProviderNone, Error: msg, Timestamp: at}
}

// MarshalJSON writes "data": null for failed results.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	var data any
	if r.Success {
		data = r.Data
	}
	return json.Marshal(struct {
		Data      any       `json:"data"`
		Provider  string    `json:"provider"`
		Success   bool      `json:"success"`
		Error     string    `json:"error,omitempty"`
		Timestamp time.Time `json:"timestamp"`
		Degraded  bool      `json:"degraded,omitempty"`
	}{data, r.Provider, r.Success, r.Error, r.Timestamp, r.Degraded})
}
