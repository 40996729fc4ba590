package providers

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrProviderUnavailable signals a decorator was wired without an inner provider.
var ErrProviderUnavailable = errors.New("provider unavailable")

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Remaining  string
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// MalformedPayloadError reports an upstream document missing a required field.
// Parsing fails closed rather than synthesizing events from absent data.
type MalformedPayloadError struct {
	Provider string
	Field    string
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("%s: malformed payload: missing %s", e.Provider, e.Field)
}

// AsMalformedPayloadError attempts to unwrap an error into a MalformedPayloadError.
func AsMalformedPayloadError(err error) (*MalformedPayloadError, bool) {
	var mpErr *MalformedPayloadError
	if errors.As(err, &mpErr) {
		return mpErr, true
	}
	return nil, false
}

// Retryable reports whether a fetch error is worth an immediate retry.
// Rate limits propagate so the polling loop can back off; malformed payloads
// are deterministic; context errors mean the budget is already spent.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if _, ok := AsRateLimitError(err); ok {
		return false
	}
	if _, ok := AsMalformedPayloadError(err); ok {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	return true
}
