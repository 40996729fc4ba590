package providers

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestRateLimitErrorString(t *testing.T) {
	err := &RateLimitError{
		Provider:   "p",
		StatusCode: 429,
		Message:    "rate limited",
	}
	if got := err.Error(); got == "" || got == "rate limited" {
		t.Fatalf("expected status in error string, got %q", got)
	}

	rl, ok := AsRateLimitError(err)
	if !ok || rl == nil {
		t.Fatalf("expected to unwrap rate limit error")
	}

	noStatus := &RateLimitError{}
	if got := noStatus.Error(); got == "" {
		t.Fatalf("expected fallback message")
	}
}

func TestMalformedPayloadErrorUnwraps(t *testing.T) {
	err := &MalformedPayloadError{Provider: "espn", Field: "competitions"}
	if got := err.Error(); got == "" {
		t.Fatalf("expected message, got empty string")
	}

	wrapped := fmt.Errorf("fetch scoreboard: %w", err)
	mp, ok := AsMalformedPayloadError(wrapped)
	if !ok || mp.Field != "competitions" {
		t.Fatalf("expected to unwrap malformed payload error, got %v ok=%v", mp, ok)
	}

	if _, ok := AsMalformedPayloadError(errors.New("boom")); ok {
		t.Fatalf("expected plain error not to unwrap")
	}
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "generic", err: errors.New("boom"), want: true},
		{name: "rate_limit", err: &RateLimitError{StatusCode: 429}, want: false},
		{name: "wrapped_rate_limit", err: fmt.Errorf("fetch: %w", &RateLimitError{}), want: false},
		{name: "malformed_payload", err: &MalformedPayloadError{Provider: "espn", Field: "id"}, want: false},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "wrapped_deadline", err: fmt.Errorf("fetch: %w", context.DeadlineExceeded), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Retryable(tt.err); got != tt.want {
				t.Fatalf("Retryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
