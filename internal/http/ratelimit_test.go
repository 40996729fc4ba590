package http

import (
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smart-stadium/internal/testutil"
)

func okHandler() nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusOK)
	})
}

func TestRateLimitAllowsWithinBurst(t *testing.T) {
	handler := RateLimitMiddleware(10, time.Minute)(okHandler())

	for i := 0; i < 5; i++ {
		rr := testutil.Serve(handler, nethttp.MethodGet, "/api/status", nil)
		testutil.AssertStatus(t, rr, nethttp.StatusOK)
	}
}

func TestRateLimitRejectsBeyondBurst(t *testing.T) {
	handler := RateLimitMiddleware(2, time.Minute)(okHandler())

	rr := testutil.Serve(handler, nethttp.MethodGet, "/api/status", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)

	rr = testutil.Serve(handler, nethttp.MethodGet, "/api/status", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusTooManyRequests)
	if rr.Header().Get("Retry-After") != "60" {
		t.Fatalf("expected Retry-After 60, got %q", rr.Header().Get("Retry-After"))
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected json error body, got %s", got)
	}
}

func TestRateLimitTracksClientsSeparately(t *testing.T) {
	handler := RateLimitMiddleware(2, time.Minute)(okHandler())

	first := httptest.NewRequest(nethttp.MethodGet, "/api/status", nil)
	first.RemoteAddr = "203.0.113.5:1111"
	rr := testutil.ServeRequest(handler, first)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)

	blocked := httptest.NewRequest(nethttp.MethodGet, "/api/status", nil)
	blocked.RemoteAddr = "203.0.113.5:2222"
	rr = testutil.ServeRequest(handler, blocked)
	testutil.AssertStatus(t, rr, nethttp.StatusTooManyRequests)

	other := httptest.NewRequest(nethttp.MethodGet, "/api/status", nil)
	other.RemoteAddr = "198.51.100.7:3333"
	rr = testutil.ServeRequest(handler, other)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)
}

func TestRateLimitMinimumBurst(t *testing.T) {
	limiter := newIPLimiter(1, time.Minute)
	if limiter.burst != 1 {
		t.Fatalf("expected burst floor of 1, got %d", limiter.burst)
	}
}
