package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"smart-stadium/internal/testutil"
)

func BenchmarkStatus(b *testing.B) {
	h := NewHandler(testutil.NewStatusService(), nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		h.Status(rr, req)
	}
}

func BenchmarkHistory(b *testing.B) {
	h := NewHandler(testutil.NewStatusService(), nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/history?limit=50", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		h.History(rr, req)
	}
}
