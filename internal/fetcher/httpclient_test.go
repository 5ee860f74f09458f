package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestNewHTTPClient_Retries(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		retries  int
		wantHits int32
	}{
		{"server error is retried", http.StatusBadGateway, 1, 2},
		{"timeout status is retried", http.StatusRequestTimeout, 1, 2},
		{"rate limit is not retried", http.StatusTooManyRequests, 2, 1},
		{"client error is not retried", http.StatusNotFound, 2, 1},
		{"no retries configured", http.StatusInternalServerError, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewHTTPClient(server.URL, HTTPOptions{MaxRetries: tt.retries})
			defer client.Close()

			resp, err := client.R().SetContext(context.Background()).Get("/")
			if err != nil {
				t.Fatalf("Get() returned unexpected error: %v", err)
			}
			if resp.StatusCode() != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode(), tt.status)
			}
			if got := hits.Load(); got != tt.wantHits {
				t.Errorf("server hits = %d, want %d", got, tt.wantHits)
			}
		})
	}
}
