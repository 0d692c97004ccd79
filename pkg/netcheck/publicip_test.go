package netcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDetect_FirstSuccessfulEndpointWins(t *testing.T) {
	first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("203.0.113.5\n"))
	}))
	defer first.Close()
	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("198.51.100.7"))
	}))
	defer second.Close()

	d := NewDetectorWithEndpoints([]string{first.URL, second.URL})
	if got := d.Detect(context.Background()); got != "203.0.113.5" {
		t.Errorf("Detect = %q, want 203.0.113.5", got)
	}
}

func TestDetect_FallsThroughTimedOutEndpoint(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte("192.0.2.1"))
	}))
	defer slow.Close()
	fast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("203.0.113.5"))
	}))
	defer fast.Close()

	d := NewDetectorWithEndpoints([]string{slow.URL, fast.URL})
	d.client = &http.Client{Timeout: 50 * time.Millisecond}

	if got := d.Detect(context.Background()); got != "203.0.113.5" {
		t.Errorf("Detect = %q, want 203.0.113.5", got)
	}
}

func TestDetect_SkipsInvalidResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{"garbage body", "<html>not an ip</html>", http.StatusOK},
		{"server error", "203.0.113.5", http.StatusInternalServerError},
		{"empty body", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				w.Write([]byte(tt.body))
			}))
			defer bad.Close()
			good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("203.0.113.5"))
			}))
			defer good.Close()

			d := NewDetectorWithEndpoints([]string{bad.URL, good.URL})
			if got := d.Detect(context.Background()); got != "203.0.113.5" {
				t.Errorf("Detect = %q, want 203.0.113.5", got)
			}
		})
	}
}
