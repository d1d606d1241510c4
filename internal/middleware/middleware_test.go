package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/passgen/passgen-go/internal/crypto"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitBlocksAfterBurst(t *testing.T) {
	h := RateLimit(1, 2)(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("first two requests should pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want %d", codes[2], http.StatusTooManyRequests)
	}
}

func TestRateLimitPerIP(t *testing.T) {
	h := RateLimit(1, 1)(okHandler())

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("first request from %s status = %d", addr, rec.Code)
		}
	}
}

func TestRateLimitDisabled(t *testing.T) {
	h := RateLimit(0, 0)(okHandler())
	for i := 0; i < 20; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d with limiting disabled", i, rec.Code)
		}
	}
}

func TestEvictRemovesStaleVisitors(t *testing.T) {
	rl := &ipRateLimiter{visitors: make(map[string]*visitor), rps: 1, burst: 1}
	rl.getLimiter("10.0.0.1")
	rl.evict(time.Now().Add(visitorTTL + time.Second))
	if len(rl.visitors) != 0 {
		t.Errorf("expected stale visitor to be evicted, have %d", len(rl.visitors))
	}
}

func TestAPIAuth(t *testing.T) {
	secret := "test-secret"
	valid, err := crypto.GenerateToken("ci-runner", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	var gotClient string
	h := APIAuth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClient, _ = ClientFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + valid, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}

	if gotClient != "ci-runner" {
		t.Errorf("client in context = %q, want %q", gotClient, "ci-runner")
	}
}

func TestLoggerRecordsStatus(t *testing.T) {
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}

// captureLogs swaps the default logger for a JSON one writing to the returned
// buffer until the test ends.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLoggerRecordsAPIClient(t *testing.T) {
	secret := "test-secret"
	token, err := crypto.GenerateToken("ci-runner", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}
	h := Logger(APIAuth(secret)(okHandler()))

	tests := []struct {
		name       string
		header     string
		wantClient string
	}{
		{name: "authenticated", header: "Bearer " + token, wantClient: "ci-runner"},
		{name: "rejected", header: "Bearer nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/classes", nil)
			req.Header.Set("Authorization", tt.header)
			h.ServeHTTP(httptest.NewRecorder(), req)

			var line map[string]any
			found := false
			dec := json.NewDecoder(buf)
			for dec.More() {
				var rec map[string]any
				if err := dec.Decode(&rec); err != nil {
					t.Fatalf("decoding log line: %v", err)
				}
				if rec["msg"] == "request" {
					line, found = rec, true
				}
			}
			if !found {
				t.Fatal("no request log line written")
			}
			got, _ := line["client"].(string)
			if got != tt.wantClient {
				t.Errorf("logged client = %q, want %q", got, tt.wantClient)
			}
		})
	}
}
