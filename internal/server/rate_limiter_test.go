package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestLimiter(capacity int, window time.Duration) (*RateLimiter, *time.Time) {
	rl := NewRateLimiter(capacity, window)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestRateLimiter_Allow(t *testing.T) {
	rl, now := newTestLimiter(2, time.Minute)
	defer rl.Stop()

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatal("expected first two requests to pass")
	}
	if rl.Allow("a") {
		t.Error("expected third request to be limited")
	}
	if !rl.Allow("b") {
		t.Error("expected other clients to have their own bucket")
	}

	*now = now.Add(59 * time.Second)
	if rl.Allow("a") {
		t.Error("expected bucket to stay empty before the window ends")
	}

	*now = now.Add(time.Second)
	if !rl.Allow("a") {
		t.Error("expected bucket to refill after the window")
	}
}

func TestRateLimiter_ZeroCapacity(t *testing.T) {
	rl, _ := newTestLimiter(0, time.Minute)
	defer rl.Stop()

	if rl.Allow("a") {
		t.Error("expected zero capacity to reject every request")
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl, now := newTestLimiter(1, time.Minute)
	defer rl.Stop()

	rl.Allow("a")
	*now = now.Add(2 * time.Hour)
	rl.Allow("b")
	rl.cleanup()

	if _, ok := rl.clients["a"]; ok {
		t.Error("expected stale bucket to be removed")
	}
	if _, ok := rl.clients["b"]; !ok {
		t.Error("expected fresh bucket to be kept")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl, _ := newTestLimiter(1, time.Minute)
	defer rl.Stop()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := RateLimitMiddleware(rl, next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	req.RemoteAddr = "10.0.0.1:6666"
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 for the same host on another port, got %d", w.Code)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "not-a-host-port"
	if got := clientIP(req); got != "not-a-host-port" {
		t.Errorf("expected raw remote addr, got %q", got)
	}
}
