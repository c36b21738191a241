package requestutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSanitizeRequestID(t *testing.T) {
	if got := SanitizeRequestID("valid-123"); got != "valid-123" {
		t.Fatalf("expected pass-through, got %s", got)
	}
	if got := SanitizeRequestID("bad id"); got == "" || got == "bad id" {
		t.Fatalf("expected sanitized id, got %s", got)
	}
	if got := NewRequestID(); got == "" {
		t.Fatalf("expected generated request id")
	}
	useFallback.Store(true)
	defer useFallback.Store(false)
	if got := NewRequestID(); got == "" {
		t.Fatalf("expected fallback request id when RNG fails")
	}
}

func TestClientIP(t *testing.T) {
	if got := ClientIP(nil); got != "" {
		t.Fatalf("expected empty for nil request, got %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")
	if got := ClientIP(req); got != "1.2.3.4" {
		t.Fatalf("expected first forwarded address, got %s", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "9.9.9.9:1234"
	if got := ClientIP(req); got != "9.9.9.9:1234" {
		t.Fatalf("expected remote addr fallback, got %s", got)
	}
}

func TestNewRequestIDPassesSanitizer(t *testing.T) {
	id := NewRequestID()
	if SanitizeRequestID(id) != id {
		t.Fatalf("expected generated id %q to be accepted as incoming", id)
	}
	useFallback.Store(true)
	defer useFallback.Store(false)
	fallback := NewRequestID()
	if SanitizeRequestID(fallback) != fallback {
		t.Fatalf("expected fallback id %q to be accepted as incoming", fallback)
	}
}

func TestSanitizeRequestIDRejectsOversized(t *testing.T) {
	long := strings.Repeat("a", 65)
	if got := SanitizeRequestID(long); got == long {
		t.Fatalf("expected oversized id to be replaced")
	}
}

func TestClientIPUsesRealIPHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", " 203.0.113.7 ")
	if got := ClientIP(req); got != "203.0.113.7" {
		t.Fatalf("expected X-Real-IP, got %s", got)
	}

	req.Header.Set("X-Forwarded-For", " , 10.0.0.1")
	if got := ClientIP(req); got != "203.0.113.7" {
		t.Fatalf("expected blank forwarded hop to be skipped, got %s", got)
	}
}
