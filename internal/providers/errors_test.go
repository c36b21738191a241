package providers

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestRateLimitErrorMessage(t *testing.T) {
	err := &RateLimitError{StatusCode: 429}
	if got := err.Error(); got != "provider rate limited (status=429)" {
		t.Fatalf("unexpected message %q", got)
	}
	err = &RateLimitError{Message: "slow down"}
	if got := err.Error(); got != "slow down" {
		t.Fatalf("unexpected message %q", got)
	}
	err = &RateLimitError{Provider: "footballdata", StatusCode: 429, RetryAfter: 30 * time.Second}
	if got := err.Error(); got != "footballdata: provider rate limited (status=429) retry after 30s" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestRateLimitErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("fetch: %w", &RateLimitError{StatusCode: 429})
	if !errors.Is(err, ErrRateLimited) {
		t.Fatal("expected errors.Is to match ErrRateLimited")
	}
	if errors.Is(err, ErrProviderUnavailable) {
		t.Fatal("expected rate limit not to look like a missing provider")
	}
}

func TestAsRateLimitErrorUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("fetch: %w", &RateLimitError{RetryAfter: time.Second})
	rlErr, ok := AsRateLimitError(wrapped)
	if !ok || rlErr.RetryAfter != time.Second {
		t.Fatalf("expected rate limit error, got %v", rlErr)
	}
	if _, ok := AsRateLimitError(errors.New("boom")); ok {
		t.Fatal("expected plain error not to match")
	}
}

func TestStatusErrorClassification(t *testing.T) {
	cases := []struct {
		status    int
		permanent bool
	}{
		{400, true},
		{403, true},
		{404, true},
		{408, false},
		{500, false},
		{503, false},
	}
	for _, tc := range cases {
		err := fmt.Errorf("wrapped: %w", &StatusError{Provider: "footballdata", StatusCode: tc.status})
		if got := IsPermanent(err); got != tc.permanent {
			t.Fatalf("status %d: expected permanent=%v, got %v", tc.status, tc.permanent, got)
		}
	}
	if IsPermanent(errors.New("connection reset")) {
		t.Fatal("expected transport errors to be retryable")
	}
	if !IsPermanent(ErrProviderUnavailable) {
		t.Fatal("expected missing provider to be permanent")
	}
}

func TestStatusErrorMessage(t *testing.T) {
	err := &StatusError{Provider: "footballdata", StatusCode: 403, Message: "restricted"}
	if got := err.Error(); got != "footballdata: unexpected status 403: restricted" {
		t.Fatalf("unexpected message %q", got)
	}
	err.Message = ""
	if got := err.Error(); got != "footballdata: unexpected status 403" {
		t.Fatalf("unexpected message %q", got)
	}
}
