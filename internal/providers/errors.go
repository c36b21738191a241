package providers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrProviderUnavailable is returned when no upstream is configured.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrRateLimited matches every *RateLimitError under errors.Is.
	ErrRateLimited = errors.New("provider rate limited")
)

// RateLimitError is an upstream 429. RetryAfter is zero when the response
// carried no hint. Remaining echoes the quota header when present.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Remaining  string
	Message    string
}

func (e *RateLimitError) Error() string {
	var b strings.Builder
	if e.Provider != "" {
		b.WriteString(e.Provider + ": ")
	}
	if e.Message != "" {
		b.WriteString(e.Message)
	} else {
		b.WriteString(ErrRateLimited.Error())
	}
	if e.StatusCode > 0 {
		fmt.Fprintf(&b, " (status=%d)", e.StatusCode)
	}
	if e.RetryAfter > 0 {
		fmt.Fprintf(&b, " retry after %s", e.RetryAfter)
	}
	return b.String()
}

func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// AsRateLimitError finds a *RateLimitError anywhere in err's chain.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	ok := errors.As(err, &rlErr)
	return rlErr, ok
}

// StatusError is a non-2xx upstream response other than a rate limit.
type StatusError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: unexpected status %d", e.Provider, e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Temporary is true for 5xx and 408, the statuses worth retrying.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusRequestTimeout
}

// IsPermanent reports whether retrying err is pointless: a rejected request
// such as an unknown competition or bad API key, or a missing provider.
func IsPermanent(err error) bool {
	if errors.Is(err, ErrProviderUnavailable) {
		return true
	}
	var statusErr *StatusError
	return errors.As(err, &statusErr) && !statusErr.Temporary()
}
