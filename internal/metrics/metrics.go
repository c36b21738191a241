package metrics

import (
	"sync"
	"time"
)

// Snapshot is a copy of one provider's counters.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

// ComparisonSnapshot is a copy of the comparison counters.
type ComparisonSnapshot struct {
	Runs         int
	Failures     int
	LastCoverage float64
	LastDuration time.Duration
}

// Recorder keeps in-memory counters for provider calls, season refreshes and
// comparison runs, and mirrors every event to OpenTelemetry when Setup built
// it with instruments. A nil *Recorder ignores every call.
type Recorder struct {
	mu          sync.Mutex
	providers   map[string]Snapshot
	refreshes   map[int]int
	comparisons ComparisonSnapshot
	otel        *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		providers: make(map[string]Snapshot),
		refreshes: make(map[int]int),
		otel:      otel,
	}
}

func (r *Recorder) updateProvider(provider string, fn func(*Snapshot)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.providers[provider]
	fn(&s)
	r.providers[provider] = s
}

// RecordProviderAttempt counts one upstream call and keeps its latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.updateProvider(provider, func(s *Snapshot) {
		s.Calls++
		s.LastCallLatency = duration
		if err != nil {
			s.Errors++
		}
	})
	r.otel.recordProviderAttempt(provider, duration, err)
}

// RecordRateLimit counts an upstream rate limit response. A positive
// retryAfter replaces the last one seen.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}
	r.updateProvider(provider, func(s *Snapshot) {
		s.RateLimitHits++
		if retryAfter > 0 {
			s.LastRetryAfter = retryAfter
		}
	})
	r.otel.recordRateLimit(provider, retryAfter)
}

// Snapshot returns a copy of the provider's counters.
func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.providers[provider]
}

func (r *Recorder) ProviderCalls(provider string) int { return r.Snapshot(provider).Calls }

func (r *Recorder) ProviderErrors(provider string) int { return r.Snapshot(provider).Errors }

func (r *Recorder) RateLimitHits(provider string) int { return r.Snapshot(provider).RateLimitHits }

func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// RecordHTTPRequest only feeds OpenTelemetry; there are no in-memory HTTP counters.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordRefreshCycle tracks one refresh of a season's snapshots.
func (r *Recorder) RecordRefreshCycle(season int, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.refreshes[season]++
	r.mu.Unlock()
	r.otel.recordRefresh(season, duration, err)
}

// RefreshCycles returns how many refreshes were recorded for season.
func (r *Recorder) RefreshCycles(season int) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refreshes[season]
}

// RecordComparison tracks a comparison run. coveragePct is the share of
// current fixtures that found a reference counterpart; failed runs leave the
// last coverage untouched.
func (r *Recorder) RecordComparison(duration time.Duration, coveragePct float64, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.comparisons.Runs++
	r.comparisons.LastDuration = duration
	if err != nil {
		r.comparisons.Failures++
	} else {
		r.comparisons.LastCoverage = coveragePct
	}
	r.mu.Unlock()
	r.otel.recordComparison(duration, coveragePct, err)
}

// Comparisons returns the current comparison counters.
func (r *Recorder) Comparisons() ComparisonSnapshot {
	if r == nil {
		return ComparisonSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.comparisons
}
