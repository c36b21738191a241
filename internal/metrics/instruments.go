package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterPrefix = "epl_"

// otelInstruments mirrors Recorder events onto OpenTelemetry instruments.
type otelInstruments struct {
	requests        metric.Int64Counter
	requestLatency  metric.Float64Histogram
	attempts        metric.Int64Counter
	attemptErrors   metric.Int64Counter
	attemptLatency  metric.Float64Histogram
	rateLimits      metric.Int64Counter
	retryAfter      metric.Float64Histogram
	refreshes       metric.Int64Counter
	refreshErrors   metric.Int64Counter
	refreshLatency  metric.Float64Histogram
	comparisons     metric.Int64Counter
	comparisonTime  metric.Float64Histogram
	mappingCoverage metric.Float64Histogram
}

// instrumentSet creates instruments on one meter and keeps the first error,
// so construction reads as a flat list.
type instrumentSet struct {
	meter metric.Meter
	err   error
}

func (s *instrumentSet) counter(name, desc string) metric.Int64Counter {
	c, err := s.meter.Int64Counter(meterPrefix+name, metric.WithDescription(desc))
	if err != nil && s.err == nil {
		s.err = err
	}
	return c
}

func (s *instrumentSet) histogram(name, unit, desc string) metric.Float64Histogram {
	h, err := s.meter.Float64Histogram(meterPrefix+name, metric.WithUnit(unit), metric.WithDescription(desc))
	if err != nil && s.err == nil {
		s.err = err
	}
	return h
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	s := &instrumentSet{meter: provider.Meter(defaultServiceName)}
	inst := &otelInstruments{
		requests:        s.counter("http_requests_total", "HTTP requests served"),
		requestLatency:  s.histogram("http_request_duration", "ms", "HTTP request latency"),
		attempts:        s.counter("provider_attempts_total", "Upstream provider calls"),
		attemptErrors:   s.counter("provider_errors_total", "Failed upstream provider calls"),
		attemptLatency:  s.histogram("provider_duration", "ms", "Upstream provider call latency"),
		rateLimits:      s.counter("provider_rate_limit_hits_total", "Upstream rate limit responses"),
		retryAfter:      s.histogram("provider_retry_after", "ms", "Retry-After announced by the upstream"),
		refreshes:       s.counter("snapshot_refresh_cycles_total", "Current season refreshes"),
		refreshErrors:   s.counter("snapshot_refresh_errors_total", "Failed current season refreshes"),
		refreshLatency:  s.histogram("snapshot_refresh_duration", "ms", "Current season refresh latency"),
		comparisons:     s.counter("comparison_runs_total", "Season comparisons run"),
		comparisonTime:  s.histogram("comparison_duration", "ms", "Season comparison latency"),
		mappingCoverage: s.histogram("comparison_mapping_coverage", "%", "Share of current fixtures with a reference counterpart"),
	}
	if s.err != nil {
		return nil, s.err
	}
	return inst, nil
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	)
	ctx := context.Background()
	o.requests.Add(ctx, 1, attrs)
	o.requestLatency.Record(ctx, millis(duration), attrs)
}

func (o *otelInstruments) recordProviderAttempt(provider string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(AttrProvider, provider))
	ctx := context.Background()
	o.attempts.Add(ctx, 1, attrs)
	o.attemptLatency.Record(ctx, millis(duration), attrs)
	if err != nil {
		o.attemptErrors.Add(ctx, 1, attrs)
	}
}

func (o *otelInstruments) recordRateLimit(provider string, retryAfter time.Duration) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(AttrProvider, provider))
	ctx := context.Background()
	o.rateLimits.Add(ctx, 1, attrs)
	if retryAfter > 0 {
		o.retryAfter.Record(ctx, millis(retryAfter), attrs)
	}
}

func (o *otelInstruments) recordRefresh(season int, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.Int(AttrSeason, season))
	ctx := context.Background()
	o.refreshes.Add(ctx, 1, attrs)
	o.refreshLatency.Record(ctx, millis(duration), attrs)
	if err != nil {
		o.refreshErrors.Add(ctx, 1, attrs)
	}
}

func (o *otelInstruments) recordComparison(duration time.Duration, coveragePct float64, err error) {
	if o == nil {
		return
	}
	ctx := context.Background()
	attrs := metric.WithAttributes(attribute.String(AttrOutcome, outcome(err)))
	o.comparisons.Add(ctx, 1, attrs)
	o.comparisonTime.Record(ctx, millis(duration), attrs)
	if err == nil {
		o.mappingCoverage.Record(ctx, coveragePct)
	}
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
