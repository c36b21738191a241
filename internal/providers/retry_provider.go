package providers

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
	"github.com/preston-bernstein/epl-compare-service/internal/logging"
	"github.com/preston-bernstein/epl-compare-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	fallbackProviderName = "provider"
)

type backoffFunc func(attempt int) time.Duration

// RetryingProvider wraps a SeasonProvider with retry/backoff behavior.
type RetryingProvider struct {
	inner        SeasonProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	backoffFn    backoffFunc

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner SeasonProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, backoff time.Duration) *RetryingProvider {
	return NewRetryingProviderWithRNG(inner, logger, recorder, name, nil, maxAttempts, backoff)
}

// NewRetryingProviderWithRNG is NewRetryingProvider with a caller-supplied jitter source.
func NewRetryingProviderWithRNG(inner SeasonProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, rng *rand.Rand, maxAttempts int, base time.Duration) *RetryingProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if base <= 0 {
		base = defaultBackoff
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = fallbackProviderName
	}
	return &RetryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: name,
		maxAttempts:  maxAttempts,
		rng:          rng,
		backoffFn: func(attempt int) time.Duration {
			return base << (attempt - 1)
		},
	}
}

func (r *RetryingProvider) FetchFixtures(ctx context.Context, id int) ([]season.Fixture, error) {
	return retry(ctx, r, "fixtures", func(ctx context.Context, inner SeasonProvider) ([]season.Fixture, error) {
		return inner.FetchFixtures(ctx, id)
	})
}

func (r *RetryingProvider) FetchStandings(ctx context.Context, id int, competition string) ([]season.Standing, error) {
	return retry(ctx, r, "standings", func(ctx context.Context, inner SeasonProvider) ([]season.Standing, error) {
		return inner.FetchStandings(ctx, id, competition)
	})
}

// Close closes the wrapped provider when it holds resources.
func (r *RetryingProvider) Close() error {
	if closer, ok := r.inner.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func retry[T any](ctx context.Context, r *RetryingProvider, dataset string, call func(context.Context, SeasonProvider) (T, error)) (T, error) {
	var zero T
	if r.inner == nil {
		return zero, ErrProviderUnavailable
	}

	policy := &delayPolicy{provider: r}
	op := func() (T, error) {
		start := time.Now()
		out, err := call(ctx, r.inner)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return out, nil
		}
		policy.lastErr = err
		if rlErr, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rlErr.RetryAfter)
		}
		if IsPermanent(err) {
			return zero, backoff.Permanent(err)
		}
		return zero, err
	}
	notify := func(err error, delay time.Duration) {
		r.logWarn(ctx, "provider fetch retry",
			"dataset", dataset,
			"attempt", policy.attempt,
			"max_attempts", r.maxAttempts,
			"delay_ms", delay.Milliseconds(),
			logging.Err(err),
		)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(r.maxAttempts-1)), ctx)
	out, err := backoff.RetryNotifyWithData(op, b, notify)
	if err != nil {
		r.logWarn(ctx, "provider fetch failed", "dataset", dataset, "attempts", policy.attempt+1, logging.Err(err))
		return zero, err
	}
	return out, nil
}

// delayPolicy adapts computeDelay to backoff.BackOff so the retry loop can
// honor upstream Retry-After hints.
type delayPolicy struct {
	provider *RetryingProvider
	attempt  int
	lastErr  error
}

func (p *delayPolicy) NextBackOff() time.Duration {
	p.attempt++
	return p.provider.computeDelay(p.lastErr, p.attempt)
}

func (p *delayPolicy) Reset() {
	p.attempt = 0
	p.lastErr = nil
}

// computeDelay prefers the upstream Retry-After; otherwise it jitters the
// backoff for attempt into [base/2, base].
func (r *RetryingProvider) computeDelay(err error, attempt int) time.Duration {
	if rlErr, ok := AsRateLimitError(err); ok && rlErr.RetryAfter > 0 {
		return rlErr.RetryAfter
	}
	base := r.backoffFn(attempt)
	if base <= 0 {
		return 0
	}
	half := base / 2
	r.rngMu.Lock()
	jitter := time.Duration(r.rng.Int63n(int64(base-half) + 1))
	r.rngMu.Unlock()
	return half + jitter
}

func (r *RetryingProvider) logWarn(ctx context.Context, msg string, args ...any) {
	logging.Warn(scopedLogger(ctx, r.logger, r.providerName), msg, args...)
}
