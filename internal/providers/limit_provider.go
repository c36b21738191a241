package providers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
	"github.com/preston-bernstein/epl-compare-service/internal/logging"
)

const (
	rateLimitedName     = "rate-limited"
	defaultCallInterval = time.Minute
)

// RateLimitedProvider spaces upstream calls at least interval apart. The first
// call goes straight through; later ones queue for the next free slot.
type RateLimitedProvider struct {
	next     SeasonProvider
	interval time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	nextAt time.Time
	closed bool
}

func NewRateLimitedProvider(next SeasonProvider, interval time.Duration, logger *slog.Logger) *RateLimitedProvider {
	if interval <= 0 {
		interval = defaultCallInterval
	}
	return &RateLimitedProvider{next: next, interval: interval, logger: logger}
}

func (p *RateLimitedProvider) FetchFixtures(ctx context.Context, id int) ([]season.Fixture, error) {
	if err := p.wait(ctx, logging.Season(id)); err != nil {
		return nil, err
	}
	return p.next.FetchFixtures(ctx, id)
}

func (p *RateLimitedProvider) FetchStandings(ctx context.Context, id int, competition string) ([]season.Standing, error) {
	if err := p.wait(ctx, logging.Season(id), slog.String(logging.FieldCompetition, competition)); err != nil {
		return nil, err
	}
	return p.next.FetchStandings(ctx, id, competition)
}

// Close makes every later call fail with ErrProviderUnavailable.
func (p *RateLimitedProvider) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}

// wait reserves the next slot and sleeps until it opens. A canceled wait
// gives its slot back only when no later caller has queued behind it.
func (p *RateLimitedProvider) wait(ctx context.Context, attrs ...any) error {
	logger := scopedLogger(ctx, p.logger, rateLimitedName)

	p.mu.Lock()
	if p.closed || p.next == nil {
		p.mu.Unlock()
		logging.Warn(logger, "provider unavailable")
		return ErrProviderUnavailable
	}
	now := time.Now()
	slot := p.nextAt
	if slot.Before(now) {
		slot = now
	}
	p.nextAt = slot.Add(p.interval)
	p.mu.Unlock()

	delay := time.Until(slot)
	if delay <= 0 {
		if err := ctx.Err(); err != nil {
			p.release(slot)
			return err
		}
		return nil
	}

	logging.Debug(logger, "waiting for rate limit slot", append(attrs, slog.Duration("delay", delay))...)
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		p.release(slot)
		logging.Warn(logger, "rate-limited fetch canceled", attrs...)
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *RateLimitedProvider) release(slot time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.nextAt.Equal(slot.Add(p.interval)) {
		p.nextAt = slot
	}
}
