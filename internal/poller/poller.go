package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
	"github.com/preston-bernstein/epl-compare-service/internal/logging"
	"github.com/preston-bernstein/epl-compare-service/internal/metrics"
	"github.com/preston-bernstein/epl-compare-service/internal/providers"
)

const (
	defaultInterval = 6 * time.Hour
	// Failures tolerated before readiness flips.
	maxConsecutiveFailures = 3
)

// SnapshotWriter persists a season's fixtures.
type SnapshotWriter interface {
	WriteFixtures(id int, fixtures []season.Fixture) error
}

// Invalidator drops cached data for a season.
type Invalidator interface {
	Invalidate(id int)
}

// Status describes the recent health of the poller loop.
type Status struct {
	Season              int
	Fixtures            int
	ConsecutiveFailures int
	LastError           string
	LastWriteError      string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady is true once a refresh has succeeded and failures have not piled up since.
func (s Status) IsReady() bool {
	return !s.LastSuccess.IsZero() && s.ConsecutiveFailures < maxConsecutiveFailures
}

// Poller keeps the in-progress season fresh. Each refresh pulls fixtures from
// the provider, writes the snapshot and invalidates the cached copy so the
// next comparison reads it.
type Poller struct {
	provider providers.SeasonProvider
	writer   SnapshotWriter
	cache    Invalidator
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	season   int
	now      func() time.Time

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}

	statusMu sync.RWMutex
	status   Status
}

// New builds a Poller for season id. writer, cache, logger and recorder may be nil.
func New(provider providers.SeasonProvider, writer SnapshotWriter, cache Invalidator, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration, id int) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		provider: provider,
		writer:   writer,
		cache:    cache,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		season:   id,
		now:      time.Now,
		status:   Status{Season: id},
	}
}

// Start refreshes once right away and then on every interval until ctx ends
// or Stop is called. Calling Start again is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped != nil {
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.stopped = make(chan struct{})
	go p.loop(loopCtx, p.stopped)
}

// Stop cancels the loop and waits for an in-flight refresh to return, or for
// ctx to end first.
func (p *Poller) Stop(ctx context.Context) error {
	p.mu.Lock()
	cancel, stopped := p.cancel, p.stopped
	p.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status returns a copy of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

func (p *Poller) loop(ctx context.Context, stopped chan struct{}) {
	defer close(stopped)
	logging.Info(p.logger, "poller started",
		logging.FieldSeason, p.season,
		logging.FieldDurationMS, p.interval.Milliseconds(),
	)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.refresh(ctx)
		select {
		case <-ctx.Done():
			logging.Info(p.logger, "poller stopped", logging.FieldSeason, p.season)
			return
		case <-ticker.C:
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	start := p.now()
	p.update(func(s *Status) { s.LastAttempt = start })

	fixtures, err := p.provider.FetchFixtures(ctx, p.season)
	if err == nil {
		err = season.ValidateFixtures(p.season, fixtures)
	}
	elapsed := time.Since(start)
	p.metrics.RecordRefreshCycle(p.season, elapsed, err)

	if err != nil {
		logging.Error(p.logger, "poller refresh failed", err,
			logging.FieldSeason, p.season,
			logging.FieldDurationMS, elapsed.Milliseconds(),
		)
		p.update(func(s *Status) {
			s.ConsecutiveFailures++
			s.LastError = err.Error()
		})
		return
	}

	// A failed write still counts as a refresh.
	writeErr := ""
	if p.writer != nil {
		if werr := p.writer.WriteFixtures(p.season, fixtures); werr != nil {
			logging.Error(p.logger, "poller snapshot write failed", werr, logging.FieldSeason, p.season)
			writeErr = werr.Error()
		}
	}
	if p.cache != nil {
		p.cache.Invalidate(p.season)
	}

	p.update(func(s *Status) {
		s.ConsecutiveFailures = 0
		s.LastError = ""
		s.LastWriteError = writeErr
		s.LastSuccess = start
		s.Fixtures = len(fixtures)
	})
	logging.Info(p.logger, "poller refreshed fixtures",
		logging.FieldSeason, p.season,
		logging.FieldCount, len(fixtures),
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
}

func (p *Poller) update(fn func(*Status)) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	fn(&p.status)
}
