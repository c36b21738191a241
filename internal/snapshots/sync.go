package snapshots

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
	"github.com/preston-bernstein/epl-compare-service/internal/logging"
	"github.com/preston-bernstein/epl-compare-service/internal/providers"
)

// Invalidator drops cached data for a season after its snapshots change.
type Invalidator interface {
	Invalidate(id int)
}

// SyncConfig controls snapshot backfill.
type SyncConfig struct {
	Enabled bool
	// Seasons is the window size counted back from Current, inclusive.
	Seasons       int
	Interval      time.Duration
	Current       int
	TopFlight     string
	LowerDivision string
}

// Syncer backfills season snapshots from an upstream provider.
type Syncer struct {
	provider    providers.SeasonProvider
	writer      *Writer
	store       *FSStore
	cfg         SyncConfig
	logger      *slog.Logger
	invalidator Invalidator
}

type syncTask struct {
	season      int
	competition string // empty for fixtures
	force       bool
}

func (t syncTask) String() string {
	if t.competition == "" {
		return fmt.Sprintf("fixtures %d", t.season)
	}
	return fmt.Sprintf("standings %s %d", t.competition, t.season)
}

// NewSyncer constructs a snapshot syncer. invalidator may be nil.
func NewSyncer(provider providers.SeasonProvider, writer *Writer, cfg SyncConfig, logger *slog.Logger, invalidator Invalidator) *Syncer {
	if cfg.Seasons <= 0 {
		cfg.Seasons = 2
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.TopFlight == "" {
		cfg.TopFlight = season.CompetitionPremierLeague
	}
	if cfg.LowerDivision == "" {
		cfg.LowerDivision = season.CompetitionChampionship
	}
	var store *FSStore
	if writer != nil {
		store = NewFSStore(writer.BasePath())
	}
	return &Syncer{
		provider:    provider,
		writer:      writer,
		store:       store,
		cfg:         cfg,
		logger:      logger,
		invalidator: invalidator,
	}
}

// Run performs a one-time backfill of the season window, spaced by Interval.
// The current season's fixtures are always refreshed; everything else is
// fetched only when missing. Callers should run this in a goroutine.
func (s *Syncer) Run(ctx context.Context) {
	if s == nil || !s.cfg.Enabled || s.writer == nil || s.provider == nil || s.cfg.Current <= 0 {
		return
	}
	tasks := s.plan()
	logging.Info(s.logger, "snapshot sync starting",
		logging.FieldSeason, s.cfg.Current,
		"seasons", s.cfg.Seasons,
		logging.FieldCount, len(tasks),
		"interval", s.cfg.Interval.String(),
	)
	for i, task := range tasks {
		if ctx.Err() != nil {
			return
		}
		if err := s.run(ctx, task); err != nil {
			logging.Warn(s.logger, "snapshot sync failed", "task", task.String(), logging.Err(err))
		}
		if i < len(tasks)-1 {
			s.sleep(ctx, s.cfg.Interval)
		}
	}
	logging.Info(s.logger, "snapshot sync finished", logging.FieldCount, len(tasks))
}

// plan lists fetches for the window. Final tables are only taken for
// completed seasons; the in-progress season has none yet.
func (s *Syncer) plan() []syncTask {
	var tasks []syncTask
	for i := 0; i < s.cfg.Seasons; i++ {
		id := s.cfg.Current - i
		if id <= 0 {
			break
		}
		fixtures := syncTask{season: id, force: i == 0}
		if fixtures.force || !s.store.HasFixtures(id) {
			tasks = append(tasks, fixtures)
		}
		if i == 0 {
			continue
		}
		for _, code := range []string{s.cfg.LowerDivision, s.cfg.TopFlight} {
			if !s.store.HasStandings(id, code) {
				tasks = append(tasks, syncTask{season: id, competition: code})
			}
		}
	}
	return tasks
}

// RefreshSeason refetches a season's fixtures and, for completed seasons,
// both competitions' tables. It returns how many snapshots were written and
// stops at the first failure.
func (s *Syncer) RefreshSeason(ctx context.Context, id int) (int, error) {
	if s == nil || s.writer == nil || s.provider == nil {
		return 0, providers.ErrProviderUnavailable
	}
	tasks := []syncTask{{season: id, force: true}}
	if s.cfg.Current <= 0 || id < s.cfg.Current {
		tasks = append(tasks,
			syncTask{season: id, competition: s.cfg.LowerDivision, force: true},
			syncTask{season: id, competition: s.cfg.TopFlight, force: true},
		)
	}
	written := 0
	for i, task := range tasks {
		if i > 0 {
			s.sleep(ctx, s.cfg.Interval)
		}
		if err := s.run(ctx, task); err != nil {
			// A table the upstream does not carry is not fatal to the refresh.
			if task.competition != "" && errors.Is(err, season.ErrNotFound) {
				logging.Warn(s.logger, "snapshot refresh skipped", "task", task.String(), logging.Err(err))
				continue
			}
			return written, fmt.Errorf("%s: %w", task, err)
		}
		written++
	}
	return written, nil
}

func (s *Syncer) run(ctx context.Context, task syncTask) error {
	start := time.Now()
	var (
		count int
		err   error
	)
	if task.competition == "" {
		count, err = s.syncFixtures(ctx, task.season)
	} else {
		count, err = s.syncStandings(ctx, task.season, task.competition)
	}
	if err != nil {
		return err
	}
	if s.invalidator != nil {
		s.invalidator.Invalidate(task.season)
	}
	logging.Info(s.logger, "snapshot written",
		"task", task.String(),
		logging.FieldCount, count,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return nil
}

func (s *Syncer) syncFixtures(ctx context.Context, id int) (int, error) {
	fixtures, err := s.provider.FetchFixtures(ctx, id)
	if err != nil {
		return 0, err
	}
	if len(fixtures) == 0 {
		return 0, fmt.Errorf("no fixtures returned: %w", season.ErrNotFound)
	}
	if err := season.ValidateFixtures(id, fixtures); err != nil {
		return 0, err
	}
	return len(fixtures), s.writer.WriteFixtures(id, fixtures)
}

func (s *Syncer) syncStandings(ctx context.Context, id int, competition string) (int, error) {
	table, err := s.provider.FetchStandings(ctx, id, competition)
	if err != nil {
		return 0, err
	}
	if len(table) == 0 {
		return 0, fmt.Errorf("no standings returned: %w", season.ErrNotFound)
	}
	if err := season.ValidateStandings(id, competition, table); err != nil {
		return 0, err
	}
	return len(table), s.writer.WriteStandings(id, competition, table)
}

func (s *Syncer) sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
