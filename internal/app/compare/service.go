package compare

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/epl-compare-service/internal/comparison"
	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
	"github.com/preston-bernstein/epl-compare-service/internal/logging"
	"github.com/preston-bernstein/epl-compare-service/internal/mapping"
	"github.com/preston-bernstein/epl-compare-service/internal/metrics"
	"github.com/preston-bernstein/epl-compare-service/internal/timeutil"
)

// Coverage below this share of mapped fixtures is logged as a warning.
const lowCoveragePct = 50.0

// ErrSeasonsNotAdjacent is returned when the rosters differ but the reference
// is not the season before current. Promoted teams are only ranked in the
// lower-division table of the season before current.
var ErrSeasonsNotAdjacent = fmt.Errorf("%w: seasons with different rosters must be consecutive", timeutil.ErrInvalidSeason)

// Source supplies season data. It is read-only from the service's view.
type Source interface {
	LoadFixtures(ctx context.Context, id int) ([]season.Fixture, error)
	LoadStandings(ctx context.Context, id int, competition string) ([]season.Standing, error)
}

// Config names the competitions used to rank promoted and relegated teams.
type Config struct {
	TopFlight     string
	LowerDivision string
}

// Service runs season comparisons over an injected Source.
type Service struct {
	source  Source
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewService constructs a Service. logger and recorder may be nil.
func NewService(source Source, cfg Config, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	if cfg.TopFlight == "" {
		cfg.TopFlight = season.CompetitionPremierLeague
	}
	if cfg.LowerDivision == "" {
		cfg.LowerDivision = season.CompetitionChampionship
	}
	return &Service{source: source, cfg: cfg, logger: logger, metrics: recorder}
}

// run is the loaded and resolved state shared by Compare and Substitutions.
type run struct {
	current   []season.Fixture
	reference []season.Fixture
	resolver  *mapping.Resolver
	promoted  []string
	relegated []string
}

// Compare aligns every current fixture with its reference counterpart and
// aggregates both seasons per team. Validation failures abort before mapping.
func (s *Service) Compare(ctx context.Context, current, reference int) (comparison.Result, error) {
	start := time.Now()
	logger := logging.FromContext(ctx, s.logger)

	res, err := s.compare(ctx, current, reference)
	if s.metrics != nil {
		s.metrics.RecordComparison(time.Since(start), res.Coverage.Percent, err)
	}
	if err != nil {
		logging.Warn(logger, "comparison failed",
			logging.FieldSeason, current,
			logging.FieldReference, reference,
			logging.Err(err),
		)
		return comparison.Result{}, err
	}

	attrs := []any{
		logging.FieldSeason, current,
		logging.FieldReference, reference,
		logging.FieldMapped, res.Coverage.Mapped,
		logging.FieldUnmapped, res.Coverage.Unmapped,
		logging.FieldCoveragePct, res.Coverage.Percent,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	}
	if res.Coverage.Fixtures > 0 && res.Coverage.Percent < lowCoveragePct {
		logging.Warn(logger, "comparison has low mapping coverage", attrs...)
	} else {
		logging.Info(logger, "comparison complete", attrs...)
	}
	return res, nil
}

func (s *Service) compare(ctx context.Context, current, reference int) (comparison.Result, error) {
	r, err := s.prepare(ctx, current, reference)
	if err != nil {
		return comparison.Result{}, err
	}
	pairs := mapping.MapFixtures(r.current, r.reference, r.resolver)
	return comparison.Result{
		CurrentSeason:   current,
		ReferenceSeason: reference,
		CurrentLabel:    timeutil.SeasonLabel(current),
		ReferenceLabel:  timeutil.SeasonLabel(reference),
		Substitutions:   nonNil(r.resolver.Pairs()),
		Coverage:        mapping.Summarize(pairs),
		Rows:            comparison.Aggregate(pairs),
	}, nil
}

// Substitutions describes which teams stand in for which between two seasons.
type Substitutions struct {
	CurrentSeason   int            `json:"currentSeason"`
	ReferenceSeason int            `json:"referenceSeason"`
	CurrentLabel    string         `json:"currentLabel"`
	ReferenceLabel  string         `json:"referenceLabel"`
	Promoted        []string       `json:"promoted"`
	Relegated       []string       `json:"relegated"`
	Pairs           []mapping.Pair `json:"pairs"`
}

// Substitutions resolves the substitution map without mapping fixtures.
func (s *Service) Substitutions(ctx context.Context, current, reference int) (Substitutions, error) {
	r, err := s.prepare(ctx, current, reference)
	if err != nil {
		return Substitutions{}, err
	}
	return Substitutions{
		CurrentSeason:   current,
		ReferenceSeason: reference,
		CurrentLabel:    timeutil.SeasonLabel(current),
		ReferenceLabel:  timeutil.SeasonLabel(reference),
		Promoted:        nonNil(r.promoted),
		Relegated:       nonNil(r.relegated),
		Pairs:           nonNil(r.resolver.Pairs()),
	}, nil
}

// Fixtures returns a season's validated fixtures.
func (s *Service) Fixtures(ctx context.Context, id int) ([]season.Fixture, error) {
	if err := timeutil.ValidateSeason(id); err != nil {
		return nil, err
	}
	fixtures, err := s.source.LoadFixtures(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load fixtures %d: %w", id, err)
	}
	if err := season.ValidateFixtures(id, fixtures); err != nil {
		return nil, err
	}
	return fixtures, nil
}

// Team returns one team's breakdown. The team is matched ignoring case and accents.
func (s *Service) Team(ctx context.Context, current, reference int, team string) (comparison.TeamDetail, error) {
	res, err := s.Compare(ctx, current, reference)
	if err != nil {
		return comparison.TeamDetail{}, err
	}
	row, ok := comparison.FindRow(res.Rows, team)
	if !ok {
		return comparison.TeamDetail{}, fmt.Errorf("team %q in season %s: %w", team, res.CurrentLabel, season.ErrNotFound)
	}
	return comparison.Detail(row), nil
}

// Improvers lists the teams with the largest change in metric. An empty
// metric ranks by points.
func (s *Service) Improvers(ctx context.Context, current, reference int, metric comparison.Metric, n int) ([]comparison.Improver, error) {
	metric, err := comparison.ParseMetric(string(metric))
	if err != nil {
		return nil, err
	}
	res, err := s.Compare(ctx, current, reference)
	if err != nil {
		return nil, err
	}
	return comparison.Improvers(res.Rows, metric, n)
}

func (s *Service) prepare(ctx context.Context, current, reference int) (run, error) {
	for _, id := range []int{current, reference} {
		if err := timeutil.ValidateSeason(id); err != nil {
			return run{}, err
		}
	}

	var r run
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		r.current, err = s.loadFixtures(gctx, current)
		return err
	})
	g.Go(func() (err error) {
		r.reference, err = s.loadFixtures(gctx, reference)
		return err
	})
	if err := g.Wait(); err != nil {
		return run{}, err
	}

	in := mapping.Input{
		CurrentRoster:   season.Roster(r.current),
		ReferenceRoster: season.Roster(r.reference),
	}
	r.promoted, r.relegated = rosterChanges(in.CurrentRoster, in.ReferenceRoster)
	if len(r.promoted) > 0 || len(r.relegated) > 0 {
		if reference != current-1 {
			return run{}, fmt.Errorf("%w (%s vs %s)", ErrSeasonsNotAdjacent, timeutil.SeasonLabel(current), timeutil.SeasonLabel(reference))
		}
		var err error
		in.LowerDivision, in.ReferenceTable, err = s.loadTables(ctx, current, reference)
		if err != nil {
			return run{}, err
		}
	}

	resolver, err := mapping.NewResolver(in)
	if err != nil {
		return run{}, err
	}
	r.resolver = resolver
	return r, nil
}

// loadTables fetches the lower division's table from the season the new teams
// were promoted in, and the reference season's top-flight table.
func (s *Service) loadTables(ctx context.Context, current, reference int) (lower, top []season.Standing, err error) {
	promotedIn := current - 1
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		lower, err = s.loadStandings(gctx, promotedIn, s.cfg.LowerDivision)
		return err
	})
	g.Go(func() (err error) {
		top, err = s.loadStandings(gctx, reference, s.cfg.TopFlight)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return lower, top, nil
}

func (s *Service) loadFixtures(ctx context.Context, id int) ([]season.Fixture, error) {
	fixtures, err := s.source.LoadFixtures(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load fixtures %d: %w", id, err)
	}
	if err := season.ValidateFixtures(id, fixtures); err != nil {
		return nil, err
	}
	return fixtures, nil
}

func (s *Service) loadStandings(ctx context.Context, id int, competition string) ([]season.Standing, error) {
	table, err := s.source.LoadStandings(ctx, id, competition)
	if err != nil {
		return nil, fmt.Errorf("load %s standings %d: %w", competition, id, err)
	}
	if err := season.ValidateStandings(id, competition, table); err != nil {
		return nil, err
	}
	return table, nil
}

// rosterChanges lists teams only in current (promoted) and only in reference
// (relegated), each in roster order.
func rosterChanges(current, reference []string) (promoted, relegated []string) {
	inCurrent := make(map[string]struct{}, len(current))
	for _, t := range current {
		inCurrent[t] = struct{}{}
	}
	inReference := make(map[string]struct{}, len(reference))
	for _, t := range reference {
		inReference[t] = struct{}{}
		if _, ok := inCurrent[t]; !ok {
			relegated = append(relegated, t)
		}
	}
	for _, t := range current {
		if _, ok := inReference[t]; !ok {
			promoted = append(promoted, t)
		}
	}
	return promoted, relegated
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
