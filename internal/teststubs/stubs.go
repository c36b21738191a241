package teststubs

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
)

// StandingsKey indexes standings maps by competition and season.
func StandingsKey(competition string, id int) string {
	return fmt.Sprintf("%s/%d", competition, id)
}

// StubProvider is a test double for providers.SeasonProvider.
type StubProvider struct {
	Fixtures  map[int][]season.Fixture
	Standings map[string][]season.Standing // keyed by StandingsKey
	Err       error
	Calls     atomic.Int32
	Notify    chan struct{}
}

// FetchFixtures returns configured fixtures and error while tracking calls.
func (s *StubProvider) FetchFixtures(ctx context.Context, id int) ([]season.Fixture, error) {
	s.touch()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Fixtures[id], nil
}

// FetchStandings returns configured standings and error while tracking calls.
func (s *StubProvider) FetchStandings(ctx context.Context, id int, competition string) ([]season.Standing, error) {
	s.touch()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Standings[StandingsKey(competition, id)], nil
}

func (s *StubProvider) touch() {
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
}

// StubSource is a test double for the comparison service's season source.
// Missing seasons report season.ErrNotFound.
type StubSource struct {
	Fixtures  map[int][]season.Fixture
	Standings map[string][]season.Standing // keyed by StandingsKey
	Err       error

	mu            sync.Mutex
	FixtureLoads  []int
	StandingLoads []string
}

// LoadFixtures returns the fixtures configured for id.
func (s *StubSource) LoadFixtures(ctx context.Context, id int) ([]season.Fixture, error) {
	s.mu.Lock()
	s.FixtureLoads = append(s.FixtureLoads, id)
	s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	fixtures, ok := s.Fixtures[id]
	if !ok {
		return nil, fmt.Errorf("fixtures %d: %w", id, season.ErrNotFound)
	}
	return season.CloneFixtures(fixtures), nil
}

// LoadStandings returns the standings configured for competition and id.
func (s *StubSource) LoadStandings(ctx context.Context, id int, competition string) ([]season.Standing, error) {
	key := StandingsKey(competition, id)
	s.mu.Lock()
	s.StandingLoads = append(s.StandingLoads, key)
	s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	standings, ok := s.Standings[key]
	if !ok {
		return nil, fmt.Errorf("standings %s: %w", key, season.ErrNotFound)
	}
	return season.CloneStandings(standings), nil
}

// Loads returns how many fixture and standings loads were made.
func (s *StubSource) Loads() (fixtures, standings int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.FixtureLoads), len(s.StandingLoads)
}

// StubSnapshotWriter records fixture snapshots in memory.
type StubSnapshotWriter struct {
	mu      sync.Mutex
	Written map[int][]season.Fixture
	Err     error
}

// WriteFixtures stores fixtures for id unless Err is set.
func (s *StubSnapshotWriter) WriteFixtures(id int, fixtures []season.Fixture) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Written == nil {
		s.Written = make(map[int][]season.Fixture)
	}
	s.Written[id] = season.CloneFixtures(fixtures)
	return nil
}

// Fixtures returns what was written for id.
func (s *StubSnapshotWriter) Fixtures(id int) ([]season.Fixture, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.Written[id]
	return f, ok
}

// StubInvalidator counts cache invalidations per season.
type StubInvalidator struct {
	mu     sync.Mutex
	counts map[int]int
}

// Invalidate records an invalidation of id.
func (s *StubInvalidator) Invalidate(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counts == nil {
		s.counts = make(map[int]int)
	}
	s.counts[id]++
}

// Count returns how many times id was invalidated.
func (s *StubInvalidator) Count(id int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[id]
}
