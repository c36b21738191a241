package store

import (
	"context"
	"sort"
	"sync"

	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
)

// Source is where the store loads seasons it has not cached yet.
type Source interface {
	LoadFixtures(ctx context.Context, id int) ([]season.Fixture, error)
	LoadStandings(ctx context.Context, id int, competition string) ([]season.Standing, error)
}

type standingsKey struct {
	season      int
	competition string
}

// MemoryStore is a thread-safe read-through cache of season data. Callers
// always receive copies, so mutating a result never affects the cache.
//
// Each season carries a generation that Invalidate bumps. A load that started
// before an invalidation still returns what it read but does not cache it.
type MemoryStore struct {
	source Source

	mu          sync.RWMutex
	fixtures    map[int][]season.Fixture
	standings   map[standingsKey][]season.Standing
	generations map[int]uint64
}

// NewMemoryStore constructs an empty MemoryStore over source.
func NewMemoryStore(source Source) *MemoryStore {
	return &MemoryStore{
		source:      source,
		fixtures:    make(map[int][]season.Fixture),
		standings:   make(map[standingsKey][]season.Standing),
		generations: make(map[int]uint64),
	}
}

// LoadFixtures returns a season's fixtures, loading them on first use.
// Load errors are not cached.
func (s *MemoryStore) LoadFixtures(ctx context.Context, id int) ([]season.Fixture, error) {
	s.mu.RLock()
	cached, ok := s.fixtures[id]
	gen := s.generations[id]
	s.mu.RUnlock()
	if ok {
		return season.CloneFixtures(cached), nil
	}

	loaded, err := s.source.LoadFixtures(ctx, id)
	if err != nil {
		return nil, err
	}
	loaded = season.CloneFixtures(loaded)

	s.mu.Lock()
	if s.generations[id] == gen {
		s.fixtures[id] = loaded
	}
	s.mu.Unlock()
	return season.CloneFixtures(loaded), nil
}

// LoadStandings returns a competition's table for a season, loading it on first use.
func (s *MemoryStore) LoadStandings(ctx context.Context, id int, competition string) ([]season.Standing, error) {
	key := standingsKey{season: id, competition: competition}
	s.mu.RLock()
	cached, ok := s.standings[key]
	gen := s.generations[id]
	s.mu.RUnlock()
	if ok {
		return season.CloneStandings(cached), nil
	}

	loaded, err := s.source.LoadStandings(ctx, id, competition)
	if err != nil {
		return nil, err
	}
	loaded = season.CloneStandings(loaded)

	s.mu.Lock()
	if s.generations[id] == gen {
		s.standings[key] = loaded
	}
	s.mu.Unlock()
	return season.CloneStandings(loaded), nil
}

// Invalidate drops everything cached for a season.
func (s *MemoryStore) Invalidate(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[id]++
	delete(s.fixtures, id)
	for key := range s.standings {
		if key.season == id {
			delete(s.standings, key)
		}
	}
}

// Seasons lists the season ids with cached fixtures, ascending.
func (s *MemoryStore) Seasons() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int, 0, len(s.fixtures))
	for id := range s.fixtures {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
