package sample

import (
	"context"
	"fmt"
	"sync"

	"github.com/preston-bernstein/epl-compare-service/internal/comparison"
	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
	"github.com/preston-bernstein/epl-compare-service/internal/mapping"
)

const (
	// CurrentSeason is the in-progress season in the sample dataset.
	CurrentSeason = 2026
	// Matchdays completed in CurrentSeason; earlier seasons are complete.
	currentPlayedThrough = 20
	fullSeason           = 38
)

// Provider serves a deterministic, offline dataset: three top-flight seasons
// with simulated results plus the Championship tables behind each promotion.
type Provider struct {
	once     sync.Once
	fixtures map[int][]season.Fixture
}

// New creates a sample provider.
func New() *Provider {
	return &Provider{}
}

// CurrentSeason reports the dataset's in-progress season.
func (p *Provider) CurrentSeason() int {
	return CurrentSeason
}

// FetchFixtures returns the simulated fixtures for the season.
func (p *Provider) FetchFixtures(ctx context.Context, id int) ([]season.Fixture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.build()
	fixtures, ok := p.fixtures[id]
	if !ok {
		return nil, fmt.Errorf("sample fixtures %d: %w", id, season.ErrNotFound)
	}
	return season.CloneFixtures(fixtures), nil
}

// FetchStandings returns the top-flight table computed from the simulated
// results, or the fixed Championship table.
func (p *Provider) FetchStandings(ctx context.Context, id int, competition string) ([]season.Standing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch competition {
	case season.CompetitionPremierLeague:
		p.build()
		fixtures, ok := p.fixtures[id]
		if !ok {
			break
		}
		return table(id, fixtures), nil
	case season.CompetitionChampionship:
		teams, ok := lowerDivision[id]
		if !ok {
			break
		}
		out := make([]season.Standing, len(teams))
		for i, team := range teams {
			out[i] = season.Standing{Season: id, Competition: competition, Team: team, Position: i + 1}
		}
		return out, nil
	}
	return nil, fmt.Errorf("sample standings %s %d: %w", competition, id, season.ErrNotFound)
}

func (p *Provider) build() {
	p.once.Do(func() {
		p.fixtures = make(map[int][]season.Fixture, len(topFlight))
		for id, teams := range topFlight {
			played := fullSeason
			if id == CurrentSeason {
				played = currentPlayedThrough
			}
			p.fixtures[id] = simulate(id, teams, played)
		}
	})
}

func table(id int, fixtures []season.Fixture) []season.Standing {
	ranked := comparison.Rank(comparison.Aggregate(mapping.MapFixtures(fixtures, nil, nil)))
	out := make([]season.Standing, len(ranked))
	for i, r := range ranked {
		out[i] = season.Standing{
			Season:         id,
			Competition:    season.CompetitionPremierLeague,
			Team:           r.Team,
			Position:       r.Position,
			Points:         r.PointsCurrent,
			GoalDifference: r.GDCurrent,
		}
	}
	return out
}
