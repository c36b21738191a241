package testutil

import (
	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
	"github.com/preston-bernstein/epl-compare-service/internal/teststubs"
)

// Result returns a finished fixture with the given score.
func Result(id string, seasonID, matchday int, home, away string, homeGoals, awayGoals int) season.Fixture {
	return season.Fixture{
		ID:        id,
		Season:    seasonID,
		Matchday:  matchday,
		Status:    season.StatusFinished,
		HomeTeam:  home,
		AwayTeam:  away,
		HomeGoals: season.Goals(homeGoals),
		AwayGoals: season.Goals(awayGoals),
	}
}

// Scheduled returns an unplayed fixture.
func Scheduled(id string, seasonID, matchday int, home, away string) season.Fixture {
	return season.Fixture{
		ID:       id,
		Season:   seasonID,
		Matchday: matchday,
		Status:   season.StatusScheduled,
		HomeTeam: home,
		AwayTeam: away,
	}
}

// Table builds a final table with positions following the order of teams.
func Table(seasonID int, competition string, teams ...string) []season.Standing {
	out := make([]season.Standing, len(teams))
	for i, team := range teams {
		out[i] = season.Standing{Season: seasonID, Competition: competition, Team: team, Position: i + 1}
	}
	return out
}

// PromotionSource is a four-team 2025/26 vs 2024/25 dataset in which Leeds
// United replace Southampton.
func PromotionSource() *teststubs.StubSource {
	return &teststubs.StubSource{
		Fixtures: map[int][]season.Fixture{
			2025: {
				Result("r1", 2025, 1, "Arsenal", "Southampton", 2, 0),
				Result("r2", 2025, 1, "Chelsea", "Liverpool", 1, 1),
				Result("r3", 2025, 2, "Southampton", "Chelsea", 0, 3),
				Result("r4", 2025, 2, "Liverpool", "Arsenal", 2, 1),
			},
			2026: {
				Result("c1", 2026, 1, "Arsenal", "Leeds United", 1, 1),
				Result("c2", 2026, 1, "Chelsea", "Liverpool", 2, 0),
				Result("c3", 2026, 2, "Leeds United", "Chelsea", 1, 0),
				Scheduled("c4", 2026, 2, "Liverpool", "Arsenal"),
			},
		},
		Standings: map[string][]season.Standing{
			teststubs.StandingsKey(season.CompetitionChampionship, 2025): Table(2025, season.CompetitionChampionship, "Leeds United", "Burnley"),
			teststubs.StandingsKey(season.CompetitionPremierLeague, 2025): Table(2025, season.CompetitionPremierLeague, "Liverpool", "Arsenal", "Chelsea", "Southampton"),
		},
	}
}
