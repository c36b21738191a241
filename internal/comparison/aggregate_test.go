package comparison

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
	"github.com/preston-bernstein/epl-compare-service/internal/mapping"
)

func result(id string, s, md int, home, away string, hg, ag int) season.Fixture {
	return season.Fixture{
		ID: id, Season: s, Matchday: md, Status: season.StatusFinished,
		HomeTeam: home, AwayTeam: away,
		HomeGoals: season.Goals(hg), AwayGoals: season.Goals(ag),
	}
}

func upcoming(id string, s, md int, home, away string) season.Fixture {
	return season.Fixture{ID: id, Season: s, Matchday: md, Status: season.StatusScheduled, HomeTeam: home, AwayTeam: away}
}

func rowFor(t *testing.T, rows []Row, team string) Row {
	t.Helper()
	for _, r := range rows {
		if r.Team == team {
			return r
		}
	}
	t.Fatalf("no row for %s", team)
	return Row{}
}

func TestAggregateArsenalChelseaScenario(t *testing.T) {
	current := []season.Fixture{result("c1", 2026, 1, "Arsenal", "Chelsea", 2, 1)}
	reference := []season.Fixture{result("r1", 2025, 1, "Arsenal", "Chelsea", 1, 1)}

	rows := Aggregate(mapping.MapFixtures(current, reference, nil))
	require.Len(t, rows, 2)

	arsenal := rowFor(t, rows, "Arsenal")
	assert.Equal(t, 3, arsenal.PointsCurrent)
	assert.Equal(t, 1, arsenal.PointsReference)
	assert.Equal(t, 2, arsenal.DeltaPoints)
	assert.Equal(t, 1, arsenal.GDCurrent)
	assert.Equal(t, 0, arsenal.GDReference)
	assert.Equal(t, 1, arsenal.DeltaGD)

	chelsea := rowFor(t, rows, "Chelsea")
	assert.Equal(t, 0, chelsea.PointsCurrent)
	assert.Equal(t, 1, chelsea.PointsReference)
	assert.Equal(t, -1, chelsea.DeltaPoints)
	assert.Equal(t, -1, chelsea.DeltaGD)
}

func TestAggregateUnplayedFixtureContributesNothing(t *testing.T) {
	current := []season.Fixture{
		result("c1", 2026, 1, "Arsenal", "Chelsea", 2, 0),
		upcoming("c2", 2026, 2, "Chelsea", "Arsenal"),
	}
	rows := Aggregate(mapping.MapFixtures(current, nil, nil))

	arsenal := rowFor(t, rows, "Arsenal")
	assert.Equal(t, 1, arsenal.Current.Played)
	assert.Equal(t, 3, arsenal.PointsCurrent)
	assert.Equal(t, 2, arsenal.GDCurrent)

	chelsea := rowFor(t, rows, "Chelsea")
	assert.Equal(t, 1, chelsea.Current.Played)
	assert.Equal(t, 0, chelsea.Current.Drawn)
	assert.Equal(t, -2, chelsea.GDCurrent)
}

func TestAggregateTeamWithOnlyUnplayedFixturesStillGetsARow(t *testing.T) {
	rows := Aggregate(mapping.MapFixtures([]season.Fixture{upcoming("c1", 2026, 1, "Leeds United", "Burnley")}, nil, nil))
	require.Len(t, rows, 2)
	assert.Equal(t, "Burnley", rows[0].Team)
	assert.Zero(t, rows[0].Current.Played)
	assert.Equal(t, 1, rows[0].Unmapped)
}

func TestAggregateReferenceOnlyCountsMappedFixtures(t *testing.T) {
	current := []season.Fixture{
		result("c1", 2026, 1, "Arsenal", "Chelsea", 1, 0),
		result("c2", 2026, 2, "Chelsea", "Arsenal", 1, 0),
	}
	reference := []season.Fixture{result("r1", 2025, 1, "Arsenal", "Chelsea", 3, 0)}

	rows := Aggregate(mapping.MapFixtures(current, reference, nil))
	arsenal := rowFor(t, rows, "Arsenal")
	assert.Equal(t, 2, arsenal.Current.Played)
	assert.Equal(t, 1, arsenal.Reference.Played)
	assert.Equal(t, 1, arsenal.Unmapped)
	assert.Equal(t, 3, arsenal.PointsReference)
	assert.Equal(t, 3, arsenal.GDReference)
}

func TestAggregateCreditsReferenceResultToSubstitutedTeam(t *testing.T) {
	r, err := mapping.NewResolver(mapping.Input{
		CurrentRoster:   []string{"Arsenal", "Leeds United"},
		ReferenceRoster: []string{"Arsenal", "Southampton"},
		LowerDivision:   []season.Standing{{Team: "Leeds United", Position: 1}},
		ReferenceTable:  []season.Standing{{Team: "Arsenal", Position: 2}, {Team: "Southampton", Position: 18}},
	})
	require.NoError(t, err)

	current := []season.Fixture{result("c1", 2026, 1, "Leeds United", "Arsenal", 1, 1)}
	reference := []season.Fixture{result("r1", 2025, 7, "Southampton", "Arsenal", 0, 2)}

	rows := Aggregate(mapping.MapFixtures(current, reference, r))
	require.Len(t, rows, 2)

	leeds := rowFor(t, rows, "Leeds United")
	assert.Equal(t, 1, leeds.PointsCurrent)
	assert.Equal(t, 0, leeds.PointsReference)
	assert.Equal(t, -2, leeds.GDReference)
	assert.Equal(t, 1, leeds.DeltaPoints)

	arsenal := rowFor(t, rows, "Arsenal")
	assert.Equal(t, 3, arsenal.PointsReference)
	assert.Equal(t, -2, arsenal.DeltaPoints)
}

func TestAggregateAwardsThreePointsPerCompletedFixture(t *testing.T) {
	scores := [][2]int{{0, 0}, {1, 0}, {0, 1}, {3, 3}, {4, 2}}
	var fixtures []season.Fixture
	for i, s := range scores {
		fixtures = append(fixtures, result(string(rune('a'+i)), 2026, i+1, "Home", "Away", s[0], s[1]))
	}
	for _, f := range fixtures {
		rows := Aggregate(mapping.MapFixtures([]season.Fixture{f}, nil, nil))
		total := rows[0].PointsCurrent + rows[1].PointsCurrent
		if total != 2 && total != 3 {
			t.Fatalf("fixture %s awarded %d points", f.ID, total)
		}
		if rows[0].Current.Drawn == 1 {
			assert.Equal(t, 2, total, "a draw gives one point each")
		} else {
			assert.Equal(t, 3, total)
		}
	}
}

func TestAggregateDeltaIdentity(t *testing.T) {
	current := []season.Fixture{
		result("c1", 2026, 1, "Arsenal", "Chelsea", 2, 1),
		result("c2", 2026, 2, "Chelsea", "Liverpool", 0, 0),
		result("c3", 2026, 3, "Liverpool", "Arsenal", 3, 1),
	}
	reference := []season.Fixture{
		result("r1", 2025, 1, "Arsenal", "Chelsea", 0, 1),
		result("r2", 2025, 2, "Chelsea", "Liverpool", 2, 2),
		result("r3", 2025, 3, "Liverpool", "Arsenal", 0, 4),
	}
	for _, r := range Aggregate(mapping.MapFixtures(current, reference, nil)) {
		assert.Equal(t, r.PointsCurrent-r.PointsReference, r.DeltaPoints, r.Team)
		assert.Equal(t, r.GDCurrent-r.GDReference, r.DeltaGD, r.Team)
		assert.Equal(t, r.Current.GoalDifference(), r.GDCurrent, r.Team)
	}
}

func TestAggregateSelfComparisonHasZeroDeltas(t *testing.T) {
	fixtures := []season.Fixture{
		result("1", 2025, 1, "Arsenal", "Chelsea", 2, 1),
		result("2", 2025, 1, "Liverpool", "Everton", 0, 0),
		result("3", 2025, 2, "Chelsea", "Liverpool", 1, 3),
		result("4", 2025, 2, "Everton", "Arsenal", 2, 2),
		upcoming("5", 2025, 3, "Arsenal", "Liverpool"),
	}
	roster := season.Roster(fixtures)
	r, err := mapping.NewResolver(mapping.Input{CurrentRoster: roster, ReferenceRoster: roster})
	require.NoError(t, err)

	rows := Aggregate(mapping.MapFixtures(fixtures, fixtures, r))
	require.Len(t, rows, 4)
	for _, row := range rows {
		assert.Zero(t, row.DeltaPoints, row.Team)
		assert.Zero(t, row.DeltaGD, row.Team)
		assert.Zero(t, row.Unmapped, row.Team)
		assert.Equal(t, row.Current, row.Reference, row.Team)
	}
}

func TestAggregateIsDeterministic(t *testing.T) {
	current := []season.Fixture{
		result("c1", 2026, 1, "Wolves", "Arsenal", 2, 1),
		result("c2", 2026, 1, "Brentford", "Chelsea", 0, 0),
	}
	first := Aggregate(mapping.MapFixtures(current, nil, nil))
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Aggregate(mapping.MapFixtures(current, nil, nil)))
	}
	assert.Equal(t, []string{"Arsenal", "Brentford", "Chelsea", "Wolves"}, []string{first[0].Team, first[1].Team, first[2].Team, first[3].Team})
}

func TestAggregateEmpty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}
