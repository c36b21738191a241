package comparison

import (
	"sort"

	"github.com/preston-bernstein/epl-compare-service/internal/mapping"
)

const (
	pointsWin  = 3
	pointsDraw = 1
)

// Totals accumulates completed fixtures from one team's perspective.
type Totals struct {
	Played       int `json:"played"`
	Won          int `json:"won"`
	Drawn        int `json:"drawn"`
	Lost         int `json:"lost"`
	GoalsFor     int `json:"goalsFor"`
	GoalsAgainst int `json:"goalsAgainst"`
	Points       int `json:"points"`
}

// GoalDifference is goals scored minus goals conceded.
func (t Totals) GoalDifference() int {
	return t.GoalsFor - t.GoalsAgainst
}

func (t *Totals) record(scored, conceded int) {
	t.Played++
	t.GoalsFor += scored
	t.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		t.Won++
		t.Points += pointsWin
	case scored == conceded:
		t.Drawn++
		t.Points += pointsDraw
	default:
		t.Lost++
	}
}

// Row is one team's summary across both seasons.
type Row struct {
	Team string `json:"team"`

	PointsCurrent   int `json:"pointsCurrent"`
	GDCurrent       int `json:"gdCurrent"`
	PointsReference int `json:"pointsReference"`
	GDReference     int `json:"gdReference"`
	DeltaPoints     int `json:"deltaPoints"`
	DeltaGD         int `json:"deltaGd"`

	Current   Totals `json:"current"`
	Reference Totals `json:"reference"`
	// Unmapped counts the team's current fixtures with no prior-season data.
	Unmapped int `json:"unmapped"`
}

// Aggregate produces exactly one row per team appearing in any current
// fixture, sorted by team name. Unplayed fixtures are skipped on either side.
// A reference fixture's result is credited to the current team occupying the
// same home or away slot, so the two totals may cover different fixture counts.
func Aggregate(pairs []mapping.MappedFixture) []Row {
	rows := make(map[string]*Row)
	row := func(team string) *Row {
		r, ok := rows[team]
		if !ok {
			r = &Row{Team: team}
			rows[team] = r
		}
		return r
	}

	for _, p := range pairs {
		home, away := row(p.Current.HomeTeam), row(p.Current.AwayTeam)

		if hg, ag, ok := p.Current.Goals(); ok {
			home.Current.record(hg, ag)
			away.Current.record(ag, hg)
		}

		if !p.Found() {
			home.Unmapped++
			away.Unmapped++
			continue
		}
		if hg, ag, ok := p.Reference.Goals(); ok {
			home.Reference.record(hg, ag)
			away.Reference.record(ag, hg)
		}
	}

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		r.finish()
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Team < out[j].Team })
	return out
}

func (r *Row) finish() {
	r.PointsCurrent = r.Current.Points
	r.GDCurrent = r.Current.GoalDifference()
	r.PointsReference = r.Reference.Points
	r.GDReference = r.Reference.GoalDifference()
	r.DeltaPoints = r.PointsCurrent - r.PointsReference
	r.DeltaGD = r.GDCurrent - r.GDReference
}
