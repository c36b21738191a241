package season

import "time"

// Status mirrors the upstream lifecycle of a fixture.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusLive      Status = "IN_PLAY"
	StatusFinished  Status = "FINISHED"
	StatusPostponed Status = "POSTPONED"
	StatusCanceled  Status = "CANCELED"
	StatusAwarded   Status = "AWARDED"
)

// Competition codes follow football-data.org naming.
const (
	CompetitionPremierLeague = "PL"
	CompetitionChampionship  = "ELC"
)

// Fixture is a single league match. Season is the ending year of the season
// (2026 denotes 2025/26). Goals are nil until the match is completed.
type Fixture struct {
	ID        string    `json:"id"`
	Season    int       `json:"season"`
	Matchday  int       `json:"matchday"`
	Kickoff   time.Time `json:"kickoff,omitempty"`
	Status    Status    `json:"status"`
	HomeTeam  string    `json:"homeTeam"`
	AwayTeam  string    `json:"awayTeam"`
	HomeGoals *int      `json:"homeGoals,omitempty"`
	AwayGoals *int      `json:"awayGoals,omitempty"`
}

// Completed reports whether both goal counts are recorded.
func (f Fixture) Completed() bool {
	return f.HomeGoals != nil && f.AwayGoals != nil
}

// Goals returns the recorded score; ok is false for unplayed fixtures.
func (f Fixture) Goals() (home, away int, ok bool) {
	if !f.Completed() {
		return 0, 0, false
	}
	return *f.HomeGoals, *f.AwayGoals, true
}

// Standing is one row of a competition's final table.
type Standing struct {
	Season         int    `json:"season"`
	Competition    string `json:"competition"`
	Team           string `json:"team"`
	Position       int    `json:"position"`
	Points         int    `json:"points"`
	GoalDifference int    `json:"goalDifference"`
}

// Goals returns a pointer to n, for building completed fixtures.
func Goals(n int) *int {
	return &n
}

// Roster returns the distinct teams appearing in fixtures, in first-seen order.
func Roster(fixtures []Fixture) []string {
	seen := make(map[string]struct{}, 20)
	var out []string
	add := func(team string) {
		if _, ok := seen[team]; ok {
			return
		}
		seen[team] = struct{}{}
		out = append(out, team)
	}
	for _, f := range fixtures {
		add(f.HomeTeam)
		add(f.AwayTeam)
	}
	return out
}

// CloneFixtures copies fixtures so callers never share goal pointers.
func CloneFixtures(in []Fixture) []Fixture {
	if in == nil {
		return nil
	}
	out := make([]Fixture, len(in))
	for i, f := range in {
		if f.HomeGoals != nil {
			f.HomeGoals = Goals(*f.HomeGoals)
		}
		if f.AwayGoals != nil {
			f.AwayGoals = Goals(*f.AwayGoals)
		}
		out[i] = f
	}
	return out
}

// CloneStandings copies a standings slice.
func CloneStandings(in []Standing) []Standing {
	if in == nil {
		return nil
	}
	out := make([]Standing, len(in))
	copy(out, in)
	return out
}
