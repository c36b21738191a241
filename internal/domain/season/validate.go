package season

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidData marks malformed season input detected at ingestion.
	ErrInvalidData = errors.New("invalid season data")
	// ErrNotFound marks a season or table with no data available.
	ErrNotFound = errors.New("season data not found")
)

// ValidationError lists every problem found in one dataset.
type ValidationError struct {
	Season   int
	Dataset  string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("season %d %s: %s", e.Season, e.Dataset, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidData }

func (e *ValidationError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

func (e *ValidationError) orNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}

type pairingKey struct {
	home, away string
	matchday   int
}

// ValidateFixtures rejects self-fixtures, duplicates, half-recorded scores and
// fixtures that belong to another season.
func ValidateFixtures(id int, fixtures []Fixture) error {
	verr := &ValidationError{Season: id, Dataset: "fixtures"}
	ids := make(map[string]int, len(fixtures))
	pairings := make(map[pairingKey]int, len(fixtures))

	for i, f := range fixtures {
		label := f.ID
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}
		if f.Season != id {
			verr.add("fixture %s belongs to season %d", label, f.Season)
		}
		if strings.TrimSpace(f.HomeTeam) == "" || strings.TrimSpace(f.AwayTeam) == "" {
			verr.add("fixture %s has an empty team name", label)
			continue
		}
		if f.HomeTeam == f.AwayTeam {
			verr.add("fixture %s has %s playing itself", label, f.HomeTeam)
		}
		if (f.HomeGoals == nil) != (f.AwayGoals == nil) {
			verr.add("fixture %s records goals for one side only", label)
		}
		if (f.HomeGoals != nil && *f.HomeGoals < 0) || (f.AwayGoals != nil && *f.AwayGoals < 0) {
			verr.add("fixture %s has negative goals", label)
		}
		if f.ID != "" {
			if prev, ok := ids[f.ID]; ok {
				verr.add("fixture id %s repeated at rows %d and %d", f.ID, prev, i)
			} else {
				ids[f.ID] = i
			}
		}
		key := pairingKey{home: f.HomeTeam, away: f.AwayTeam, matchday: f.Matchday}
		if prev, ok := pairings[key]; ok {
			verr.add("%s v %s on matchday %d repeated at rows %d and %d", f.HomeTeam, f.AwayTeam, f.Matchday, prev, i)
		} else {
			pairings[key] = i
		}
	}
	return verr.orNil()
}

// ValidateStandings requires a final table whose positions are a permutation of 1..N.
func ValidateStandings(id int, competition string, standings []Standing) error {
	verr := &ValidationError{Season: id, Dataset: "standings " + competition}
	n := len(standings)
	positions := make(map[int]string, n)
	teams := make(map[string]struct{}, n)

	for _, s := range standings {
		if strings.TrimSpace(s.Team) == "" {
			verr.add("position %d has an empty team name", s.Position)
			continue
		}
		if _, ok := teams[s.Team]; ok {
			verr.add("team %s listed more than once", s.Team)
		}
		teams[s.Team] = struct{}{}
		if s.Position < 1 || s.Position > n {
			verr.add("team %s has position %d outside 1..%d", s.Team, s.Position, n)
			continue
		}
		if other, ok := positions[s.Position]; ok {
			verr.add("position %d shared by %s and %s", s.Position, other, s.Team)
			continue
		}
		positions[s.Position] = s.Team
	}
	return verr.orNil()
}
