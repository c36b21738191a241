package sample

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
	"github.com/preston-bernstein/epl-compare-service/internal/timeutil"
)

type pairing struct {
	home, away string
}

// roundRobin returns one round per matchday for a single round-robin using
// the circle method: the first team stays fixed while the rest rotate.
func roundRobin(teams []string) [][]pairing {
	rotation := append([]string(nil), teams...)
	if len(rotation)%2 != 0 {
		rotation = append(rotation, "")
	}
	n := len(rotation)
	rounds := make([][]pairing, 0, n-1)
	for r := 0; r < n-1; r++ {
		round := make([]pairing, 0, n/2)
		for j := 0; j < n/2; j++ {
			home, away := rotation[j], rotation[n-1-j]
			if home == "" || away == "" {
				continue
			}
			// Alternate the fixed team's venue so nobody plays every game at home.
			if j == 0 && r%2 == 1 {
				home, away = away, home
			}
			round = append(round, pairing{home: home, away: away})
		}
		rounds = append(rounds, round)

		last := rotation[n-1]
		copy(rotation[2:], rotation[1:n-1])
		rotation[1] = last
	}
	return rounds
}

// doubleRoundRobin adds the return legs with venues swapped.
func doubleRoundRobin(teams []string) [][]pairing {
	first := roundRobin(teams)
	out := make([][]pairing, 0, 2*len(first))
	out = append(out, first...)
	for _, round := range first {
		swapped := make([]pairing, len(round))
		for i, p := range round {
			swapped[i] = pairing{home: p.away, away: p.home}
		}
		out = append(out, swapped)
	}
	return out
}

func kickoff(id, matchday int) time.Time {
	opening := timeutil.SeasonStart(id).AddDate(0, 1, 15).Add(15 * time.Hour)
	return opening.AddDate(0, 0, 7*(matchday-1))
}

// simulate builds the season's fixtures. Matchdays up to playedThrough are
// completed with seeded Poisson scorelines; later ones are left scheduled.
func simulate(id int, teams []string, playedThrough int) []season.Fixture {
	rng := rand.New(rand.NewSource(int64(id)))
	var fixtures []season.Fixture
	for i, round := range doubleRoundRobin(teams) {
		matchday := i + 1
		for _, p := range round {
			f := season.Fixture{
				ID:       fmt.Sprintf("sample-%d-%03d", id, len(fixtures)+1),
				Season:   id,
				Matchday: matchday,
				Kickoff:  kickoff(id, matchday),
				Status:   season.StatusScheduled,
				HomeTeam: p.home,
				AwayTeam: p.away,
			}
			hg, ag := score(rng, p)
			if matchday <= playedThrough {
				f.Status = season.StatusFinished
				f.HomeGoals = season.Goals(hg)
				f.AwayGoals = season.Goals(ag)
			}
			fixtures = append(fixtures, f)
		}
	}
	return fixtures
}

const (
	goalsPerMatch = 2.8
	homeAdvantage = 1.1
)

func score(rng *rand.Rand, p pairing) (int, int) {
	home, away := rating(p.home)*homeAdvantage, rating(p.away)
	total := home + away
	return poisson(rng, home/total*goalsPerMatch), poisson(rng, away/total*goalsPerMatch)
}

func poisson(rng *rand.Rand, lambda float64) int {
	limit := math.Exp(-lambda)
	p := 1.0
	k := 0
	for p > limit {
		k++
		p *= rng.Float64()
	}
	return k - 1
}
