package mapping

import "github.com/preston-bernstein/epl-compare-service/internal/domain/season"

// MappedFixture pairs a current-season fixture with its reference-season
// counterpart. Reference is nil when no counterpart exists; that is a
// degraded state ("no prior-season data"), not an error.
type MappedFixture struct {
	Current    season.Fixture  `json:"current"`
	Reference  *season.Fixture `json:"reference,omitempty"`
	MappedHome string          `json:"mappedHome"`
	MappedAway string          `json:"mappedAway"`
}

// Found reports whether a reference fixture was matched.
func (m MappedFixture) Found() bool {
	return m.Reference != nil
}

type pairing struct {
	home, away string
}

// MapFixtures finds, for each current fixture, the reference fixture with the
// same ordered (home, away) pair after substitution. Output order follows
// current. Each reference fixture is consumed at most once; when several
// remain for the same pairing, the one whose matchday is closest to the
// current fixture's wins, ties going to the earliest in reference order.
func MapFixtures(current, reference []season.Fixture, resolver *Resolver) []MappedFixture {
	pool := make(map[pairing][]int, len(reference))
	for i, f := range reference {
		key := pairing{home: f.HomeTeam, away: f.AwayTeam}
		pool[key] = append(pool[key], i)
	}

	out := make([]MappedFixture, 0, len(current))
	for _, f := range current {
		m := MappedFixture{
			Current:    f,
			MappedHome: resolver.Substitute(f.HomeTeam),
			MappedAway: resolver.Substitute(f.AwayTeam),
		}
		key := pairing{home: m.MappedHome, away: m.MappedAway}
		if candidates := pool[key]; len(candidates) > 0 {
			pick := closestMatchday(candidates, reference, f.Matchday)
			ref := reference[candidates[pick]]
			m.Reference = &ref
			pool[key] = append(candidates[:pick:pick], candidates[pick+1:]...)
		}
		out = append(out, m)
	}
	return out
}

func closestMatchday(candidates []int, reference []season.Fixture, matchday int) int {
	best, bestDiff := 0, -1
	for i, idx := range candidates {
		diff := reference[idx].Matchday - matchday
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	return best
}

// Coverage summarizes how many current fixtures found a counterpart.
type Coverage struct {
	Fixtures int     `json:"fixtures"`
	Mapped   int     `json:"mapped"`
	Unmapped int     `json:"unmapped"`
	Percent  float64 `json:"percent"`
}

// Summarize computes mapping coverage over pairs.
func Summarize(pairs []MappedFixture) Coverage {
	c := Coverage{Fixtures: len(pairs)}
	for _, p := range pairs {
		if p.Found() {
			c.Mapped++
		}
	}
	c.Unmapped = c.Fixtures - c.Mapped
	if c.Fixtures > 0 {
		c.Percent = float64(c.Mapped) * 100 / float64(c.Fixtures)
	}
	return c
}
