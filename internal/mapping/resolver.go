package mapping

import (
	"slices"
	"sort"

	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
)

// Pair links a team new to the current top flight with the departed
// reference-season team that stands in for it.
type Pair struct {
	Promoted      string `json:"promoted"`
	PromotedRank  int    `json:"promotedRank"`
	Relegated     string `json:"relegated"`
	RelegatedRank int    `json:"relegatedRank"`
}

// Input is everything the resolver needs for one pair of seasons.
type Input struct {
	CurrentRoster   []string
	ReferenceRoster []string
	// LowerDivision is the final table of the division below the top flight
	// for the season in which the new teams won promotion.
	LowerDivision []season.Standing
	// ReferenceTable is the reference season's final top-flight table.
	ReferenceTable []season.Standing
}

// Resolver substitutes teams absent from the reference season. It is built
// once per comparison run and is read-only afterwards.
type Resolver struct {
	reference map[string]struct{}
	subs      map[string]string
	pairs     []Pair
}

type rankedTeam struct {
	team string
	rank int
}

// NewResolver pairs promoted rank k with relegated rank k: the lower division's
// best finisher stands in for the least-bad relegated team, and so on down.
func NewResolver(in Input) (*Resolver, error) {
	current := toSet(in.CurrentRoster)
	reference := toSet(in.ReferenceRoster)

	promoted := difference(in.CurrentRoster, reference)
	relegated := difference(in.ReferenceRoster, current)

	r := &Resolver{
		reference: reference,
		subs:      make(map[string]string, len(promoted)),
	}
	if len(promoted) == 0 && len(relegated) == 0 {
		return r, nil
	}

	rankedPromoted, missingPromoted := rank(promoted, in.LowerDivision)
	rankedRelegated, missingRelegated := rank(relegated, in.ReferenceTable)
	if unranked := slices.Concat(missingPromoted, missingRelegated); len(unranked) > 0 {
		sort.Strings(unranked)
		return nil, &UnresolvableMappingError{Unranked: unranked}
	}

	n := min(len(rankedPromoted), len(rankedRelegated))
	for k := 0; k < n; k++ {
		p, q := rankedPromoted[k], rankedRelegated[k]
		r.subs[p.team] = q.team
		r.pairs = append(r.pairs, Pair{
			Promoted:      p.team,
			PromotedRank:  p.rank,
			Relegated:     q.team,
			RelegatedRank: q.rank,
		})
	}

	if len(rankedPromoted) != len(rankedRelegated) {
		return nil, &UnresolvableMappingError{
			UnpairedPromoted:  names(rankedPromoted[n:]),
			UnpairedRelegated: names(rankedRelegated[n:]),
		}
	}
	return r, nil
}

// Resolve returns the reference-season stand-in for team. team must be absent
// from the reference roster.
func (r *Resolver) Resolve(team string) (string, error) {
	if r != nil {
		if _, ok := r.reference[team]; ok {
			return "", &InvalidMappingRequestError{Team: team}
		}
		if sub, ok := r.subs[team]; ok {
			return sub, nil
		}
	}
	return "", &UnresolvableMappingError{UnpairedPromoted: []string{team}}
}

// Substitute returns the stand-in for team, or team itself when it played in
// both seasons under the same identity.
func (r *Resolver) Substitute(team string) string {
	if r == nil {
		return team
	}
	if sub, ok := r.subs[team]; ok {
		return sub
	}
	return team
}

// Pairs returns the substitutions ordered by promoted rank.
func (r *Resolver) Pairs() []Pair {
	if r == nil {
		return nil
	}
	out := make([]Pair, len(r.pairs))
	copy(out, r.pairs)
	return out
}

// Len reports how many substitutions are in effect.
func (r *Resolver) Len() int {
	if r == nil {
		return 0
	}
	return len(r.pairs)
}

func rank(teams []string, table []season.Standing) ([]rankedTeam, []string) {
	positions := make(map[string]int, len(table))
	for _, s := range table {
		positions[s.Team] = s.Position
	}
	var (
		ranked  []rankedTeam
		missing []string
	)
	for _, t := range teams {
		pos, ok := positions[t]
		if !ok {
			missing = append(missing, t)
			continue
		}
		ranked = append(ranked, rankedTeam{team: t, rank: pos})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].rank != ranked[j].rank {
			return ranked[i].rank < ranked[j].rank
		}
		return ranked[i].team < ranked[j].team
	})
	return ranked, missing
}

func names(in []rankedTeam) []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		out = append(out, r.team)
	}
	return out
}

func toSet(in []string) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, s := range in {
		out[s] = struct{}{}
	}
	return out
}

func difference(list []string, exclude map[string]struct{}) []string {
	var out []string
	seen := make(map[string]struct{}, len(list))
	for _, s := range list {
		if _, ok := exclude[s]; ok {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
