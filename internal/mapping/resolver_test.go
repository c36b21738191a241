package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
)

var (
	stayers   = []string{"Arsenal", "Chelsea", "Liverpool"}
	refRoster = append(append([]string{}, stayers...), "Southampton", "Leicester City", "Ipswich Town")
	curRoster = append(append([]string{}, stayers...), "Sunderland", "Leeds United", "Burnley")
)

func championship() []season.Standing {
	return []season.Standing{
		{Team: "Leeds United", Position: 1},
		{Team: "Burnley", Position: 2},
		{Team: "Sheffield United", Position: 3},
		{Team: "Sunderland", Position: 4},
	}
}

func premierLeague() []season.Standing {
	return []season.Standing{
		{Team: "Liverpool", Position: 1},
		{Team: "Arsenal", Position: 2},
		{Team: "Chelsea", Position: 3},
		{Team: "Leicester City", Position: 4},
		{Team: "Ipswich Town", Position: 5},
		{Team: "Southampton", Position: 6},
	}
}

func TestNewResolverPairsBestPromotedWithLeastBadRelegated(t *testing.T) {
	r, err := NewResolver(Input{
		CurrentRoster:   curRoster,
		ReferenceRoster: refRoster,
		LowerDivision:   championship(),
		ReferenceTable:  premierLeague(),
	})
	require.NoError(t, err)

	assert.Equal(t, []Pair{
		{Promoted: "Leeds United", PromotedRank: 1, Relegated: "Leicester City", RelegatedRank: 4},
		{Promoted: "Burnley", PromotedRank: 2, Relegated: "Ipswich Town", RelegatedRank: 5},
		{Promoted: "Sunderland", PromotedRank: 4, Relegated: "Southampton", RelegatedRank: 6},
	}, r.Pairs())
	assert.Equal(t, 3, r.Len())

	sub, err := r.Resolve("Leeds United")
	require.NoError(t, err)
	assert.Equal(t, "Leicester City", sub)
	assert.Equal(t, "Arsenal", r.Substitute("Arsenal"))
}

func TestResolverIsABijection(t *testing.T) {
	r, err := NewResolver(Input{
		CurrentRoster:   curRoster,
		ReferenceRoster: refRoster,
		LowerDivision:   championship(),
		ReferenceTable:  premierLeague(),
	})
	require.NoError(t, err)

	seenRelegated := map[string]bool{}
	seenPromoted := map[string]bool{}
	for _, p := range r.Pairs() {
		assert.False(t, seenRelegated[p.Relegated], "relegated %s used twice", p.Relegated)
		assert.False(t, seenPromoted[p.Promoted], "promoted %s used twice", p.Promoted)
		seenRelegated[p.Relegated] = true
		seenPromoted[p.Promoted] = true
	}
	assert.Len(t, seenRelegated, 3)
	assert.ElementsMatch(t, []string{"Sunderland", "Leeds United", "Burnley"}, keys(seenPromoted))
	assert.ElementsMatch(t, []string{"Southampton", "Leicester City", "Ipswich Town"}, keys(seenRelegated))
}

func TestResolveRejectsTeamInReferenceRoster(t *testing.T) {
	r, err := NewResolver(Input{
		CurrentRoster:   curRoster,
		ReferenceRoster: refRoster,
		LowerDivision:   championship(),
		ReferenceTable:  premierLeague(),
	})
	require.NoError(t, err)

	_, err = r.Resolve("Chelsea")
	var invalid *InvalidMappingRequestError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Chelsea", invalid.Team)
}

func TestResolveUnknownTeamIsUnresolvable(t *testing.T) {
	r, err := NewResolver(Input{CurrentRoster: stayers, ReferenceRoster: stayers})
	require.NoError(t, err)

	_, err = r.Resolve("Wrexham")
	var unresolvable *UnresolvableMappingError
	require.ErrorAs(t, err, &unresolvable)
	assert.Equal(t, []string{"Wrexham"}, unresolvable.UnpairedPromoted)
}

func TestNewResolverThreePromotedTwoRelegated(t *testing.T) {
	ref := append(append([]string{}, stayers...), "Southampton", "Leicester City", "Everton")
	var table []season.Standing
	for _, s := range premierLeague() {
		if s.Team == "Ipswich Town" {
			s.Team = "Everton"
		}
		table = append(table, s)
	}
	// Everton stays up, so only two clubs leave while three arrive.
	cur := append(append([]string{}, curRoster...), "Everton")

	_, err := NewResolver(Input{
		CurrentRoster:   cur,
		ReferenceRoster: ref,
		LowerDivision:   championship(),
		ReferenceTable:  table,
	})
	var unresolvable *UnresolvableMappingError
	require.ErrorAs(t, err, &unresolvable)
	assert.Equal(t, []string{"Sunderland"}, unresolvable.UnpairedPromoted)
	assert.Empty(t, unresolvable.UnpairedRelegated)
	assert.Contains(t, err.Error(), "Sunderland")
}

func TestNewResolverMissingStandingsIsUnresolvable(t *testing.T) {
	_, err := NewResolver(Input{
		CurrentRoster:   curRoster,
		ReferenceRoster: refRoster,
		ReferenceTable:  premierLeague(),
	})
	var unresolvable *UnresolvableMappingError
	require.ErrorAs(t, err, &unresolvable)
	assert.Equal(t, []string{"Burnley", "Leeds United", "Sunderland"}, unresolvable.Unranked)
}

func TestNewResolverReportsUnrankedFromBothTables(t *testing.T) {
	lower := championship()[1:]
	top := premierLeague()[:5]
	_, err := NewResolver(Input{
		CurrentRoster:   curRoster,
		ReferenceRoster: refRoster,
		LowerDivision:   lower,
		ReferenceTable:  top,
	})
	var unresolvable *UnresolvableMappingError
	require.ErrorAs(t, err, &unresolvable)
	assert.Equal(t, []string{"Leeds United", "Southampton"}, unresolvable.Unranked)
	assert.Equal(t, "Burnley", lower[0].Team)
	assert.Equal(t, "Ipswich Town", top[4].Team)
}

func TestNewResolverIdenticalRostersNeedNoStandings(t *testing.T) {
	r, err := NewResolver(Input{CurrentRoster: stayers, ReferenceRoster: stayers})
	require.NoError(t, err)
	assert.Zero(t, r.Len())
	assert.Equal(t, "Liverpool", r.Substitute("Liverpool"))
}

func TestNilResolverSubstitutesIdentity(t *testing.T) {
	var r *Resolver
	assert.Equal(t, "Arsenal", r.Substitute("Arsenal"))
	assert.Nil(t, r.Pairs())
	assert.Zero(t, r.Len())
}

func TestUnresolvableMappingErrorTeams(t *testing.T) {
	err := &UnresolvableMappingError{UnpairedPromoted: []string{"A"}, UnpairedRelegated: []string{"B"}, Unranked: []string{"C"}}
	assert.Equal(t, []string{"A", "B", "C"}, err.Teams())
	assert.Equal(t, "unresolvable mapping", (&UnresolvableMappingError{}).Error())
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
