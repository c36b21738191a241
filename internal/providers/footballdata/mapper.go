package footballdata

import (
	"strconv"
	"strings"

	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
	"github.com/preston-bernstein/epl-compare-service/internal/domain/teams"
)

func (c *Client) mapMatch(id int, m matchResponse) season.Fixture {
	f := season.Fixture{
		ID:       providerName + "-" + strconv.Itoa(m.ID),
		Season:   id,
		Matchday: m.Matchday,
		Kickoff:  m.UTCDate.UTC(),
		Status:   mapStatus(m.Status),
		HomeTeam: c.teamName(m.HomeTeam),
		AwayTeam: c.teamName(m.AwayTeam),
	}
	// Only settled results count; live and suspended scores are provisional.
	if f.Status == season.StatusFinished || f.Status == season.StatusAwarded {
		if m.Score.FullTime.Home != nil && m.Score.FullTime.Away != nil {
			f.HomeGoals = season.Goals(*m.Score.FullTime.Home)
			f.AwayGoals = season.Goals(*m.Score.FullTime.Away)
		}
	}
	return f
}

func (c *Client) mapStanding(id int, competition string, row tableRow) season.Standing {
	return season.Standing{
		Season:         id,
		Competition:    competition,
		Team:           c.teamName(row.Team),
		Position:       row.Position,
		Points:         row.Points,
		GoalDifference: row.GoalDifference,
	}
}

func (c *Client) teamName(t teamResponse) string {
	name := teams.FromUpstream(t.ID, t.Name, t.ShortName, t.TLA).DisplayName()
	c.namesMu.Lock()
	defer c.namesMu.Unlock()
	return c.names.Canonical(name)
}

func mapStatus(status string) season.Status {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "FINISHED":
		return season.StatusFinished
	case "AWARDED":
		return season.StatusAwarded
	case "IN_PLAY", "PAUSED", "LIVE", "SUSPENDED":
		return season.StatusLive
	case "POSTPONED":
		return season.StatusPostponed
	case "CANCELLED", "CANCELED":
		return season.StatusCanceled
	default:
		return season.StatusScheduled
	}
}
