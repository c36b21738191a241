package footballdata

import "time"

type teamResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
}

type scoreLine struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type scoreResponse struct {
	Winner   string    `json:"winner"`
	Duration string    `json:"duration"`
	FullTime scoreLine `json:"fullTime"`
}

type matchResponse struct {
	ID       int           `json:"id"`
	UTCDate  time.Time     `json:"utcDate"`
	Status   string        `json:"status"`
	Matchday int           `json:"matchday"`
	Stage    string        `json:"stage"`
	HomeTeam teamResponse  `json:"homeTeam"`
	AwayTeam teamResponse  `json:"awayTeam"`
	Score    scoreResponse `json:"score"`
}

type matchesResponse struct {
	Matches []matchResponse `json:"matches"`
}

type tableRow struct {
	Position       int          `json:"position"`
	Team           teamResponse `json:"team"`
	PlayedGames    int          `json:"playedGames"`
	Points         int          `json:"points"`
	GoalDifference int          `json:"goalDifference"`
}

type standingGroup struct {
	Stage string     `json:"stage"`
	Type  string     `json:"type"`
	Table []tableRow `json:"table"`
}

type standingsResponse struct {
	Standings []standingGroup `json:"standings"`
}

type errorResponse struct {
	Message   string `json:"message"`
	ErrorCode int    `json:"errorCode"`
}
