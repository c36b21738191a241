package comparison

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/preston-bernstein/epl-compare-service/internal/domain/teams"
	"github.com/preston-bernstein/epl-compare-service/internal/mapping"
)

// Result is a full comparison run between two seasons.
type Result struct {
	CurrentSeason   int              `json:"currentSeason"`
	ReferenceSeason int              `json:"referenceSeason"`
	CurrentLabel    string           `json:"currentLabel"`
	ReferenceLabel  string           `json:"referenceLabel"`
	Substitutions   []mapping.Pair   `json:"substitutions"`
	Coverage        mapping.Coverage `json:"coverage"`
	Rows            []Row            `json:"rows"`
}

// RankedRow is a Row with its position in the current-season table.
type RankedRow struct {
	Position int `json:"position"`
	Row
}

// Rank orders rows for display: current points, then goal difference, then
// goals scored, all descending, with team name breaking any remaining tie.
func Rank(rows []Row) []RankedRow {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.PointsCurrent != b.PointsCurrent {
			return a.PointsCurrent > b.PointsCurrent
		}
		if a.GDCurrent != b.GDCurrent {
			return a.GDCurrent > b.GDCurrent
		}
		if a.Current.GoalsFor != b.Current.GoalsFor {
			return a.Current.GoalsFor > b.Current.GoalsFor
		}
		return a.Team < b.Team
	})
	out := make([]RankedRow, len(sorted))
	for i, r := range sorted {
		out[i] = RankedRow{Position: i + 1, Row: r}
	}
	return out
}

// FindRow returns the row for team, ignoring case, accents and punctuation.
func FindRow(rows []Row, team string) (Row, bool) {
	key := teams.Key(team)
	if key == "" {
		return Row{}, false
	}
	for _, r := range rows {
		if teams.Key(r.Team) == key {
			return r, true
		}
	}
	return Row{}, false
}

// Line is one season's totals with goal difference spelled out.
type Line struct {
	Totals
	GoalDifference int `json:"goalDifference"`
}

func lineOf(t Totals) Line {
	return Line{Totals: t, GoalDifference: t.GoalDifference()}
}

// Differences are current minus reference.
type Differences struct {
	Points              int     `json:"points"`
	GoalDifference      int     `json:"goalDifference"`
	GoalsFor            int     `json:"goalsFor"`
	GoalsAgainst        int     `json:"goalsAgainst"`
	PointsPercentChange float64 `json:"pointsPercentChange"`
}

// Improvements flag strictly positive changes.
type Improvements struct {
	Points         bool `json:"points"`
	GoalDifference bool `json:"goalDifference"`
}

// TeamDetail is the per-team breakdown behind a Row.
type TeamDetail struct {
	Team         string       `json:"team"`
	Current      Line         `json:"current"`
	Reference    Line         `json:"reference"`
	Differences  Differences  `json:"differences"`
	Improvements Improvements `json:"improvements"`
	Unmapped     int          `json:"unmapped"`
}

// Detail expands a row. The points percentage change is 0 when the reference
// side has no points, and is rounded to two decimals.
func Detail(r Row) TeamDetail {
	d := TeamDetail{
		Team:      r.Team,
		Current:   lineOf(r.Current),
		Reference: lineOf(r.Reference),
		Differences: Differences{
			Points:         r.DeltaPoints,
			GoalDifference: r.DeltaGD,
			GoalsFor:       r.Current.GoalsFor - r.Reference.GoalsFor,
			GoalsAgainst:   r.Current.GoalsAgainst - r.Reference.GoalsAgainst,
		},
		Improvements: Improvements{
			Points:         r.DeltaPoints > 0,
			GoalDifference: r.DeltaGD > 0,
		},
		Unmapped: r.Unmapped,
	}
	if r.PointsReference > 0 {
		pct := float64(r.DeltaPoints) / float64(r.PointsReference) * 100
		d.Differences.PointsPercentChange = math.Round(pct*100) / 100
	}
	return d
}

// Metric selects the change Improvers ranks by.
type Metric string

const (
	MetricPoints         Metric = "points"
	MetricGoalDifference Metric = "goal_difference"
	MetricGoalsFor       Metric = "goals_for"
)

// ErrUnknownMetric is returned for metrics other than the ones above.
var ErrUnknownMetric = errors.New("unknown metric")

// ParseMetric validates a metric name; empty means points.
func ParseMetric(s string) (Metric, error) {
	switch m := Metric(s); m {
	case "":
		return MetricPoints, nil
	case MetricPoints, MetricGoalDifference, MetricGoalsFor:
		return m, nil
	default:
		return "", fmt.Errorf("%w %q: want points, goal_difference or goals_for", ErrUnknownMetric, s)
	}
}

// Improver is one entry of an improvers list.
type Improver struct {
	Team      string `json:"team"`
	Metric    Metric `json:"metric"`
	Current   int    `json:"current"`
	Reference int    `json:"reference"`
	Change    int    `json:"change"`
}

// Improvers returns the n teams with the largest change in metric, biggest
// first. n <= 0 returns every team.
func Improvers(rows []Row, metric Metric, n int) ([]Improver, error) {
	pick, err := metricValues(metric)
	if err != nil {
		return nil, err
	}
	out := make([]Improver, 0, len(rows))
	for _, r := range rows {
		cur, ref := pick(r)
		out = append(out, Improver{Team: r.Team, Metric: metric, Current: cur, Reference: ref, Change: cur - ref})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Change != out[j].Change {
			return out[i].Change > out[j].Change
		}
		return out[i].Team < out[j].Team
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out, nil
}

func metricValues(metric Metric) (func(Row) (int, int), error) {
	switch metric {
	case MetricPoints:
		return func(r Row) (int, int) { return r.PointsCurrent, r.PointsReference }, nil
	case MetricGoalDifference:
		return func(r Row) (int, int) { return r.GDCurrent, r.GDReference }, nil
	case MetricGoalsFor:
		return func(r Row) (int, int) { return r.Current.GoalsFor, r.Reference.GoalsFor }, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownMetric, metric)
	}
}
