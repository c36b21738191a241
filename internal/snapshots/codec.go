package snapshots

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
)

var (
	fixtureHeader  = []string{"id", "season", "matchday", "kickoff", "status", "home_team", "away_team", "home_goals", "away_goals"}
	standingHeader = []string{"season", "competition", "position", "team", "points", "goal_difference"}
)

func encodeFixtures(w io.Writer, fixtures []season.Fixture) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(fixtureHeader); err != nil {
		return err
	}
	for _, f := range fixtures {
		kickoff := ""
		if !f.Kickoff.IsZero() {
			kickoff = f.Kickoff.UTC().Format(time.RFC3339)
		}
		record := []string{
			f.ID,
			strconv.Itoa(f.Season),
			strconv.Itoa(f.Matchday),
			kickoff,
			string(f.Status),
			f.HomeTeam,
			f.AwayTeam,
			formatGoals(f.HomeGoals),
			formatGoals(f.AwayGoals),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func decodeFixtures(r io.Reader) ([]season.Fixture, error) {
	records, err := readRecords(r, fixtureHeader)
	if err != nil {
		return nil, err
	}
	out := make([]season.Fixture, 0, len(records))
	for i, rec := range records {
		f, err := parseFixture(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func parseFixture(rec []string) (season.Fixture, error) {
	id, err := strconv.Atoi(rec[1])
	if err != nil {
		return season.Fixture{}, fmt.Errorf("season %q: %w", rec[1], err)
	}
	matchday, err := strconv.Atoi(rec[2])
	if err != nil {
		return season.Fixture{}, fmt.Errorf("matchday %q: %w", rec[2], err)
	}
	f := season.Fixture{
		ID:       rec[0],
		Season:   id,
		Matchday: matchday,
		Status:   season.Status(rec[4]),
		HomeTeam: rec[5],
		AwayTeam: rec[6],
	}
	if rec[3] != "" {
		if f.Kickoff, err = time.Parse(time.RFC3339, rec[3]); err != nil {
			return season.Fixture{}, fmt.Errorf("kickoff %q: %w", rec[3], err)
		}
	}
	if f.HomeGoals, err = parseGoals(rec[7]); err != nil {
		return season.Fixture{}, err
	}
	if f.AwayGoals, err = parseGoals(rec[8]); err != nil {
		return season.Fixture{}, err
	}
	return f, nil
}

func encodeStandings(w io.Writer, standings []season.Standing) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(standingHeader); err != nil {
		return err
	}
	for _, s := range standings {
		record := []string{
			strconv.Itoa(s.Season),
			s.Competition,
			strconv.Itoa(s.Position),
			s.Team,
			strconv.Itoa(s.Points),
			strconv.Itoa(s.GoalDifference),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func decodeStandings(r io.Reader) ([]season.Standing, error) {
	records, err := readRecords(r, standingHeader)
	if err != nil {
		return nil, err
	}
	out := make([]season.Standing, 0, len(records))
	for i, rec := range records {
		ints := make([]int, 0, 4)
		for _, col := range []int{0, 2, 4, 5} {
			n, err := strconv.Atoi(rec[col])
			if err != nil {
				return nil, fmt.Errorf("row %d %s %q: %w", i+2, standingHeader[col], rec[col], err)
			}
			ints = append(ints, n)
		}
		out = append(out, season.Standing{
			Season:         ints[0],
			Competition:    rec[1],
			Position:       ints[1],
			Team:           rec[3],
			Points:         ints[2],
			GoalDifference: ints[3],
		})
	}
	return out, nil
}

func readRecords(r io.Reader, header []string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)
	first, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty snapshot")
	}
	if err != nil {
		return nil, err
	}
	if strings.Join(first, ",") != strings.Join(header, ",") {
		return nil, fmt.Errorf("unexpected header %q", strings.Join(first, ","))
	}
	return cr.ReadAll()
}

func formatGoals(g *int) string {
	if g == nil {
		return ""
	}
	return strconv.Itoa(*g)
}

func parseGoals(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("goals %q: %w", raw, err)
	}
	return season.Goals(n), nil
}
