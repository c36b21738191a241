package snapshots

import (
	"os"
	"testing"
	"time"

	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
)

func played(id string, s, md int, home, away string, hg, ag int) season.Fixture {
	return season.Fixture{
		ID: id, Season: s, Matchday: md,
		Kickoff:  time.Date(s-1, 8, 10+md, 15, 0, 0, 0, time.UTC),
		Status:   season.StatusFinished,
		HomeTeam: home, AwayTeam: away,
		HomeGoals: season.Goals(hg), AwayGoals: season.Goals(ag),
	}
}

func simpleFixtures(id int) []season.Fixture {
	return []season.Fixture{
		played("a", id, 1, "Arsenal", "Chelsea", 2, 1),
		{ID: "b", Season: id, Matchday: 2, Status: season.StatusScheduled, HomeTeam: "Chelsea", AwayTeam: "Arsenal"},
	}
}

func simpleTable(id int, competition string) []season.Standing {
	return []season.Standing{
		{Season: id, Competition: competition, Team: "Chelsea", Position: 2, Points: 60, GoalDifference: 10},
		{Season: id, Competition: competition, Team: "Arsenal", Position: 1, Points: 80, GoalDifference: 40},
	}
}

func writeFixtures(t *testing.T, w *Writer, id int) {
	t.Helper()
	if err := w.WriteFixtures(id, simpleFixtures(id)); err != nil {
		t.Fatalf("failed to write fixtures %d: %v", id, err)
	}
}

func requireFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
}

func requireFileMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be absent, got %v", path, err)
	}
}

func assertSeasonsEqual(t *testing.T, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("seasons length mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("seasons mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}
