package testutil

import (
	"testing"

	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
	"github.com/preston-bernstein/epl-compare-service/internal/snapshots"
)

// NewTempWriter returns a snapshot writer rooted in a temp dir.
func NewTempWriter(t *testing.T, retention int) *snapshots.Writer {
	t.Helper()
	return snapshots.NewWriter(t.TempDir(), retention)
}

// WriteFixtures writes a fixtures snapshot, failing the test on error.
func WriteFixtures(t *testing.T, w *snapshots.Writer, id int, fixtures []season.Fixture) {
	t.Helper()
	if err := w.WriteFixtures(id, fixtures); err != nil {
		t.Fatalf("failed to write fixtures %d: %v", id, err)
	}
}

// WriteStandings writes a standings snapshot, failing the test on error.
func WriteStandings(t *testing.T, w *snapshots.Writer, id int, competition string, standings []season.Standing) {
	t.Helper()
	if err := w.WriteStandings(id, competition, standings); err != nil {
		t.Fatalf("failed to write standings %s %d: %v", competition, id, err)
	}
}

type tableKey struct {
	season      int
	competition string
}

// SeedSnapshots writes fixtures per season and groups standings into one
// table per season and competition.
func SeedSnapshots(t *testing.T, w *snapshots.Writer, fixtures map[int][]season.Fixture, standings []season.Standing) {
	t.Helper()
	for id, f := range fixtures {
		WriteFixtures(t, w, id, f)
	}
	tables := make(map[tableKey][]season.Standing)
	for _, s := range standings {
		key := tableKey{season: s.Season, competition: s.Competition}
		tables[key] = append(tables[key], s)
	}
	for key, table := range tables {
		WriteStandings(t, w, key.season, key.competition, table)
	}
}

// FixturesPath returns the expected file path for a season's fixtures snapshot.
func FixturesPath(w *snapshots.Writer, id int) string {
	return snapshots.FixturesPath(w.BasePath(), id)
}
