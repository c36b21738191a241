package snapshots

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriteFixturesWritesCSVAndManifest(t *testing.T) {
	base := t.TempDir()
	w := NewWriter(base, 0)
	writeFixtures(t, w, 2026)

	data, err := os.ReadFile(FixturesPath(base, 2026))
	if err != nil {
		t.Fatalf("read fixtures: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus two rows, got %d lines", len(lines))
	}
	if lines[0] != "id,season,matchday,kickoff,status,home_team,away_team,home_goals,away_goals" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "a,2026,1,2025-08-11T15:00:00Z,FINISHED,Arsenal,Chelsea,2,1" {
		t.Fatalf("unexpected row %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], ",SCHEDULED,Chelsea,Arsenal,,") {
		t.Fatalf("expected unplayed fixture with blank goals, got %q", lines[2])
	}

	m, err := ReadManifest(base)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	assertSeasonsEqual(t, m.Fixtures.Seasons, []int{2026})
	if m.Fixtures.LastRefreshed.IsZero() {
		t.Fatalf("expected fixtures refresh time")
	}
	requireFileMissing(t, FixturesPath(base, 2026)+".tmp")
}

func TestWriteStandingsOrdersByPosition(t *testing.T) {
	base := t.TempDir()
	w := NewWriter(base, 0)
	if err := w.WriteStandings(2025, "ELC", simpleTable(2025, "ELC")); err != nil {
		t.Fatalf("write standings: %v", err)
	}

	data, err := os.ReadFile(StandingsPath(base, "ELC", 2025))
	if err != nil {
		t.Fatalf("read standings: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[1] != "2025,ELC,1,Arsenal,80,40" || lines[2] != "2025,ELC,2,Chelsea,60,10" {
		t.Fatalf("unexpected rows %v", lines[1:])
	}

	m, _ := ReadManifest(base)
	meta, ok := m.Standings["ELC"]
	if !ok {
		t.Fatalf("expected ELC in manifest")
	}
	assertSeasonsEqual(t, meta.Seasons, []int{2025})
	if meta.LastRefreshed.IsZero() {
		t.Fatalf("expected ELC refresh time")
	}
}

func TestWriteSkipsUnchangedContent(t *testing.T) {
	base := t.TempDir()
	w := NewWriter(base, 0)
	writeFixtures(t, w, 2026)

	path := FixturesPath(base, 2026)
	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	writeFixtures(t, w, 2026)

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.ModTime().Equal(old) {
		t.Fatalf("expected unchanged file to be left alone, modtime %s", info.ModTime())
	}
}

func TestWriterPrunesSeasonsOutsideRetention(t *testing.T) {
	base := t.TempDir()
	w := NewWriter(base, 2)
	for _, id := range []int{2023, 2024} {
		writeFixtures(t, w, id)
		if err := w.WriteStandings(id, "PL", simpleTable(id, "PL")); err != nil {
			t.Fatalf("write standings: %v", err)
		}
	}
	writeFixtures(t, w, 2025)

	requireFileMissing(t, FixturesPath(base, 2023))
	requireFileMissing(t, StandingsPath(base, "PL", 2023))
	requireFileExists(t, FixturesPath(base, 2024))
	requireFileExists(t, StandingsPath(base, "PL", 2024))

	m, _ := ReadManifest(base)
	assertSeasonsEqual(t, m.Fixtures.Seasons, []int{2024, 2025})
	assertSeasonsEqual(t, m.Standings["PL"].Seasons, []int{2024})
	if m.Retention.Seasons != 2 {
		t.Fatalf("expected retention 2 in manifest, got %d", m.Retention.Seasons)
	}
}

func TestWriterRejectsMissingArguments(t *testing.T) {
	var nilWriter *Writer
	if err := nilWriter.WriteFixtures(2026, nil); err == nil {
		t.Fatalf("expected error for nil writer")
	}
	if nilWriter.BasePath() != "" {
		t.Fatalf("expected empty base path for nil writer")
	}

	w := NewWriter(t.TempDir(), -1)
	if err := w.WriteFixtures(0, nil); err == nil {
		t.Fatalf("expected error for missing season")
	}
	if err := w.WriteStandings(2025, " ", nil); err == nil {
		t.Fatalf("expected error for missing competition")
	}
}

func TestListSeasonsIgnoresStrayFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"2025.csv", "2024.csv", "2026.csv.tmp", "notes.txt", "latest.csv"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "2023.csv"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	seasons, err := listSeasons(dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	assertSeasonsEqual(t, seasons, []int{2024, 2025})

	missing, err := listSeasons(filepath.Join(dir, "nope"))
	if err != nil || len(missing) != 0 {
		t.Fatalf("expected empty list for missing dir, got %v %v", missing, err)
	}
}
