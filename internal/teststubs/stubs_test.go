package teststubs

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
)

func TestStubProviderTracksCalls(t *testing.T) {
	err := errors.New("boom")
	p := &StubProvider{Err: err, Notify: make(chan struct{})}
	if _, got := p.FetchFixtures(context.Background(), 2026); !errors.Is(got, err) {
		t.Fatalf("expected error passthrough, got %v", got)
	}
	if _, got := p.FetchStandings(context.Background(), 2025, "PL"); !errors.Is(got, err) {
		t.Fatalf("expected error passthrough, got %v", got)
	}
	if p.Calls.Load() != 2 {
		t.Fatalf("expected call count 2, got %d", p.Calls.Load())
	}
	select {
	case <-p.Notify:
	default:
		t.Fatalf("expected notify channel closed")
	}
}

func TestStubProviderServesStandingsByKey(t *testing.T) {
	p := &StubProvider{Standings: map[string][]season.Standing{
		StandingsKey("ELC", 2025): {{Season: 2025, Competition: "ELC", Team: "Leeds United", Position: 1}},
	}}
	got, err := p.FetchStandings(context.Background(), 2025, "ELC")
	if err != nil || len(got) != 1 || got[0].Team != "Leeds United" {
		t.Fatalf("unexpected standings %v err %v", got, err)
	}
	if got, _ := p.FetchStandings(context.Background(), 2025, "PL"); len(got) != 0 {
		t.Fatalf("expected no PL standings, got %v", got)
	}
}

func TestStubSource(t *testing.T) {
	s := &StubSource{
		Fixtures: map[int][]season.Fixture{
			2026: {{ID: "c1", Season: 2026, HomeTeam: "Arsenal", AwayTeam: "Chelsea"}},
		},
		Standings: map[string][]season.Standing{
			StandingsKey("PL", 2025): {{Season: 2025, Competition: "PL", Team: "Arsenal", Position: 1}},
		},
	}

	fixtures, err := s.LoadFixtures(context.Background(), 2026)
	if err != nil || len(fixtures) != 1 {
		t.Fatalf("expected fixtures, got %v err %v", fixtures, err)
	}
	fixtures[0].HomeTeam = "mutated"
	again, _ := s.LoadFixtures(context.Background(), 2026)
	if again[0].HomeTeam != "Arsenal" {
		t.Fatalf("expected clones, got %s", again[0].HomeTeam)
	}

	if _, err := s.LoadFixtures(context.Background(), 2020); !errors.Is(err, season.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing season, got %v", err)
	}
	if _, err := s.LoadStandings(context.Background(), 2025, "ELC"); !errors.Is(err, season.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing table, got %v", err)
	}
	if _, err := s.LoadStandings(context.Background(), 2025, "PL"); err != nil {
		t.Fatalf("expected standings, got %v", err)
	}

	fixtureLoads, standingLoads := s.Loads()
	if fixtureLoads != 3 || standingLoads != 2 {
		t.Fatalf("unexpected load counts %d/%d", fixtureLoads, standingLoads)
	}

	s.Err = errors.New("down")
	if _, err := s.LoadFixtures(context.Background(), 2026); !errors.Is(err, s.Err) {
		t.Fatalf("expected configured error, got %v", err)
	}
}

func TestStubSnapshotWriter(t *testing.T) {
	w := &StubSnapshotWriter{}
	if err := w.WriteFixtures(2026, []season.Fixture{{ID: "c1"}}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got, ok := w.Fixtures(2026); !ok || len(got) != 1 {
		t.Fatalf("expected written fixtures, got %v", got)
	}
	if _, ok := w.Fixtures(2025); ok {
		t.Fatalf("expected nothing written for 2025")
	}

	w.Err = errors.New("disk full")
	if err := w.WriteFixtures(2025, nil); !errors.Is(err, w.Err) {
		t.Fatalf("expected write error, got %v", err)
	}
}

func TestStubInvalidator(t *testing.T) {
	var inv StubInvalidator
	inv.Invalidate(2026)
	inv.Invalidate(2026)
	if inv.Count(2026) != 2 || inv.Count(2025) != 0 {
		t.Fatalf("unexpected counts %d/%d", inv.Count(2026), inv.Count(2025))
	}
}
