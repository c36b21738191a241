package snapshots

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
	"github.com/preston-bernstein/epl-compare-service/internal/providers"
)

type fakeProvider struct {
	mu       sync.Mutex
	calls    []string
	failWith map[string]error
}

func (p *fakeProvider) record(task syncTask) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, task.String())
	return p.failWith[task.String()]
}

func (p *fakeProvider) FetchFixtures(ctx context.Context, id int) ([]season.Fixture, error) {
	if err := p.record(syncTask{season: id}); err != nil {
		return nil, err
	}
	return simpleFixtures(id), nil
}

func (p *fakeProvider) FetchStandings(ctx context.Context, id int, competition string) ([]season.Standing, error) {
	if err := p.record(syncTask{season: id, competition: competition}); err != nil {
		return nil, err
	}
	return simpleTable(id, competition), nil
}

type recordingInvalidator struct {
	mu      sync.Mutex
	seasons []int
}

func (r *recordingInvalidator) Invalidate(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seasons = append(r.seasons, id)
}

func syncConfig(current, seasons int) SyncConfig {
	return SyncConfig{Enabled: true, Seasons: seasons, Interval: time.Nanosecond, Current: current}
}

func TestSyncerBackfillsMissingSeasons(t *testing.T) {
	base := t.TempDir()
	writer := NewWriter(base, 0)
	// Seed: current fixtures (still refreshed) and last season's PL table (skipped).
	writeFixtures(t, writer, 2026)
	if err := writer.WriteStandings(2025, "PL", simpleTable(2025, "PL")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	provider := &fakeProvider{}
	invalidator := &recordingInvalidator{}
	NewSyncer(provider, writer, syncConfig(2026, 3), nil, invalidator).Run(context.Background())

	want := []string{
		"fixtures 2026",
		"fixtures 2025", "standings ELC 2025",
		"fixtures 2024", "standings ELC 2024", "standings PL 2024",
	}
	if len(provider.calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, provider.calls)
	}
	for i := range want {
		if provider.calls[i] != want[i] {
			t.Fatalf("call %d: expected %s, got %s", i, want[i], provider.calls[i])
		}
	}

	requireFileExists(t, FixturesPath(base, 2024))
	requireFileExists(t, StandingsPath(base, "ELC", 2025))
	requireFileMissing(t, StandingsPath(base, "PL", 2026))

	sort.Ints(invalidator.seasons)
	assertSeasonsEqual(t, invalidator.seasons, []int{2024, 2024, 2024, 2025, 2025, 2026})
}

func TestSyncerContinuesPastFailures(t *testing.T) {
	base := t.TempDir()
	provider := &fakeProvider{failWith: map[string]error{"fixtures 2025": errors.New("boom")}}
	NewSyncer(provider, NewWriter(base, 0), syncConfig(2026, 2), nil, nil).Run(context.Background())

	requireFileMissing(t, FixturesPath(base, 2025))
	requireFileExists(t, FixturesPath(base, 2026))
	requireFileExists(t, StandingsPath(base, "PL", 2025))
}

func TestSyncerSkipsInvalidData(t *testing.T) {
	base := t.TempDir()
	provider := &invalidProvider{}
	NewSyncer(provider, NewWriter(base, 0), syncConfig(2026, 1), nil, nil).Run(context.Background())
	requireFileMissing(t, FixturesPath(base, 2026))
}

type invalidProvider struct{ fakeProvider }

func (p *invalidProvider) FetchFixtures(ctx context.Context, id int) ([]season.Fixture, error) {
	return []season.Fixture{{ID: "x", Season: id, HomeTeam: "Arsenal", AwayTeam: "Arsenal"}}, nil
}

func TestSyncerRunNoopsWhenDisabled(t *testing.T) {
	provider := &fakeProvider{}
	cfg := syncConfig(2026, 2)
	cfg.Enabled = false
	NewSyncer(provider, NewWriter(t.TempDir(), 0), cfg, nil, nil).Run(context.Background())

	var nilSyncer *Syncer
	nilSyncer.Run(context.Background())

	NewSyncer(provider, NewWriter(t.TempDir(), 0), syncConfig(0, 2), nil, nil).Run(context.Background())

	if len(provider.calls) != 0 {
		t.Fatalf("expected no fetches, got %v", provider.calls)
	}
}

func TestSyncerStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	provider := &fakeProvider{}
	NewSyncer(provider, NewWriter(t.TempDir(), 0), syncConfig(2026, 3), nil, nil).Run(ctx)
	if len(provider.calls) != 0 {
		t.Fatalf("expected no fetches after cancel, got %v", provider.calls)
	}
}

func TestRefreshSeasonCompletedSeason(t *testing.T) {
	base := t.TempDir()
	provider := &fakeProvider{}
	s := NewSyncer(provider, NewWriter(base, 0), syncConfig(2026, 2), nil, nil)

	n, err := s.RefreshSeason(context.Background(), 2025)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 snapshots, got %d", n)
	}
	requireFileExists(t, StandingsPath(base, "ELC", 2025))
	requireFileExists(t, StandingsPath(base, "PL", 2025))
}

func TestRefreshSeasonCurrentSeasonSkipsTables(t *testing.T) {
	provider := &fakeProvider{}
	s := NewSyncer(provider, NewWriter(t.TempDir(), 0), syncConfig(2026, 2), nil, nil)

	n, err := s.RefreshSeason(context.Background(), 2026)
	if err != nil || n != 1 {
		t.Fatalf("expected one snapshot, got %d %v", n, err)
	}
	if len(provider.calls) != 1 || provider.calls[0] != "fixtures 2026" {
		t.Fatalf("unexpected calls %v", provider.calls)
	}
}

func TestRefreshSeasonToleratesMissingTables(t *testing.T) {
	provider := &fakeProvider{failWith: map[string]error{"standings ELC 2025": season.ErrNotFound}}
	s := NewSyncer(provider, NewWriter(t.TempDir(), 0), syncConfig(2026, 2), nil, nil)

	n, err := s.RefreshSeason(context.Background(), 2025)
	if err != nil || n != 2 {
		t.Fatalf("expected two snapshots, got %d %v", n, err)
	}
}

func TestRefreshSeasonFailsOnFixtureError(t *testing.T) {
	provider := &fakeProvider{failWith: map[string]error{"fixtures 2025": &providers.StatusError{Provider: "fake", StatusCode: 403}}}
	s := NewSyncer(provider, NewWriter(t.TempDir(), 0), syncConfig(2026, 2), nil, nil)

	n, err := s.RefreshSeason(context.Background(), 2025)
	var statusErr *providers.StatusError
	if !errors.As(err, &statusErr) || n != 0 {
		t.Fatalf("expected status error and nothing written, got %d %v", n, err)
	}

	var nilSyncer *Syncer
	if _, err := nilSyncer.RefreshSeason(context.Background(), 2025); !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}
