package testutil

import (
	"context"
	"sync"

	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
	"github.com/preston-bernstein/epl-compare-service/internal/providers"
)

// GoodProvider serves the fixtures and standings it holds. Seasons it does
// not hold come back empty.
type GoodProvider struct {
	Fixtures  []season.Fixture
	Standings []season.Standing
}

func (p GoodProvider) FetchFixtures(ctx context.Context, id int) ([]season.Fixture, error) {
	var out []season.Fixture
	for _, f := range p.Fixtures {
		if f.Season == id {
			out = append(out, f)
		}
	}
	return out, nil
}

func (p GoodProvider) FetchStandings(ctx context.Context, id int, competition string) ([]season.Standing, error) {
	var out []season.Standing
	for _, s := range p.Standings {
		if s.Season == id && s.Competition == competition {
			out = append(out, s)
		}
	}
	return out, nil
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchFixtures(ctx context.Context, id int) ([]season.Fixture, error) {
	return nil, p.Err
}

func (p ErrProvider) FetchStandings(ctx context.Context, id int, competition string) ([]season.Standing, error) {
	return nil, p.Err
}

// UnavailableProvider returns ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) FetchFixtures(ctx context.Context, id int) ([]season.Fixture, error) {
	return nil, providers.ErrProviderUnavailable
}

func (UnavailableProvider) FetchStandings(ctx context.Context, id int, competition string) ([]season.Standing, error) {
	return nil, providers.ErrProviderUnavailable
}

// NotifyingProvider serves fixtures and closes Notify on the first fetch.
type NotifyingProvider struct {
	Fixtures []season.Fixture
	Notify   chan struct{}
	once     sync.Once
}

func (p *NotifyingProvider) FetchFixtures(ctx context.Context, id int) ([]season.Fixture, error) {
	p.notify()
	return GoodProvider{Fixtures: p.Fixtures}.FetchFixtures(ctx, id)
}

func (p *NotifyingProvider) FetchStandings(ctx context.Context, id int, competition string) ([]season.Standing, error) {
	p.notify()
	return nil, nil
}

func (p *NotifyingProvider) notify() {
	if p.Notify == nil {
		return
	}
	p.once.Do(func() { close(p.Notify) })
}
