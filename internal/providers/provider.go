package providers

import (
	"context"

	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
)

// SeasonProvider defines how upstream season data is fetched and normalized.
// Season ids are ending years (2026 is 2025/26); providers translate them to
// whatever the upstream expects.
type SeasonProvider interface {
	// FetchFixtures returns every top-flight fixture of the season, played or not.
	FetchFixtures(ctx context.Context, id int) ([]season.Fixture, error)
	// FetchStandings returns a competition's table for the season.
	FetchStandings(ctx context.Context, id int, competition string) ([]season.Standing, error)
}
