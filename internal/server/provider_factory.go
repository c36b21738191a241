package server

import (
	"log/slog"

	"github.com/preston-bernstein/epl-compare-service/internal/config"
	"github.com/preston-bernstein/epl-compare-service/internal/metrics"
	"github.com/preston-bernstein/epl-compare-service/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.SeasonProvider {
	base := selectProvider(cfg, f.logger)
	name := normalizeProviderName(cfg.Provider, base)
	if usesSampleData(cfg.Provider) {
		return providers.NewRetryingProvider(base, f.logger, f.metrics, name, 0, 0)
	}
	// One limiter is shared by the poller, the syncer and admin refreshes.
	limited := providers.NewRateLimitedProvider(base, cfg.FootballData.RateInterval, f.logger)
	return providers.NewRetryingProvider(limited, f.logger, f.metrics, name, 0, 0)
}
