package server

import (
	"log/slog"
	"path"
	"reflect"
	"strings"

	"github.com/preston-bernstein/epl-compare-service/internal/config"
	"github.com/preston-bernstein/epl-compare-service/internal/providers"
	"github.com/preston-bernstein/epl-compare-service/internal/providers/footballdata"
	"github.com/preston-bernstein/epl-compare-service/internal/providers/sample"
)

const (
	providerSample       = "sample"
	providerFootballData = "footballdata"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.SeasonProvider {
	switch cfg.Provider {
	case providerSample, "":
		return sample.New()
	case providerFootballData:
		return footballdata.NewClient(footballdata.Config{
			BaseURL:     cfg.FootballData.BaseURL,
			APIKey:      cfg.FootballData.APIKey,
			Competition: cfg.Seasons.TopFlight,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to sample data", slog.String("provider", cfg.Provider))
		}
		return sample.New()
	}
}

// usesSampleData reports whether selectProvider serves the offline dataset for name.
func usesSampleData(name string) bool {
	return name != providerFootballData
}

// normalizeProviderName labels metrics and logs. The configured name wins;
// otherwise the provider's package name is used, e.g. "sample".
func normalizeProviderName(raw string, provider providers.SeasonProvider) string {
	if raw = strings.ToLower(strings.TrimSpace(raw)); raw != "" {
		return raw
	}
	if provider == nil {
		return "provider"
	}
	t := reflect.TypeOf(provider)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if pkg := path.Base(t.PkgPath()); pkg != "" && pkg != "." {
		return pkg
	}
	return strings.ToLower(t.Name())
}
