package server

import (
	"strings"
	"testing"

	"github.com/preston-bernstein/epl-compare-service/internal/config"
	"github.com/preston-bernstein/epl-compare-service/internal/providers/footballdata"
	"github.com/preston-bernstein/epl-compare-service/internal/providers/sample"
	"github.com/preston-bernstein/epl-compare-service/internal/testutil"
)

func TestProviderFactoryBuildsSample(t *testing.T) {
	prov := newProviderFactory(nil, nil).build(config.Config{Provider: "sample"})
	if prov == nil {
		t.Fatalf("expected provider")
	}
	if closer, ok := prov.(interface{ Close() error }); !ok || closer.Close() != nil {
		t.Fatalf("expected closable provider chain")
	}
}

func TestProviderFactoryBuildsRateLimitedFootballData(t *testing.T) {
	prov := newProviderFactory(nil, nil).build(config.Config{
		Provider:     "footballdata",
		FootballData: config.FootballDataConfig{BaseURL: "http://example.com", APIKey: "key"},
	})
	closer, ok := prov.(interface{ Close() error })
	if !ok {
		t.Fatalf("expected closable provider chain, got %T", prov)
	}
	if err := closer.Close(); err != nil {
		t.Fatalf("expected close to succeed, got %v", err)
	}
}

func TestSelectProviderFallsBackToSample(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	provider := selectProvider(config.Config{Provider: "unknown"}, logger)
	if _, ok := provider.(*sample.Provider); !ok {
		t.Fatalf("expected sample fallback, got %T", provider)
	}
	if !strings.Contains(buf.String(), "unknown provider") {
		t.Fatalf("expected fallback warning, got %q", buf.String())
	}
}

func TestSelectProviderChoosesFootballData(t *testing.T) {
	provider := selectProvider(config.Config{
		Provider: "footballdata",
		FootballData: config.FootballDataConfig{
			BaseURL: "http://example.com",
			APIKey:  "key",
		},
		Seasons: config.SeasonsConfig{TopFlight: "PL"},
	}, nil)
	if _, ok := provider.(*footballdata.Client); !ok {
		t.Fatalf("expected football-data provider, got %T", provider)
	}
}

func TestUsesSampleData(t *testing.T) {
	cases := map[string]bool{"": true, "sample": true, "unknown": true, "footballdata": false}
	for name, want := range cases {
		if got := usesSampleData(name); got != want {
			t.Fatalf("usesSampleData(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestNormalizeProviderName(t *testing.T) {
	if got := normalizeProviderName(" FootballData ", nil); got != "footballdata" {
		t.Fatalf("expected lower-cased name, got %q", got)
	}
	if got := normalizeProviderName("", sample.New()); got != "sample" {
		t.Fatalf("expected type-derived name, got %q", got)
	}
	if got := normalizeProviderName("", testutil.GoodProvider{}); got != "testutil" {
		t.Fatalf("expected package name for value types, got %q", got)
	}
	if got := normalizeProviderName("", nil); got != "provider" {
		t.Fatalf("expected fallback name, got %q", got)
	}
}
