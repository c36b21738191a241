package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Port int `env:"EPL_COMPARE_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig
	if err := parseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("EPL_COMPARE_TEST_PORT", "not-an-int")

	err := parseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestOrDefaultHelpers(t *testing.T) {
	if got := stringOrDefault("  ", "x"); got != "x" {
		t.Fatalf("expected default for blank, got %q", got)
	}
	if got := stringOrDefault(" y ", "x"); got != "y" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	if got := durationOrDefault(-time.Second, time.Minute); got != time.Minute {
		t.Fatalf("expected default for negative duration, got %s", got)
	}
	if got := intOrDefault(0, 5); got != 5 {
		t.Fatalf("expected default for zero, got %d", got)
	}
	if got := intOrDefault(3, 5); got != 3 {
		t.Fatalf("expected value kept, got %d", got)
	}
}
