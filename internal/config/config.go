package config

import (
	"strings"
	"time"

	"github.com/preston-bernstein/epl-compare-service/internal/timeutil"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port         string        `env:"PORT" envDefault:"4000"`
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"6h"`
	Provider     string        `env:"PROVIDER" envDefault:"sample"`
	MCPEnabled   bool          `env:"MCP_ENABLED" envDefault:"true"`
	Seasons      SeasonsConfig
	FootballData FootballDataConfig
	Snapshots    SnapshotSyncConfig
	Metrics      MetricsConfig
	Log          LogConfig
}

// SeasonsConfig picks the default pair of seasons to compare. Zero values are
// derived from the clock: the season in progress against the one before it.
type SeasonsConfig struct {
	Current       int    `env:"CURRENT_SEASON" envDefault:"0"`
	Reference     int    `env:"REFERENCE_SEASON" envDefault:"0"`
	TopFlight     string `env:"TOP_FLIGHT_CODE" envDefault:"PL"`
	LowerDivision string `env:"LOWER_DIVISION_CODE" envDefault:"ELC"`
}

// Resolve returns the configured (current, reference) season ids.
func (s SeasonsConfig) Resolve(now time.Time) (current, reference int) {
	current = s.Current
	if current <= 0 {
		current = timeutil.SeasonForDate(now)
	}
	reference = s.Reference
	if reference <= 0 {
		reference = current - 1
	}
	return current, reference
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	var cfg Config
	if err := parseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.Port = stringOrDefault(c.Port, defaultPort)
	c.PollInterval = durationOrDefault(c.PollInterval, defaultPollInterval)
	c.Provider = strings.ToLower(stringOrDefault(c.Provider, defaultProvider))
	c.Seasons.TopFlight = strings.ToUpper(stringOrDefault(c.Seasons.TopFlight, defaultTopFlight))
	c.Seasons.LowerDivision = strings.ToUpper(stringOrDefault(c.Seasons.LowerDivision, defaultLowerDivision))
	c.FootballData.normalize()
	c.Snapshots.normalize()
	c.Metrics.normalize()
	c.Log.normalize()
}
