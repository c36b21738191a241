package config

import (
	"strings"
	"time"
)

// FootballDataConfig controls how we talk to the football-data.org API.
type FootballDataConfig struct {
	BaseURL      string        `env:"FOOTBALL_DATA_BASE_URL" envDefault:"https://api.football-data.org/v4"`
	APIKey       string        `env:"FOOTBALL_DATA_API_KEY"`
	RateInterval time.Duration `env:"FOOTBALL_DATA_RATE_INTERVAL" envDefault:"6s"`
}

func (c *FootballDataConfig) normalize() {
	c.BaseURL = strings.TrimRight(stringOrDefault(c.BaseURL, defaultFootballDataBaseURL), "/")
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.RateInterval = durationOrDefault(c.RateInterval, defaultFootballDataRate)
}
