package config

import "strings"

// LogConfig selects the slog handler for the binaries.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

func (l *LogConfig) normalize() {
	l.Level = strings.ToLower(stringOrDefault(l.Level, defaultLogLevel))
	l.Format = strings.ToLower(stringOrDefault(l.Format, defaultLogFormat))
}
