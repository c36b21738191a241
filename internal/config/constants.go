package config

import "time"

const (
	defaultPort = "4000"
	// Season data only changes after matchdays; a slow poll keeps well inside upstream quotas.
	defaultPollInterval  = 6 * time.Hour
	defaultProvider      = "sample"
	defaultTopFlight     = "PL"
	defaultLowerDivision = "ELC"

	defaultFootballDataBaseURL = "https://api.football-data.org/v4"
	// football-data.org free tier allows 10 requests per minute.
	defaultFootballDataRate = 6 * time.Second

	defaultMetricsPort  = "9090"
	defaultServiceName  = "epl-compare-service"
	defaultSnapshotRoot = "data/snapshots"
	defaultSyncSeasons  = 2
	// Snapshot fetch cadence during backfill, matching the upstream rate limit.
	defaultSyncInterval = 6 * time.Second

	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)
