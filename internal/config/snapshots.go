package config

import "time"

// SnapshotSyncConfig controls automatic snapshot backfill/prune behavior.
type SnapshotSyncConfig struct {
	Enabled bool `env:"SNAPSHOT_SYNC_ENABLED" envDefault:"true"`
	// Seasons to maintain, counting back from the current one.
	Seasons int `env:"SNAPSHOT_SYNC_SEASONS" envDefault:"2"`
	// Delay between snapshot fetches.
	Interval time.Duration `env:"SNAPSHOT_SYNC_INTERVAL" envDefault:"6s"`
	// 0 keeps every season.
	RetentionSeasons int `env:"SNAPSHOT_RETENTION_SEASONS" envDefault:"0"`
	// Reused for refresh endpoint auth.
	AdminToken     string `env:"ADMIN_TOKEN"`
	SnapshotFolder string `env:"SNAPSHOT_FOLDER" envDefault:"data/snapshots"`
}

func (c *SnapshotSyncConfig) normalize() {
	c.Seasons = intOrDefault(c.Seasons, defaultSyncSeasons)
	c.Interval = durationOrDefault(c.Interval, defaultSyncInterval)
	if c.RetentionSeasons < 0 {
		c.RetentionSeasons = 0
	}
	c.SnapshotFolder = stringOrDefault(c.SnapshotFolder, defaultSnapshotRoot)
}
