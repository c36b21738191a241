package server

import (
	"log/slog"

	"github.com/preston-bernstein/epl-compare-service/internal/config"
	"github.com/preston-bernstein/epl-compare-service/internal/providers"
	"github.com/preston-bernstein/epl-compare-service/internal/snapshots"
	"github.com/preston-bernstein/epl-compare-service/internal/store"
)

// snapshotComponents is the data layer: files on disk, the read cache over
// them, and the syncer that fills both from the provider.
type snapshotComponents struct {
	writer *snapshots.Writer
	files  *snapshots.FSStore
	cache  *store.MemoryStore
	syncer *snapshots.Syncer
}

func buildSnapshots(cfg config.Config, provider providers.SeasonProvider, current int, logger *slog.Logger) snapshotComponents {
	basePath := cfg.Snapshots.SnapshotFolder
	writer := snapshots.NewWriter(basePath, cfg.Snapshots.RetentionSeasons)
	files := snapshots.NewFSStore(basePath)
	cache := store.NewMemoryStore(files)
	syncer := snapshots.NewSyncer(provider, writer, snapshots.SyncConfig{
		Enabled:       cfg.Snapshots.Enabled,
		Seasons:       cfg.Snapshots.Seasons,
		Interval:      cfg.Snapshots.Interval,
		Current:       current,
		TopFlight:     cfg.Seasons.TopFlight,
		LowerDivision: cfg.Seasons.LowerDivision,
	}, logger, cache)

	return snapshotComponents{
		writer: writer,
		files:  files,
		cache:  cache,
		syncer: syncer,
	}
}
