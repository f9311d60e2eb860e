package cmd

import (
	"context"
	"time"

	"park-pulse/core/archive"

	"go.uber.org/zap"
)

// openArchive builds the raw payload archive store, or nil if the archive is
// unreachable. The archive is always optional.
func openArchive(ctx context.Context, cfg archive.Config, logg *zap.Logger) *archive.Store {
	client, err := archive.NewClient(cfg)
	if err != nil {
		logg.Warn("Optional raw payload archive unavailable", zap.Error(err))
		return nil
	}

	retention := time.Duration(cfg.RetentionDays) * 24 * time.Hour
	store := archive.NewStore(client, cfg.Bucket, retention)
	if err := store.EnsureBucket(ctx); err != nil {
		logg.Warn("Archive bucket check failed", zap.Error(err))
		return nil
	}
	return store
}
