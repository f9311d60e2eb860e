package livedata

import (
	"context"
	"fmt"
	"sync"
	"time"

	"park-pulse/core/archive"
	"park-pulse/core/retry"
	"park-pulse/feature/livedata/canonical"
	"park-pulse/feature/livedata/parks"
	"park-pulse/feature/livedata/source"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Orchestrator drives periodic full syncs across all enabled parks and
// sources. The two sources fan out concurrently and are fully failure
// isolated; parks within a source run sequentially to respect upstream rate
// limits.
type Orchestrator struct {
	cfg      Config
	registry *parks.Registry
	live     *source.ThemeParksClient
	crowds   *source.QueueTimesClient
	repo     *Repository
	snaps    *archive.Store
	logger   *zap.Logger

	cron *cron.Cron

	// passMu serializes full passes; a firing that overlaps a still-running
	// pass is skipped rather than queued.
	passMu sync.Mutex
}

// NewOrchestrator wires the sync loop. snaps may be nil when no raw payload
// archive is configured.
func NewOrchestrator(
	cfg Config,
	registry *parks.Registry,
	live *source.ThemeParksClient,
	crowds *source.QueueTimesClient,
	repo *Repository,
	snaps *archive.Store,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		registry: registry,
		live:     live,
		crowds:   crowds,
		repo:     repo,
		snaps:    snaps,
		logger:   logger,
	}
}

// Start runs one synchronous full pass immediately, then arms the periodic
// timer. It is not safe to call Start twice without an intervening Stop.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.RunPass(ctx)

	o.cron = cron.New()
	spec := fmt.Sprintf("@every %s", o.cfg.Interval())
	if _, err := o.cron.AddFunc(spec, func() {
		o.RunPass(context.Background())
	}); err != nil {
		return fmt.Errorf("scheduling sync passes: %w", err)
	}
	o.cron.Start()

	o.logger.Info("sync orchestrator started",
		zap.Duration("interval", o.cfg.Interval()),
		zap.Bool("live_source", o.cfg.LiveSourceEnabled),
		zap.Bool("crowd_source", o.cfg.CrowdSourceEnabled))
	return nil
}

// Stop disarms future timer firings. An in-flight pass completes
// cooperatively; it is not cancelled.
func (o *Orchestrator) Stop() {
	if o.cron != nil {
		o.cron.Stop()
	}
	o.logger.Info("sync orchestrator stopped")
}

// RunPass executes one full sync pass: both sources concurrently, then
// repository cleanup. Overlapping firings are skipped.
func (o *Orchestrator) RunPass(ctx context.Context) {
	if !o.passMu.TryLock() {
		o.logger.Warn("sync pass skipped, previous pass still running")
		return
	}
	defer o.passMu.Unlock()

	started := time.Now()
	var wg sync.WaitGroup

	if o.cfg.LiveSourceEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o.syncLiveSource(ctx)
		}()
	}
	if o.cfg.CrowdSourceEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o.syncCrowdSource(ctx)
		}()
	}
	wg.Wait()

	o.cleanup(ctx)

	o.logger.Info("sync pass complete", zap.Duration("took", time.Since(started)))
}

// enabledParks returns the registry mappings selected by configuration.
func (o *Orchestrator) enabledParks() []parks.Mapping {
	var out []parks.Mapping
	for _, m := range o.registry.All() {
		if o.cfg.ParkEnabled(m.ID) {
			out = append(out, m)
		}
	}
	return out
}

func (o *Orchestrator) retryOptions() retry.Options {
	return retry.Options{
		MaxAttempts: o.cfg.RetryAttempts,
		Delay:       retry.Linear(o.cfg.RetryBaseDelay()),
		IsRetryable: source.IsRetryable,
	}
}

// syncLiveSource walks the enabled parks sequentially against the live data
// API. Park-level errors are retried, then absorbed; the source's sync status
// is updated exactly once, summarizing the pass as a whole.
func (o *Orchestrator) syncLiveSource(ctx context.Context) {
	var lastErr error
	for _, m := range o.enabledParks() {
		m := m
		err := retry.Do(ctx, o.retryOptions(), func() error {
			return o.syncParkLive(ctx, m)
		})
		if err != nil {
			o.logger.Error("live sync failed for park",
				zap.String("park", m.ID), zap.Error(err))
			lastErr = fmt.Errorf("%s: %w", m.ID, err)
		}
	}

	o.recordSync(ctx, source.SourceThemeParks, lastErr)
}

func (o *Orchestrator) syncParkLive(ctx context.Context, m parks.Mapping) error {
	resp, raw, err := o.live.FetchLive(ctx, m.ID)
	if err != nil {
		return err
	}
	o.archiveRaw(ctx, source.SourceThemeParks, m.ID, raw)

	now := time.Now()
	park := canonical.ParkFromLive(m.ID, m.Name, resp, now)

	if err := o.repo.UpsertPark(ctx, park, m.WikiEntityID); err != nil {
		return fmt.Errorf("upserting park: %w", err)
	}
	if err := o.repo.UpsertAttractions(ctx, m.ID, park.Attractions); err != nil {
		return fmt.Errorf("upserting attractions: %w", err)
	}
	if err := o.repo.UpsertEntertainment(ctx, m.ID, park.Entertainment); err != nil {
		return fmt.Errorf("upserting entertainment: %w", err)
	}

	o.logger.Debug("live data synced",
		zap.String("park", m.ID),
		zap.Int("attractions", len(park.Attractions)),
		zap.Int("entertainment", len(park.Entertainment)))
	return nil
}

// syncCrowdSource walks the enabled parks sequentially against the crowd
// forecast service.
func (o *Orchestrator) syncCrowdSource(ctx context.Context) {
	var lastErr error
	for _, m := range o.enabledParks() {
		m := m
		err := retry.Do(ctx, o.retryOptions(), func() error {
			return o.syncParkCrowds(ctx, m)
		})
		if err != nil {
			o.logger.Error("crowd sync failed for park",
				zap.String("park", m.ID), zap.Error(err))
			lastErr = fmt.Errorf("%s: %w", m.ID, err)
		}
	}

	o.recordSync(ctx, source.SourceQueueTimes, lastErr)
}

func (o *Orchestrator) syncParkCrowds(ctx context.Context, m parks.Mapping) error {
	forecast, raw, err := o.crowds.FetchForecast(ctx, m.ID)
	if err != nil {
		return err
	}
	o.archiveRaw(ctx, source.SourceQueueTimes, m.ID, raw)

	now := time.Now()
	predictions := canonical.PredictionsFromForecast(m.ID, forecast, now)
	if err := o.repo.UpsertCrowdPredictions(ctx, predictions); err != nil {
		return fmt.Errorf("upserting predictions: %w", err)
	}

	// Today's forecast level also lands on the park record itself.
	today := now.Format("2006-01-02")
	for _, p := range predictions {
		if p.Date == today {
			if err := o.repo.UpdateParkCrowdLevel(ctx, m.ID, p.CrowdLevel); err != nil {
				return fmt.Errorf("updating park crowd level: %w", err)
			}
			break
		}
	}

	o.logger.Debug("crowd forecast synced",
		zap.String("park", m.ID), zap.Int("days", len(predictions)))
	return nil
}

func (o *Orchestrator) recordSync(ctx context.Context, serviceName string, passErr error) {
	msg := ""
	if passErr != nil {
		msg = passErr.Error()
	}
	if err := o.repo.RecordSync(ctx, serviceName, passErr == nil, msg); err != nil {
		o.logger.Error("failed to record sync status",
			zap.String("service", serviceName), zap.Error(err))
	}
}

// archiveRaw snapshots the raw upstream payload. Archiving is best-effort:
// failures are logged and never affect the sync.
func (o *Orchestrator) archiveRaw(ctx context.Context, sourceName, parkID string, payload []byte) {
	if o.snaps == nil || len(payload) == 0 {
		return
	}
	if err := o.snaps.SaveRaw(ctx, sourceName, parkID, payload); err != nil {
		o.logger.Warn("raw payload archive failed",
			zap.String("source", sourceName),
			zap.String("park", parkID),
			zap.Error(err))
	}
}

// cleanup runs retention unconditionally at the end of every pass.
// Failures are logged, not fatal.
func (o *Orchestrator) cleanup(ctx context.Context) {
	if err := o.repo.CleanOldData(ctx, o.cfg.Retention()); err != nil {
		o.logger.Error("retention cleanup failed", zap.Error(err))
	}
	if removed, err := o.repo.CleanPastPredictions(ctx); err != nil {
		o.logger.Error("prediction cleanup failed", zap.Error(err))
	} else if removed > 0 {
		o.logger.Debug("purged past predictions", zap.Int64("rows", removed))
	}
	if o.snaps != nil {
		if _, err := o.snaps.Prune(ctx); err != nil {
			o.logger.Warn("archive prune failed", zap.Error(err))
		}
	}
}
